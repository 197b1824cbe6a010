// Package progress holds the shared, run-scoped progress state of all workers.
//
// A Store maps each worker name to its entry. Entries are registered exactly
// once, advanced only by their owning worker, and never removed for the
// lifetime of a run. Snapshot returns a consistent copy of every entry in a
// stable order (ascending numeric suffix of the name), which is the sole input
// of a render pass.
//
// # Concurrency
//
// The name index is guarded by an RWMutex. The per-entry step counter and
// final duration are atomics: each entry has a single writer, so advancing
// never takes the index lock for writing and readers never observe a torn
// entry.
package progress
