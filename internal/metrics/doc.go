// Package metrics exposes Prometheus collectors for a progress race and an
// optional HTTP endpoint serving them, plus runtime memory snapshots used by
// the TUI.
//
// Collectors are registered against a per-run registry rather than the
// global default, so several runs (or tests) can coexist in one process.
package metrics
