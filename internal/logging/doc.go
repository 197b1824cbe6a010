// Package logging provides a unified logging interface for progressrace.
// It abstracts the underlying logging implementation, allowing consistent logging
// across the coordinator, workers and displays while supporting multiple backends.
package logging
