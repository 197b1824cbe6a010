// Package worker implements a racing worker: it registers itself in a
// progress store, advances one step per jittered sleep and asks the display
// to repaint after every step.
//
// Each worker owns its random source, so runs are reproducible from a seed.
// Cancellation is observed during sleeps only; a cancelled worker leaves its
// entry unfinished.
package worker
