package progress

import (
	"sync/atomic"
	"time"
)

// Entry is a point-in-time copy of one worker's progress.
type Entry struct {
	// Name is the unique worker identity.
	Name string
	// Step is the number of completed steps, in [0, TotalSteps].
	Step int
	// StartTime is the registration timestamp.
	StartTime time.Time
	// FinalDuration is the elapsed time to the last step. Valid only when Finished.
	FinalDuration time.Duration
	// Finished reports whether FinalDuration has been set.
	Finished bool
}

// Done reports whether the entry reached total steps.
func (e Entry) Done(total int) bool {
	return e.Step >= total
}

// record is the mutable, store-owned state behind an Entry.
type record struct {
	name  string
	start time.Time
	step  atomic.Int64
	// final holds the final duration in nanoseconds plus one, so that zero
	// means unset and a legitimately zero duration is still representable.
	final atomic.Int64
}

// load builds a consistent Entry. final is read before step: once final is
// observed set, the preceding step == total write is visible too, so a
// snapshot never shows a finished entry with an incomplete bar.
func (r *record) load() Entry {
	final := r.final.Load()
	e := Entry{
		Name:      r.name,
		Step:      int(r.step.Load()),
		StartTime: r.start,
	}
	if final != 0 {
		e.Finished = true
		e.FinalDuration = time.Duration(final - 1)
	}
	return e
}
