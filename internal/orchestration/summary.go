package orchestration

import (
	"strconv"
	"time"

	"github.com/agbru/progressrace/internal/worker"
)

// WorkerResult is the final state of one worker.
type WorkerResult struct {
	Name string
	// Steps is the last step recorded in the store.
	Steps int
	// Finished reports whether a final duration was recorded.
	Finished bool
	// Duration is the final duration, valid when Finished.
	Duration time.Duration
	Outcome  worker.Outcome
	Err      error
}

// Summary is the result of one run.
type Summary struct {
	RunID   string
	Seed    uint64
	Workers int
	Steps   int
	Elapsed time.Duration
	Results []WorkerResult

	Completed int
	Cancelled int
	Failed    int
}

// AllCompleted reports whether every worker reached the last step.
func (s Summary) AllCompleted() bool {
	return s.Completed == s.Workers
}

// Fastest returns the completed worker with the shortest duration.
func (s Summary) Fastest() (WorkerResult, bool) {
	var best WorkerResult
	found := false
	for _, r := range s.Results {
		if !r.Finished {
			continue
		}
		if !found || r.Duration < best.Duration {
			best, found = r, true
		}
	}
	return best, found
}

func (s *Summary) count() {
	s.Completed, s.Cancelled, s.Failed = 0, 0, 0
	for _, r := range s.Results {
		switch r.Outcome {
		case worker.OutcomeCompleted:
			s.Completed++
		case worker.OutcomeCancelled:
			s.Cancelled++
		default:
			s.Failed++
		}
	}
}

// WorkerName returns the name of the worker with the given 1-based ordinal.
func WorkerName(prefix string, ordinal int) string {
	return prefix + strconv.Itoa(ordinal)
}
