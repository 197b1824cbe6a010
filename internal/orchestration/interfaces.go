package orchestration

import (
	"io"

	"github.com/agbru/progressrace/internal/worker"
)

// ProgressDisplay shows the race while it runs. Repaint is called by every
// worker after each step and must be safe for concurrent use. Finish is
// called once, after the barrier, to draw the final state.
type ProgressDisplay interface {
	worker.Repainter
	Finish() error
}

// NullProgressDisplay draws nothing. Used in quiet mode and in tests.
type NullProgressDisplay struct{}

// Repaint does nothing.
func (NullProgressDisplay) Repaint() error { return nil }

// Finish does nothing.
func (NullProgressDisplay) Finish() error { return nil }

var _ ProgressDisplay = NullProgressDisplay{}

// ResultPresenter reports the outcome of a run once all workers stopped.
type ResultPresenter interface {
	PresentSummary(summary Summary, out io.Writer)
}

// ResultPresenterFunc adapts a function to ResultPresenter.
type ResultPresenterFunc func(summary Summary, out io.Writer)

// PresentSummary calls f.
func (f ResultPresenterFunc) PresentSummary(summary Summary, out io.Writer) {
	f(summary, out)
}
