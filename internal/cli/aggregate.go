package cli

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/agbru/progressrace/internal/metrics"
)

// AggregateDisplay shows a single bar for the sum of all worker steps. It is
// used when stdout is not a terminal, where cursor movement is meaningless.
type AggregateDisplay struct {
	mu      sync.Mutex
	out     io.Writer
	bar     *progressbar.ProgressBar
	store   Snapshotter
	total   int
	shown   int
	metrics *metrics.Race
}

// NewAggregateDisplay creates a bar of workers*steps units writing to out.
func NewAggregateDisplay(out io.Writer, store Snapshotter, workers int, m *metrics.Race) *AggregateDisplay {
	total := workers * store.TotalSteps()
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Racing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(out, "\n")
		}),
	)
	return &AggregateDisplay{out: out, bar: bar, store: store, total: total, metrics: m}
}

// Repaint moves the bar to the current sum of steps.
func (a *AggregateDisplay) Repaint() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	done := 0
	for _, e := range a.store.Snapshot() {
		done += e.Step
	}
	var err error
	if done > a.shown {
		a.shown = done
		err = a.bar.Set(done)
	}
	a.metrics.Rendered(err)
	return err
}

// Finish draws the last state. A cancelled run leaves the bar short of its
// total; it is closed with a newline either way.
func (a *AggregateDisplay) Finish() error {
	if a == nil {
		return nil
	}
	if err := a.Repaint(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.shown >= a.total {
		return nil
	}
	if err := a.bar.Exit(); err != nil {
		return err
	}
	_, err := io.WriteString(a.out, "\n")
	return err
}

// Shown returns the number of steps currently displayed.
func (a *AggregateDisplay) Shown() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.shown
}
