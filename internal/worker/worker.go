//go:generate mockgen -source=worker.go -destination=mocks/mock_worker.go -package=mocks

package worker

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/progressrace/internal/logging"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/progress"
)

const tracerName = "github.com/agbru/progressrace/internal/worker"

// Outcome describes how a worker left its loop.
type Outcome int

const (
	// OutcomeCompleted means all steps ran and the final duration is recorded.
	OutcomeCompleted Outcome = iota
	// OutcomeCancelled means the context was cancelled during a sleep.
	OutcomeCancelled
	// OutcomeFailed means a store operation returned an error.
	OutcomeFailed
)

// String returns the outcome label used in logs, metrics and summaries.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return metrics.OutcomeCompleted
	case OutcomeCancelled:
		return metrics.OutcomeCancelled
	case OutcomeFailed:
		return metrics.OutcomeFailed
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Repainter redraws the progress display. Implementations must be safe for
// concurrent use; every call must produce a full redraw.
type Repainter interface {
	Repaint() error
}

// Store is the subset of progress.Store a worker writes to.
type Store interface {
	Register(name string, start time.Time) error
	Advance(name string) (int, error)
	MarkFinished(name string, d time.Duration) error
}

var _ Store = (*progress.Store)(nil)

// Config is the fixed input of one worker.
type Config struct {
	Name     string
	Steps    int
	Duration time.Duration
	Seed     uint64
}

// Worker advances one progress entry from zero to Steps.
type Worker struct {
	cfg     Config
	store   Store
	display Repainter
	jitter  *Jitter
	logger  logging.Logger
	metrics *metrics.Race

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes a Worker.
type Option func(*Worker)

// WithLogger sets the worker's logger.
func WithLogger(l logging.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithMetrics attaches run metrics. A nil value disables them.
func WithMetrics(m *metrics.Race) Option {
	return func(w *Worker) { w.metrics = m }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) { w.now = now }
}

// WithSleeper overrides the cancellable sleep.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(w *Worker) { w.sleep = sleep }
}

// New creates a worker. display may be nil when nothing is shown.
func New(cfg Config, store Store, display Repainter, opts ...Option) *Worker {
	w := &Worker{
		cfg:     cfg,
		store:   store,
		display: display,
		jitter:  NewJitter(cfg.Seed),
		logger:  logging.Nop{},
		now:     time.Now,
		sleep:   Sleep,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the worker's identity.
func (w *Worker) Name() string {
	return w.cfg.Name
}

// Run registers the worker and advances it to completion, or until ctx is
// cancelled. Cancellation is not an error: it yields OutcomeCancelled and a
// nil error. Store failures yield OutcomeFailed and the wrapped error.
func (w *Worker) Run(ctx context.Context) (Outcome, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "worker.run",
		trace.WithAttributes(
			attribute.String("worker.name", w.cfg.Name),
			attribute.Int("worker.steps", w.cfg.Steps),
		))
	defer span.End()

	start := w.now()
	if err := w.store.Register(w.cfg.Name, start); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "register")
		return OutcomeFailed, fmt.Errorf("worker %s: %w", w.cfg.Name, err)
	}
	w.metrics.WorkerStarted()
	w.logger.Debug("worker started", logging.String("worker", w.cfg.Name))

	outcome, err := w.loop(ctx, start)
	elapsed := w.now().Sub(start)
	w.metrics.WorkerExited(outcome.String(), elapsed)
	span.SetAttributes(attribute.String("worker.outcome", outcome.String()))

	switch outcome {
	case OutcomeCompleted:
		w.logger.Debug("worker completed",
			logging.String("worker", w.cfg.Name),
			logging.Duration("elapsed", elapsed))
	case OutcomeCancelled:
		w.logger.Info("worker cancelled",
			logging.String("worker", w.cfg.Name),
			logging.Duration("elapsed", elapsed))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		w.logger.Error("worker failed", err, logging.String("worker", w.cfg.Name))
	}
	return outcome, err
}

func (w *Worker) loop(ctx context.Context, start time.Time) (Outcome, error) {
	base := BaseDelay(w.cfg.Duration, w.cfg.Steps)
	for step := 0; step < w.cfg.Steps; {
		delay := w.jitter.NextDelay(base)
		if err := w.sleep(ctx, delay); err != nil {
			return OutcomeCancelled, nil
		}
		next, err := w.store.Advance(w.cfg.Name)
		if err != nil {
			return OutcomeFailed, fmt.Errorf("worker %s: %w", w.cfg.Name, err)
		}
		step = next
		w.metrics.StepAdvanced(delay)
		// The last step is marked finished before its repaint so the
		// frame that shows a full bar also shows the final duration.
		if step >= w.cfg.Steps {
			if err := w.store.MarkFinished(w.cfg.Name, w.now().Sub(start)); err != nil {
				return OutcomeFailed, fmt.Errorf("worker %s: %w", w.cfg.Name, err)
			}
		}
		w.repaint()
	}
	if w.cfg.Steps <= 0 {
		if err := w.store.MarkFinished(w.cfg.Name, w.now().Sub(start)); err != nil {
			return OutcomeFailed, fmt.Errorf("worker %s: %w", w.cfg.Name, err)
		}
	}
	return OutcomeCompleted, nil
}

// repaint asks the display for a redraw. Write failures are logged and do
// not stop the worker.
func (w *Worker) repaint() {
	if w.display == nil {
		return
	}
	if err := w.display.Repaint(); err != nil {
		w.logger.Warn("repaint failed", logging.String("worker", w.cfg.Name), logging.Err(err))
	}
}

// Sleep blocks for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when woken by cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
