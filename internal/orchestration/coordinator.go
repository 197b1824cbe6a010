package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/progressrace/internal/config"
	apperrors "github.com/agbru/progressrace/internal/errors"
	"github.com/agbru/progressrace/internal/logging"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/progress"
	"github.com/agbru/progressrace/internal/worker"
)

const tracerName = "github.com/agbru/progressrace/internal/orchestration"

// DrainTimeout bounds the wait for pool goroutines to exit after the barrier.
const DrainTimeout = 2 * time.Second

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = errors.New("coordinator already started")

// Coordinator runs one race. It is single-use.
type Coordinator struct {
	cfg     config.AppConfig
	store   *progress.Store
	display ProgressDisplay

	presenter ResultPresenter
	out       io.Writer

	logger     logging.Logger
	metrics    *metrics.Race
	onState    func(State)
	workerOpts []worker.Option
	now        func() time.Time

	runID string
	state atomic.Int32
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithPresenter reports the summary to out once the run is done.
func WithPresenter(p ResultPresenter, out io.Writer) Option {
	return func(c *Coordinator) {
		c.presenter = p
		c.out = out
	}
}

// WithLogger sets the logger shared by the coordinator and its workers.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics attaches run metrics.
func WithMetrics(m *metrics.Race) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithStateHook registers a callback invoked on every state transition.
// It runs on the goroutine calling Run.
func WithStateHook(fn func(State)) Option {
	return func(c *Coordinator) { c.onState = fn }
}

// WithWorkerOptions forwards options to every worker.
func WithWorkerOptions(opts ...worker.Option) Option {
	return func(c *Coordinator) { c.workerOpts = append(c.workerOpts, opts...) }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(c *Coordinator) { c.runID = id }
}

// NewCoordinator prepares a run of cfg.Workers workers writing to store and
// repainting display. store must have been created for cfg.Steps steps.
//
// Parameters:
//   - cfg: The validated configuration of the race.
//   - store: The progress store shared with the display.
//   - display: The display to start, repaint and finish. It may be nil.
//   - opts: Optional settings such as the logger or the run ID.
//
// Returns:
//   - *Coordinator: A coordinator in the Idle state.
func NewCoordinator(cfg config.AppConfig, store *progress.Store, display ProgressDisplay, opts ...Option) *Coordinator {
	if display == nil {
		display = NullProgressDisplay{}
	}
	c := &Coordinator{
		cfg:     cfg,
		store:   store,
		display: display,
		logger:  logging.Nop{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runID == "" {
		c.runID = uuid.NewString()
	}
	return c
}

// RunID returns the identifier used in logs, spans and the summary.
func (c *Coordinator) RunID() string {
	return c.runID
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

func (c *Coordinator) setState(s State) {
	c.state.Store(int32(s))
	c.logger.Debug("coordinator state", logging.String("state", s.String()))
	if c.onState != nil {
		c.onState(s)
	}
}

type workerExit struct {
	outcome worker.Outcome
	err     error
}

// Run spawns the workers and blocks until every one of them has completed,
// been cancelled or failed. A store failure in one worker cancels the others
// and is returned after the barrier. Cancellation of ctx is reported as a
// wrapped context error once the summary is built.
func (c *Coordinator) Run(ctx context.Context) (Summary, error) {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return Summary{}, ErrAlreadyStarted
	}
	c.setState(StateRunning)

	seed := c.cfg.Seed
	if seed == 0 {
		seed = uint64(c.now().UnixNano())
	}
	n := c.cfg.Workers

	ctx, span := otel.Tracer(tracerName).Start(ctx, "race.run",
		trace.WithAttributes(
			attribute.String("run.id", c.runID),
			attribute.Int("run.workers", n),
			attribute.Int("run.steps", c.cfg.Steps),
			attribute.String("run.duration", c.cfg.Duration.String()),
		))
	defer span.End()

	logger := c.logger
	if zl, ok := logger.(*logging.ZerologAdapter); ok {
		logger = zl.With(logging.String("run_id", c.runID))
	}
	logger.Info("race started",
		logging.Int("workers", n),
		logging.Int("steps", c.cfg.Steps),
		logging.Duration("duration", c.cfg.Duration),
		logging.Uint64("seed", seed))

	start := c.now()
	pool, err := ants.NewPool(n, ants.WithPreAlloc(true))
	if err != nil {
		c.setState(StateDone)
		return Summary{}, fmt.Errorf("create worker pool: %w", err)
	}

	names := make([]string, n)
	exits := make([]workerExit, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		names[i] = WorkerName(c.cfg.Prefix, i+1)
		opts := append([]worker.Option{
			worker.WithLogger(logger),
			worker.WithMetrics(c.metrics),
		}, c.workerOpts...)
		w := worker.New(worker.Config{
			Name:     names[i],
			Steps:    c.cfg.Steps,
			Duration: c.cfg.Duration,
			Seed:     seed + uint64(i),
		}, c.store, c.display, opts...)

		g.Go(func() error {
			done := make(chan workerExit, 1)
			submitErr := pool.Submit(func() {
				var exit workerExit
				defer func() {
					if r := recover(); r != nil {
						exit = workerExit{outcome: worker.OutcomeFailed, err: fmt.Errorf("worker %s panicked: %v", w.Name(), r)}
					}
					done <- exit
				}()
				exit.outcome, exit.err = w.Run(gctx)
			})
			if submitErr != nil {
				exits[i] = workerExit{outcome: worker.OutcomeFailed, err: fmt.Errorf("submit %s: %w", w.Name(), submitErr)}
				return exits[i].err
			}
			exits[i] = <-done
			return exits[i].err
		})
	}

	runErr := g.Wait()
	c.setState(StateDraining)

	if err := pool.ReleaseTimeout(DrainTimeout); err != nil {
		logger.Warn("worker pool drain", logging.Err(err))
	}
	if err := c.display.Finish(); err != nil {
		logger.Warn("final repaint failed", logging.Err(err))
	}

	summary := c.summarize(names, exits, seed, c.now().Sub(start))
	span.SetAttributes(
		attribute.Int("run.completed", summary.Completed),
		attribute.Int("run.cancelled", summary.Cancelled),
		attribute.Int("run.failed", summary.Failed),
	)
	logger.Info("race finished",
		logging.Int("completed", summary.Completed),
		logging.Int("cancelled", summary.Cancelled),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))

	c.setState(StateDone)
	if c.presenter != nil && c.out != nil {
		c.presenter.PresentSummary(summary, c.out)
	}

	switch {
	case runErr != nil:
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "worker failed")
		return summary, runErr
	case ctx.Err() != nil && summary.Cancelled > 0:
		return summary, apperrors.WrapError(ctx.Err(), "race interrupted")
	default:
		return summary, nil
	}
}

func (c *Coordinator) summarize(names []string, exits []workerExit, seed uint64, elapsed time.Duration) Summary {
	s := Summary{
		RunID:   c.runID,
		Seed:    seed,
		Workers: len(names),
		Steps:   c.cfg.Steps,
		Elapsed: elapsed,
		Results: make([]WorkerResult, len(names)),
	}
	for i, name := range names {
		r := WorkerResult{Name: name, Outcome: exits[i].outcome, Err: exits[i].err}
		if e, ok := c.store.Get(name); ok {
			r.Steps = e.Step
			r.Finished = e.Finished
			r.Duration = e.FinalDuration
		}
		s.Results[i] = r
	}
	s.count()
	return s
}
