package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/agbru/progressrace/internal/cli"
	"github.com/agbru/progressrace/internal/config"
	apperrors "github.com/agbru/progressrace/internal/errors"
	"github.com/agbru/progressrace/internal/format"
	"github.com/agbru/progressrace/internal/logging"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/orchestration"
	"github.com/agbru/progressrace/internal/progress"
	"github.com/agbru/progressrace/internal/tui"
	"github.com/agbru/progressrace/internal/ui"
)

// progressView is the JSON shape of one entry on /progress.
type progressView struct {
	Name     string `json:"name"`
	Step     int    `json:"step"`
	Total    int    `json:"total"`
	Finished bool   `json:"finished"`
	Duration string `json:"duration,omitempty"`
}

func snapshotFunc(store *progress.Store) metrics.SnapshotFunc {
	return func() any {
		entries := store.Snapshot()
		views := make([]progressView, len(entries))
		for i, e := range entries {
			views[i] = progressView{Name: e.Name, Step: e.Step, Total: store.TotalSteps(), Finished: e.Finished}
			if e.Finished {
				views[i].Duration = format.FormatSeconds(e.FinalDuration) + "s"
			}
		}
		return views
	}
}

// runRace wires the store, the display, the metrics and the coordinator
// for one race and maps its result to an exit code.
func (a *Application) runRace(ctx context.Context, out io.Writer, mode string, logger *logging.ZerologAdapter) int {
	cfg := a.Config
	colors := cli.CLIColorProvider{}

	race, err := metrics.NewRace()
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, colors)
	}
	store := progress.NewStore(cfg.Steps)
	runID := uuid.NewString()

	if cfg.MetricsAddr != "" {
		stop, err := a.startMetricsServer(ctx, race, store, logger)
		if err != nil {
			return apperrors.HandleRunError(err, a.ErrWriter, colors)
		}
		defer stop()
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Debug("display selected", logging.String("mode", mode))

	var display orchestration.ProgressDisplay
	var tuiDisplay *tui.Display
	switch mode {
	case config.DisplayBars:
		display = cli.NewRenderer(out, store,
			cli.WithNameWidth(cfg.NameWidth),
			cli.WithColors(ui.ColorsEnabled()),
			cli.WithRenderMetrics(race))
	case config.DisplayAggregate:
		display = cli.NewAggregateDisplay(out, store, cfg.Workers, race)
	case config.DisplayTUI:
		tuiDisplay = tui.NewDisplay(store, cancel, tui.Options{
			Workers:        cfg.Workers,
			NameWidth:      cfg.NameWidth,
			Version:        Version,
			RunID:          runID,
			Metrics:        race,
			ProgramOptions: a.tuiOptions,
		})
		display = tuiDisplay
	default:
		display = orchestration.NullProgressDisplay{}
	}

	coord := orchestration.NewCoordinator(cfg, store, display,
		orchestration.WithPresenter(cli.CLIResultPresenter{Quiet: cfg.Quiet}, out),
		orchestration.WithLogger(logger),
		orchestration.WithMetrics(race),
		orchestration.WithRunID(runID))

	if mode == config.DisplayBars || mode == config.DisplayAggregate {
		cli.PrintRunConfig(cfg, out)
		if err := cli.Warmup(raceCtx, out, cfg.Warmup); err != nil {
			return apperrors.HandleRunError(apperrors.WrapError(err, "warm-up interrupted"), a.ErrWriter, colors)
		}
		if mode == config.DisplayBars {
			cli.PrintBanner(out, cfg.Workers)
		}
	}

	var summary orchestration.Summary
	if tuiDisplay != nil {
		summary, err = runWithTUI(raceCtx, coord, tuiDisplay, cancel, logger)
	} else {
		summary, err = coord.Run(raceCtx)
	}

	if writeErr := cli.WriteSummaryToFile(summary, cfg.OutputFile, cfg.NameWidth); writeErr != nil {
		logger.Error("write summary", writeErr, logging.String("path", cfg.OutputFile))
		fmt.Fprintf(a.ErrWriter, "%sError writing summary: %v%s\n", colors.Red(), writeErr, colors.Reset())
		if err == nil {
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.HandleRunError(err, a.ErrWriter, colors)
}

// runWithTUI runs the coordinator in the background while the bubbletea
// program owns the calling goroutine. A program failure cancels the race.
func runWithTUI(ctx context.Context, coord *orchestration.Coordinator, display *tui.Display,
	cancel context.CancelFunc, logger logging.Logger) (orchestration.Summary, error) {
	type result struct {
		summary orchestration.Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := coord.Run(ctx)
		done <- result{s, err}
	}()

	if err := display.Run(); err != nil {
		logger.Error("tui exited", err)
		cancel()
	}
	res := <-done
	return res.summary, res.err
}

// startMetricsServer serves /metrics, /healthz and /progress until the
// returned stop function is called.
func (a *Application) startMetricsServer(ctx context.Context, race *metrics.Race,
	store *progress.Store, logger logging.Logger) (func(), error) {
	srvCtx, cancel := context.WithCancel(ctx)
	srv := metrics.NewServer(race, snapshotFunc(store), logger)
	ready, done := srv.Serve(srvCtx, a.Config.MetricsAddr)

	addr, ok := <-ready
	if !ok {
		cancel()
		return nil, apperrors.WrapError(<-done, "serve metrics on %s", a.Config.MetricsAddr)
	}
	logger.Info("metrics available", logging.String("url", "http://"+addr+"/metrics"))

	return func() {
		cancel()
		if err := <-done; err != nil {
			logger.Warn("metrics server", logging.Err(err))
		}
	}, nil
}
