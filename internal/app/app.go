package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agbru/progressrace/internal/cli"
	"github.com/agbru/progressrace/internal/config"
	apperrors "github.com/agbru/progressrace/internal/errors"
	"github.com/agbru/progressrace/internal/logging"
	"github.com/agbru/progressrace/internal/ui"
)

// Application represents the progressrace application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	programName string
	isTerminal  func(io.Writer) bool
	tuiOptions  []tea.ProgramOption
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithTerminalDetector replaces the TTY check used by the auto display.
func WithTerminalDetector(fn func(io.Writer) bool) AppOption {
	return func(a *Application) { a.isTerminal = fn }
}

// WithProgramOptions forwards options to the bubbletea program of the tui
// display.
func WithProgramOptions(opts ...tea.ProgramOption) AppOption {
	return func(a *Application) { a.tuiOptions = append(a.tuiOptions, opts...) }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:   errWriter,
		programName: "progressrace",
		isTerminal:  isTerminal,
	}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = filepath.Base(args[0])
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	enableVirtualTerminal(out)

	mode := a.resolveDisplay(out)
	logger, closeLog, err := a.newLogger(mode)
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return a.runRace(ctx, out, mode, logger)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.programName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// newLogger builds the structured logger. Logs go to the -log-file when set
// and to ErrWriter otherwise, never to the display's writer.
//
// Without a log file, the bars and tui displays share the terminal with
// ErrWriter, so only errors are logged there.
//
// Parameters:
//   - mode: The resolved display mode of the run.
//
// Returns:
//   - *logging.ZerologAdapter: The logger for the run.
//   - func(): Closes the log file, if any.
//   - error: A ConfigError if the log file cannot be opened.
func (a *Application) newLogger(mode string) (*logging.ZerologAdapter, func(), error) {
	if a.Config.LogFile == "" {
		level := a.Config.LogLevel
		if drawsInPlace(mode) && logging.ParseLevel(level) < zerolog.ErrorLevel {
			level = zerolog.ErrorLevel.String()
		}
		return logging.NewLoggerWithLevel(a.ErrWriter, "progressrace", level), func() {}, nil
	}
	f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("cannot open log file %q: %v", a.Config.LogFile, err)
	}
	return logging.NewLoggerWithLevel(f, "progressrace", a.Config.LogLevel), func() { _ = f.Close() }, nil
}

// drawsInPlace reports whether mode redraws a region of the terminal.
func drawsInPlace(mode string) bool {
	return mode == config.DisplayBars || mode == config.DisplayTUI
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
