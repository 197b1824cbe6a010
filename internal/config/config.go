// Package config defines the application configuration, its command-line
// flags and the PROGRESSRACE_ environment overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/progressrace/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "PROGRESSRACE_"

// Defaults for a race of twelve workers over fifty steps.
const (
	DefaultWorkers   = 12
	DefaultSteps     = 50
	DefaultDuration  = 2 * time.Second
	DefaultPrefix    = "Thread"
	DefaultNameWidth = 10
	DefaultWarmup    = time.Second
	DefaultLogLevel  = "warn"
)

// Display modes accepted by the -display flag.
const (
	DisplayAuto      = "auto"
	DisplayBars      = "bars"
	DisplayTUI       = "tui"
	DisplayAggregate = "aggregate"
	DisplayNone      = "none"
)

// DisplayModes lists the valid -display values in help order.
var DisplayModes = []string{DisplayAuto, DisplayBars, DisplayTUI, DisplayAggregate, DisplayNone}

// AppConfig aggregates all configuration for a single invocation.
type AppConfig struct {
	// Workers is the number of concurrent workers (W).
	Workers int
	// Steps is the number of steps per worker (N), also the bar width.
	Steps int
	// Duration is the target wall time of a single worker (D).
	Duration time.Duration
	// Seed is the base jitter seed. Zero selects a time-based seed.
	Seed uint64
	// Prefix is prepended to the worker ordinal to build its name.
	Prefix string
	// NameWidth is the width of the left-justified name column.
	NameWidth int
	// Warmup is the pause between the banner and the first worker.
	Warmup time.Duration
	// Display selects the progress display (see DisplayModes).
	Display string
	// MetricsAddr, when set, serves Prometheus metrics during the run.
	MetricsAddr string
	// LogLevel is the minimum zerolog level.
	LogLevel string
	// LogFile redirects structured logs to a file instead of stderr.
	LogFile string
	// OutputFile receives the run summary when set.
	OutputFile string
	// NoColor disables ANSI colors.
	NoColor bool
	// Quiet suppresses the banner and the display and prints a one-line summary.
	Quiet bool
	// Completion, when set, prints a shell completion script and exits.
	Completion string
}

// Default returns the configuration used when no flag or variable is set.
func Default() AppConfig {
	return AppConfig{
		Workers:   DefaultWorkers,
		Steps:     DefaultSteps,
		Duration:  DefaultDuration,
		Prefix:    DefaultPrefix,
		NameWidth: DefaultNameWidth,
		Warmup:    DefaultWarmup,
		Display:   DisplayAuto,
		LogLevel:  DefaultLogLevel,
	}
}

// ParseConfig parses command-line arguments into an AppConfig, applies the
// environment overrides for flags that were not given explicitly, and
// validates the result.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments without the program name.
//   - errorOutput: Where usage and parse errors are written.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a configuration error.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	cfg := Default()
	var seed uint64

	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of concurrent workers.")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Number of concurrent workers (shorthand).")
	fs.IntVar(&cfg.Steps, "steps", cfg.Steps, "Steps per worker (bar width).")
	fs.IntVar(&cfg.Steps, "n", cfg.Steps, "Steps per worker (shorthand).")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Target duration of each worker.")
	fs.DurationVar(&cfg.Duration, "d", cfg.Duration, "Target duration of each worker (shorthand).")
	fs.Uint64Var(&seed, "seed", 0, "Base jitter seed; 0 picks a time-based seed.")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Worker name prefix.")
	fs.IntVar(&cfg.NameWidth, "name-width", cfg.NameWidth, "Width of the worker name column.")
	fs.DurationVar(&cfg.Warmup, "warmup", cfg.Warmup, "Pause before the workers start.")
	fs.StringVar(&cfg.Display, "display", cfg.Display, "Progress display: "+strings.Join(DisplayModes, ", ")+".")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Write JSON logs to this file instead of stderr.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the run summary to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the run summary to this file (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode: no display, one-line summary.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintf(errorOutput, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	cfg.Seed = seed

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errorOutput, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the run cannot honor.
func (c AppConfig) Validate() error {
	if c.Workers <= 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must be greater than zero"}
	}
	if c.Steps <= 0 {
		return apperrors.ValidationError{Field: "steps", Message: "must be greater than zero"}
	}
	if c.Duration < 0 {
		return apperrors.ValidationError{Field: "duration", Message: "must not be negative"}
	}
	if c.Warmup < 0 {
		return apperrors.ValidationError{Field: "warmup", Message: "must not be negative"}
	}
	if c.NameWidth < 0 {
		return apperrors.ValidationError{Field: "name-width", Message: "must not be negative"}
	}
	if !isDisplayMode(c.Display) {
		return apperrors.ValidationError{
			Field:   "display",
			Message: fmt.Sprintf("unknown mode %q (accepted: %s)", c.Display, strings.Join(DisplayModes, ", ")),
		}
	}
	return nil
}

func isDisplayMode(mode string) bool {
	for _, m := range DisplayModes {
		if m == mode {
			return true
		}
	}
	return false
}
