package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/progressrace/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("progressrace", nil, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != DefaultWorkers || cfg.Steps != DefaultSteps || cfg.Duration != DefaultDuration {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Prefix != "Thread" || cfg.NameWidth != 10 {
		t.Errorf("unexpected name defaults: prefix=%q width=%d", cfg.Prefix, cfg.NameWidth)
	}
	if cfg.Display != DisplayAuto {
		t.Errorf("expected display %q, got %q", DisplayAuto, cfg.Display)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg AppConfig)
	}{
		{
			name: "long flags",
			args: []string{"-workers", "3", "-steps", "20", "-duration", "500ms", "-seed", "7"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Workers != 3 || cfg.Steps != 20 || cfg.Duration != 500*time.Millisecond || cfg.Seed != 7 {
					t.Errorf("unexpected config: %+v", cfg)
				}
			},
		},
		{
			name: "short flags",
			args: []string{"-w", "4", "-n", "8", "-d", "1s", "-q"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Workers != 4 || cfg.Steps != 8 || cfg.Duration != time.Second || !cfg.Quiet {
					t.Errorf("unexpected config: %+v", cfg)
				}
			},
		},
		{
			name: "display and output",
			args: []string{"-display", "aggregate", "-o", "summary.txt", "-no-color"},
			check: func(t *testing.T, cfg AppConfig) {
				if cfg.Display != DisplayAggregate || cfg.OutputFile != "summary.txt" || !cfg.NoColor {
					t.Errorf("unexpected config: %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("progressrace", tt.args, io.Discard)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantField string
	}{
		{"zero workers", []string{"-workers", "0"}, "workers"},
		{"negative steps", []string{"-steps", "-1"}, "steps"},
		{"negative duration", []string{"-duration", "-1s"}, "duration"},
		{"unknown display", []string{"-display", "fancy"}, "display"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("progressrace", tt.args, io.Discard)
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, valErr.Field)
			}
		})
	}

	t.Run("help", func(t *testing.T) {
		_, err := ParseConfig("progressrace", []string{"-h"}, io.Discard)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("expected flag.ErrHelp, got %v", err)
		}
	})

	t.Run("positional arguments", func(t *testing.T) {
		_, err := ParseConfig("progressrace", []string{"extra"}, io.Discard)
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	})
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "5")
	t.Setenv(EnvPrefix+"DURATION", "750ms")
	t.Setenv(EnvPrefix+"DISPLAY", "NONE")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"STEPS", "not-a-number")

	cfg, err := ParseConfig("progressrace", []string{"-workers", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("flag should win over env: expected 2 workers, got %d", cfg.Workers)
	}
	if cfg.Duration != 750*time.Millisecond {
		t.Errorf("expected env duration 750ms, got %s", cfg.Duration)
	}
	if cfg.Display != DisplayNone {
		t.Errorf("expected env display %q, got %q", DisplayNone, cfg.Display)
	}
	if !cfg.Quiet {
		t.Error("expected env quiet to be applied")
	}
	if cfg.Steps != DefaultSteps {
		t.Errorf("invalid env value should keep default steps, got %d", cfg.Steps)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}
