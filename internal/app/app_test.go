package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/progressrace/internal/cli"
	"github.com/agbru/progressrace/internal/config"
	apperrors "github.com/agbru/progressrace/internal/errors"
)

var cursorUp = regexp.MustCompile(`\x1b\[\d+A`)

func newTestApp(t *testing.T, args []string, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"progressrace"}, args...), &errBuf, opts...)
	if err != nil {
		t.Fatalf("New(%v) failed: %v\n%s", args, err, errBuf.String())
	}
	return a, &errBuf
}

func TestNew_ParseErrors(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"progressrace", "-h"}, io.Discard)
		if !IsHelpError(err) {
			t.Errorf("expected help error, got %v", err)
		}
	})

	t.Run("invalid workers", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		_, err := New([]string{"progressrace", "-w", "0"}, &errBuf)
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if !strings.Contains(errBuf.String(), "Configuration error") {
			t.Errorf("expected the error to be reported, got %q", errBuf.String())
		}
	})

	t.Run("program name from path", func(t *testing.T) {
		t.Parallel()
		a, err := New([]string{"/usr/local/bin/race", "-q"}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.programName != "race" {
			t.Errorf("expected program name race, got %q", a.programName)
		}
	})
}

func TestRun_Completion(t *testing.T) {
	t.Parallel()
	a, _ := newTestApp(t, []string{"-completion", "bash"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "complete") {
		t.Errorf("expected a bash completion script, got %q", out.String())
	}

	bad, errBuf := newTestApp(t, []string{"-completion", "tcsh"})
	if code := bad.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("expected exit %d for an unknown shell, got %d", apperrors.ExitErrorConfig, code)
	}
	if !strings.Contains(errBuf.String(), "unsupported shell") {
		t.Errorf("expected unsupported shell message, got %q", errBuf.String())
	}
}

func TestRun_Quiet(t *testing.T) {
	a, _ := newTestApp(t, []string{"-w", "3", "-n", "4", "-d", "20ms", "-seed", "9", "-q"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d\n%s", code, out.String())
	}
	if !strings.HasPrefix(out.String(), "completed=3 cancelled=0 failed=0 elapsed=") {
		t.Errorf("unexpected quiet output %q", out.String())
	}
	if strings.Contains(out.String(), "\033[") {
		t.Errorf("quiet mode must not draw bars: %q", out.String())
	}
}

func TestRun_Bars(t *testing.T) {
	a, _ := newTestApp(t, []string{"-w", "2", "-n", "3", "-d", "15ms", "-warmup", "0", "-display", "bars", "-no-color"})
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d\n%s", code, out.String())
	}

	s := out.String()
	banner := strings.Index(s, cli.BannerText)
	frames := cursorUp.FindAllStringIndex(s, -1)
	if banner < 0 || len(frames) == 0 || frames[0][0] < banner {
		t.Fatalf("expected the banner before the first frame, got %q", s)
	}
	for _, want := range []string{"Thread1    [===]", "Thread2    [===]", "All workers completed!", "--- Race Summary ---"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
	// One frame per step plus the final frame drawn by Finish.
	if len(frames) != 2*3+1 {
		t.Errorf("expected 7 frames, got %d", len(frames))
	}
}

func TestRun_LogsStayOffInPlaceDisplays(t *testing.T) {
	var screen bytes.Buffer
	tests := []struct {
		name     string
		args     []string
		opts     []AppOption
		wantLogs bool
	}{
		{"bars", []string{"-display", "bars"}, nil, false},
		{"tui", []string{"-display", "tui"},
			[]AppOption{WithProgramOptions(tea.WithInput(nil), tea.WithOutput(&screen), tea.WithoutSignalHandler())}, false},
		{"aggregate", []string{"-display", "aggregate"}, nil, true},
		{"quiet", []string{"-q"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-w", "2", "-n", "2", "-d", "10ms", "-warmup", "0", "-no-color", "-log-level", "info"}, tt.args...)
			a, errBuf := newTestApp(t, args, tt.opts...)
			if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
				t.Fatalf("expected exit 0, got %d\n%s", code, errBuf.String())
			}
			if got := strings.Contains(errBuf.String(), `"race started"`); got != tt.wantLogs {
				t.Errorf("info logs on ErrWriter = %v, want %v:\n%s", got, tt.wantLogs, errBuf.String())
			}
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		mode      string
		level     string
		wantWarn  bool
		wantError bool
	}{
		{"bars default", config.DisplayBars, config.DefaultLogLevel, false, true},
		{"bars debug", config.DisplayBars, "debug", false, true},
		{"tui default", config.DisplayTUI, config.DefaultLogLevel, false, true},
		{"aggregate default", config.DisplayAggregate, config.DefaultLogLevel, true, true},
		{"none default", config.DisplayNone, config.DefaultLogLevel, true, true},
		{"bars error", config.DisplayBars, "error", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			a := &Application{Config: config.AppConfig{LogLevel: tt.level}, ErrWriter: &errBuf}
			logger, closeLog, err := a.newLogger(tt.mode)
			if err != nil {
				t.Fatal(err)
			}
			defer closeLog()

			logger.Warn("repaint failed")
			logger.Error("worker failed", errors.New("boom"))
			out := errBuf.String()
			if got := strings.Contains(out, "repaint failed"); got != tt.wantWarn {
				t.Errorf("warn emitted=%v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(out, "worker failed"); got != tt.wantError {
				t.Errorf("error emitted=%v, want %v", got, tt.wantError)
			}
		})
	}
}

func TestNewLogger_FileKeepsLevelInBars(t *testing.T) {
	t.Parallel()
	logPath := filepath.Join(t.TempDir(), "race.log")
	var errBuf bytes.Buffer
	a := &Application{Config: config.AppConfig{LogLevel: "info", LogFile: logPath}, ErrWriter: &errBuf}
	logger, closeLog, err := a.newLogger(config.DisplayBars)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("race started")
	closeLog()

	logs, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logs), "race started") {
		t.Errorf("expected info logs in the file, got %q", logs)
	}
	if errBuf.Len() != 0 {
		t.Errorf("nothing should reach ErrWriter, got %q", errBuf.String())
	}
}

func TestRun_AutoSelectsAggregateWithoutTerminal(t *testing.T) {
	a, _ := newTestApp(t, []string{"-w", "2", "-n", "3", "-d", "15ms", "-warmup", "0"},
		WithTerminalDetector(func(io.Writer) bool { return false }))
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "Racing") {
		t.Errorf("expected the aggregate bar, got %q", out.String())
	}
	if strings.Contains(out.String(), cli.BannerText) {
		t.Errorf("aggregate mode should not reserve banner lines: %q", out.String())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	a, errBuf := newTestApp(t, []string{"-w", "2", "-n", "5", "-d", "1s", "-q"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitErrorCanceled {
		t.Fatalf("expected exit %d, got %d", apperrors.ExitErrorCanceled, code)
	}
	if !strings.Contains(out.String(), "cancelled=2") {
		t.Errorf("expected the summary to report cancellations, got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "Run canceled") {
		t.Errorf("expected a cancellation message, got %q", errBuf.String())
	}
}

func TestRun_OutputFileAndLogFile(t *testing.T) {
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "out", "summary.txt")
	logPath := filepath.Join(dir, "race.log")

	a, _ := newTestApp(t, []string{"-w", "2", "-n", "2", "-d", "10ms", "-q",
		"-o", summaryPath, "-log-file", logPath, "-log-level", "info"})
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d", code)
	}

	summary, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	if !strings.Contains(string(summary), "# Progress Race Summary") || !strings.Contains(string(summary), "Thread2") {
		t.Errorf("unexpected summary file:\n%s", summary)
	}

	logs, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log not written: %v", err)
	}
	if !strings.Contains(string(logs), `"race finished"`) || !strings.Contains(string(logs), `"run_id"`) {
		t.Errorf("expected structured race logs, got:\n%s", logs)
	}
}

func TestRun_LogFileError(t *testing.T) {
	a, errBuf := newTestApp(t, []string{"-q", "-log-file", filepath.Join(t.TempDir(), "missing", "race.log")})
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("expected exit %d, got %d", apperrors.ExitErrorConfig, code)
	}
	if !strings.Contains(errBuf.String(), "cannot open log file") {
		t.Errorf("unexpected error output %q", errBuf.String())
	}
}

func TestRun_MetricsServer(t *testing.T) {
	a, _ := newTestApp(t, []string{"-w", "2", "-n", "2", "-d", "10ms", "-q", "-metrics-addr", "127.0.0.1:0"})
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Errorf("expected exit 0, got %d", code)
	}

	bad, errBuf := newTestApp(t, []string{"-q", "-metrics-addr", "256.0.0.1:bad"})
	if code := bad.Run(context.Background(), io.Discard); code != apperrors.ExitErrorGeneric {
		t.Errorf("expected exit %d for an unusable address, got %d", apperrors.ExitErrorGeneric, code)
	}
	if !strings.Contains(errBuf.String(), "serve metrics") {
		t.Errorf("unexpected error output %q", errBuf.String())
	}
}

func TestRun_TUIHeadless(t *testing.T) {
	var screen bytes.Buffer
	a, _ := newTestApp(t, []string{"-w", "2", "-n", "3", "-d", "15ms", "-display", "tui", "-no-color"},
		WithProgramOptions(tea.WithInput(nil), tea.WithOutput(&screen), tea.WithoutSignalHandler()))

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("expected exit 0, got %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "All workers completed!") {
		t.Errorf("expected the summary after the program exits, got %q", out.String())
	}
	if !strings.Contains(screen.String(), "Thread1") {
		t.Errorf("expected the program to draw the workers, got %q", screen.String())
	}
}

func TestResolveDisplay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		display  string
		quiet    bool
		terminal bool
		want     string
	}{
		{"auto on terminal", config.DisplayAuto, false, true, config.DisplayBars},
		{"auto redirected", config.DisplayAuto, false, false, config.DisplayAggregate},
		{"explicit tui", config.DisplayTUI, false, false, config.DisplayTUI},
		{"explicit none", config.DisplayNone, false, true, config.DisplayNone},
		{"quiet wins", config.DisplayBars, true, true, config.DisplayNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := &Application{
				Config:     config.AppConfig{Display: tt.display, Quiet: tt.quiet},
				isTerminal: func(io.Writer) bool { return tt.terminal },
			}
			if got := a.resolveDisplay(io.Discard); got != tt.want {
				t.Errorf("resolveDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-version"}, true},
		{[]string{"-w", "3", "--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-v"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}

	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "progressrace "+Version) {
		t.Errorf("unexpected version line %q", out.String())
	}
}
