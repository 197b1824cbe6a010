package cli

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/progressrace/internal/progress"
)

func TestRenderBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		step, n  int
		expected string
	}{
		{0, 5, "[-----]"},
		{5, 5, "[=====]"},
		{2, 5, "[==---]"},
		{7, 5, "[=====]"},
		{-3, 5, "[-----]"},
		{0, 0, "[]"},
	}
	for _, tt := range tests {
		if got := RenderBar(tt.step, tt.n); got != tt.expected {
			t.Errorf("RenderBar(%d, %d): expected %q, got %q", tt.step, tt.n, tt.expected, got)
		}
	}
}

func TestRenderBar_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("bar is n+2 wide with a done prefix", prop.ForAll(
		func(step, n int) bool {
			bar := RenderBar(step, n)
			if len(bar) != n+2 || bar[0] != '[' || bar[len(bar)-1] != ']' {
				return false
			}
			done := min(max(step, 0), n)
			inner := bar[1 : len(bar)-1]
			return inner == strings.Repeat("=", done)+strings.Repeat("-", n-done)
		},
		gen.IntRange(-10, 120),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func newTestStore(t *testing.T, total int, names ...string) *progress.Store {
	t.Helper()
	s := progress.NewStore(total)
	for _, n := range names {
		if err := s.Register(n, time.Now()); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	return s
}

func advance(t *testing.T, s *progress.Store, name string, steps int) {
	t.Helper()
	for range steps {
		if _, err := s.Advance(name); err != nil {
			t.Fatalf("advance %s: %v", name, err)
		}
	}
}

func TestRenderer_Frame(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 5, "Thread2", "Thread1")
	advance(t, store, "Thread1", 5)
	if err := store.MarkFinished("Thread1", 1500*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	advance(t, store, "Thread2", 2)

	var buf bytes.Buffer
	if err := NewRenderer(&buf, store).Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "\033[2A" +
		"Thread1    [=====] (1.500s)\n" +
		"Thread2    [==---]\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestRenderer_EmptyStoreWritesNothing(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := NewRenderer(&buf, progress.NewStore(5)).Render(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestRenderer_CursorUpUsesCurrentCount(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 3, "Thread1")
	var buf bytes.Buffer
	r := NewRenderer(&buf, store, WithNameWidth(0))

	if err := r.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[1A") {
		t.Errorf("expected cursor up by 1, got %q", buf.String())
	}

	if err := store.Register("Thread2", time.Now()); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := r.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[2A") {
		t.Errorf("expected cursor up by 2, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Thread1 [---]\n") {
		t.Errorf("expected zero-width name column, got %q", buf.String())
	}
}

func TestRenderer_UnfinishedFullBarHasNoDuration(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 2, "Thread1")
	advance(t, store, "Thread1", 2)

	var buf bytes.Buffer
	if err := NewRenderer(&buf, store).Render(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "(") {
		t.Errorf("duration must not be shown before it is recorded, got %q", buf.String())
	}
}

// exclusiveWriter fails the test if two Write calls overlap.
type exclusiveWriter struct {
	t        *testing.T
	inFlight atomic.Int32
	writes   atomic.Int32
}

func (w *exclusiveWriter) Write(p []byte) (int, error) {
	if w.inFlight.Add(1) != 1 {
		w.t.Error("concurrent Write calls detected")
	}
	defer w.inFlight.Add(-1)
	w.writes.Add(1)
	if !bytes.HasPrefix(p, []byte("\033[")) {
		w.t.Errorf("frame should start with a cursor movement, got %q", p)
	}
	time.Sleep(50 * time.Microsecond)
	return len(p), nil
}

func TestRenderer_ConcurrentRendersAreSerialized(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 10, "Thread1", "Thread2", "Thread3")
	w := &exclusiveWriter{t: t}
	r := NewRenderer(w, store)

	const goroutines, renders = 8, 25
	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := []string{"Thread1", "Thread2", "Thread3"}[g%3]
			for range renders {
				_, _ = store.Advance(name)
				if err := r.Repaint(); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()

	if got := w.writes.Load(); got != goroutines*renders {
		t.Errorf("every repaint must produce one write: expected %d, got %d", goroutines*renders, got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRenderer_WriteError(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, 1, "Thread1")
	err := NewRenderer(failingWriter{}, store).Repaint()
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}

func TestFormatLine(t *testing.T) {
	t.Parallel()
	e := progress.Entry{Name: "Thread12", Step: 3, FinalDuration: 2031 * time.Millisecond, Finished: true}
	if got := FormatLine(e, 3, 10); got != "Thread12   [===] (2.031s)" {
		t.Errorf("unexpected line %q", got)
	}
	e.Step, e.Finished = 1, false
	if got := FormatLine(e, 3, 10); got != "Thread12   [=--]" {
		t.Errorf("unexpected line %q", got)
	}
}
