package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/agbru/progressrace/internal/format"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/progress"
	"github.com/agbru/progressrace/internal/ui"
)

const (
	// DefaultNameWidth is the width of the left-aligned name column.
	DefaultNameWidth = 10

	barDone      = '='
	barRemaining = '-'
)

// Snapshotter is the read side of the progress store used by displays.
type Snapshotter interface {
	Snapshot() []progress.Entry
	TotalSteps() int
}

var _ Snapshotter = (*progress.Store)(nil)

// Renderer redraws one line per worker in place, moving the cursor up over
// the previous frame before writing the next one.
//
// Render calls are serialized by a single mutex held for the whole pass
// (snapshot, format, write), so frames never interleave on the terminal.
type Renderer struct {
	mu        sync.Mutex
	out       io.Writer
	store     Snapshotter
	nameWidth int
	colors    bool
	metrics   *metrics.Race
	buf       bytes.Buffer
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithNameWidth sets the name column width.
func WithNameWidth(width int) RendererOption {
	return func(r *Renderer) {
		if width >= 0 {
			r.nameWidth = width
		}
	}
}

// WithColors colors finished durations with the current theme.
func WithColors(enabled bool) RendererOption {
	return func(r *Renderer) { r.colors = enabled }
}

// WithRenderMetrics counts repaints in m.
func WithRenderMetrics(m *metrics.Race) RendererOption {
	return func(r *Renderer) { r.metrics = m }
}

// NewRenderer creates a renderer drawing store to out.
func NewRenderer(out io.Writer, store Snapshotter, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:       out,
		store:     store,
		nameWidth: DefaultNameWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws one full frame. The frame is assembled in memory and
// written with a single Write call.
func (r *Renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.store.Snapshot()
	total := r.store.TotalSteps()

	r.buf.Reset()
	if len(entries) > 0 {
		fmt.Fprintf(&r.buf, "\033[%dA", len(entries))
	}
	for _, e := range entries {
		r.writeLine(&r.buf, e, total)
	}
	if r.buf.Len() == 0 {
		return nil
	}
	if _, err := r.out.Write(r.buf.Bytes()); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	return nil
}

// Repaint renders a frame and records it in the run metrics.
func (r *Renderer) Repaint() error {
	err := r.Render()
	r.metrics.Rendered(err)
	return err
}

// Finish draws the final frame once all workers have stopped.
func (r *Renderer) Finish() error {
	return r.Repaint()
}

func (r *Renderer) writeLine(b *bytes.Buffer, e progress.Entry, total int) {
	fmt.Fprintf(b, "%-*s %s", r.nameWidth, e.Name, RenderBar(e.Step, total))
	if e.Done(total) && e.Finished {
		d := FormatFinalDuration(e)
		if r.colors {
			d = ui.ColorGreen() + d + ui.ColorReset()
		}
		b.WriteByte(' ')
		b.WriteString(d)
	}
	b.WriteByte('\n')
}

// FormatLine formats a single entry without colors.
func FormatLine(e progress.Entry, total, nameWidth int) string {
	line := fmt.Sprintf("%-*s %s", nameWidth, e.Name, RenderBar(e.Step, total))
	if e.Done(total) && e.Finished {
		line += " " + FormatFinalDuration(e)
	}
	return line
}

// FormatFinalDuration returns the "(1.234s)" suffix of a finished entry.
func FormatFinalDuration(e progress.Entry) string {
	return "(" + format.FormatSeconds(e.FinalDuration) + "s)"
}

// RenderBar returns "[" + step '=' + (n-step) '-' + "]". step is clamped
// to [0, n].
func RenderBar(step, n int) string {
	n = max(n, 0)
	step = min(max(step, 0), n)

	var b strings.Builder
	b.Grow(n + 2)
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i < step {
			b.WriteByte(barDone)
		} else {
			b.WriteByte(barRemaining)
		}
	}
	b.WriteByte(']')
	return b.String()
}
