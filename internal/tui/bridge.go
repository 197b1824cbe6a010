package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/progressrace/internal/cli"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/orchestration"
)

// finishTimeout bounds how long Finish waits for the program to exit.
const finishTimeout = 2 * time.Second

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so worker goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Display implements orchestration.ProgressDisplay on top of a bubbletea
// program. Workers never write to the terminal; they post RepaintMsg and
// the program's event loop draws.
type Display struct {
	ref     *programRef
	program *tea.Program
	metrics *metrics.Race

	exited   chan struct{}
	exitOnce sync.Once
}

var _ orchestration.ProgressDisplay = (*Display)(nil)

// Options configures a Display.
type Options struct {
	Workers   int
	NameWidth int
	Version   string
	RunID     string
	Metrics   *metrics.Race
	// ProgramOptions are passed to tea.NewProgram.
	ProgramOptions []tea.ProgramOption
}

// NewDisplay creates a display over store. cancel is invoked when the user
// asks to stop the race. The program is created here, so Repaint and Finish
// may be called before Run starts.
func NewDisplay(store cli.Snapshotter, cancel context.CancelFunc, opts Options) *Display {
	// Rebuild styles from the current ui theme (set by app via InitTheme).
	initTUIStyles()

	model := NewModel(store, opts.Workers, opts.NameWidth, opts.Version, opts.RunID, cancel)
	d := &Display{
		ref:     &programRef{},
		program: tea.NewProgram(model, opts.ProgramOptions...),
		metrics: opts.Metrics,
		exited:  make(chan struct{}),
	}
	d.ref.SetProgram(d.program)
	return d
}

// Run runs the bubbletea program and blocks until it exits. The program
// renders inline so its last frame stays on screen.
func (d *Display) Run() error {
	defer d.markExited()

	if _, err := d.program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (d *Display) markExited() {
	d.exitOnce.Do(func() { close(d.exited) })
}

// Repaint posts a redraw request to the program.
func (d *Display) Repaint() error {
	d.ref.Send(RepaintMsg{})
	d.metrics.Rendered(nil)
	return nil
}

// Finish posts RaceDoneMsg and waits for the program to draw its final
// frame and exit.
func (d *Display) Finish() error {
	d.ref.Send(RaceDoneMsg{})
	select {
	case <-d.exited:
		return nil
	case <-time.After(finishTimeout):
		return fmt.Errorf("tui: program did not exit within %s", finishTimeout)
	}
}

// Done is closed once the program has exited.
func (d *Display) Done() <-chan struct{} {
	return d.exited
}
