package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/progressrace/internal/cli"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/progress"
	"github.com/agbru/progressrace/internal/sysmon"
)

const statsInterval = 500 * time.Millisecond

// Model is the bubbletea model of the race view. It is the only reader of
// the store while the TUI runs: workers send RepaintMsg and the model takes
// the snapshot itself, so every frame shows the latest state.
type Model struct {
	header HeaderModel
	keymap KeyMap
	help   help.Model

	store     cli.Snapshotter
	entries   []progress.Entry
	nameWidth int
	workers   int

	cancel     context.CancelFunc
	cancelling bool
	done       bool
	repaints   int

	sys     *sysmon.Sampler
	runtime *metrics.RuntimeSampler
}

// NewModel creates a race view over store. cancel stops the race when the
// user presses a quit key.
func NewModel(store cli.Snapshotter, workers, nameWidth int, version, runID string, cancel context.CancelFunc) Model {
	return Model{
		header:    NewHeaderModel(version, runID),
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		store:     store,
		nameWidth: nameWidth,
		workers:   workers,
		cancel:    cancel,
		sys:       sysmon.New(),
		runtime:   metrics.NewRuntimeSampler(),
	}
}

// Init starts periodic resource sampling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sampleStatsCmd(), tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case RepaintMsg:
		m.entries = m.store.Snapshot()
		m.repaints++
		return m, nil

	case RaceDoneMsg:
		m.entries = m.store.Snapshot()
		m.done = true
		m.header.SetDone()
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(m.sampleStatsCmd(), tickCmd())

	case StatsMsg:
		m.header.SetStats(msg.Sys, msg.Runtime)
		return m, nil
	}
	return m, nil
}

// handleKey cancels the race on a quit key. The model keeps running until
// RaceDoneMsg arrives, so the final frame reflects the stopped workers.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.cancelling && m.cancel != nil {
			m.cancel()
		}
		m.cancelling = true
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the header, one bar per worker and the status line.
func (m Model) View() string {
	total := m.store.TotalSteps()
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, m.renderLine(e, total))
	}
	for i := len(m.entries); i < m.workers; i++ {
		lines = append(lines, dimStyle.Render("waiting..."))
	}

	body := panelStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.statusLine()) + "\n"
}

func (m Model) renderLine(e progress.Entry, total int) string {
	step := min(max(e.Step, 0), total)
	bar := "[" + barFillStyle.Render(strings.Repeat("=", step)) +
		barEmptyStyle.Render(strings.Repeat("-", total-step)) + "]"
	line := nameStyle.Render(fmt.Sprintf("%-*s", m.nameWidth, e.Name)) + " " + bar
	if e.Done(total) && e.Finished {
		line += " " + durationStyle.Render(cli.FormatFinalDuration(e))
	}
	return line
}

func (m Model) statusLine() string {
	finished := 0
	for _, e := range m.entries {
		if e.Finished {
			finished++
		}
	}
	counts := fmt.Sprintf(" %d/%d finished", finished, m.workers)

	var status string
	switch {
	case m.done && m.cancelling:
		status = statusCancelStyle.Render("STOPPED")
	case m.done:
		status = statusDoneStyle.Render("DONE")
	case m.cancelling:
		status = statusCancelStyle.Render("STOPPING")
	default:
		status = statusRunningStyle.Render("RACING")
	}
	line := " " + status + dimStyle.Render(counts)
	if !m.done {
		line += "  " + m.help.View(m.keymap)
	}
	return line
}

func (m Model) sampleStatsCmd() tea.Cmd {
	sys, rt := m.sys, m.runtime
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsInterval)
		defer cancel()
		return StatsMsg{Sys: sys.Sample(ctx), Runtime: rt.Sample()}
	}
}

// tickCmd returns a command that sends a TickMsg after statsInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(statsInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
