package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/progressrace/internal/format"
	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/sysmon"
)

// HeaderModel renders the top bar: title, elapsed time and resource usage.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	runID     string
	width     int

	sys     sysmon.Stats
	runtime metrics.RuntimeSample
}

// NewHeaderModel creates a header whose timer starts now.
func NewHeaderModel(version, runID string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		runID:     runID,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// SetStats records the latest resource samples.
func (h *HeaderModel) SetStats(sys sysmon.Stats, rt metrics.RuntimeSample) {
	h.sys = sys
	h.runtime = rt
}

// Elapsed returns the time since the header was created, frozen by SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Progress Race"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")

	left := titleStyle.Render(titleText) + pipe +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))
	if h.runID != "" {
		left += pipe + dimStyle.Render("run "+h.runID[:min(8, len(h.runID))])
	}
	right := dimStyle.Render(fmt.Sprintf("CPU %.0f%%  MEM %.0f%%  heap %s  goroutines %d",
		h.sys.CPUPercent, h.sys.MemPercent, format.FormatBytes(h.runtime.HeapAlloc), h.runtime.Goroutines))

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
