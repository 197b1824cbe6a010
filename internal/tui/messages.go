package tui

import (
	"time"

	"github.com/agbru/progressrace/internal/metrics"
	"github.com/agbru/progressrace/internal/sysmon"
)

// RepaintMsg asks the model to read a fresh snapshot from the store.
type RepaintMsg struct{}

// RaceDoneMsg tells the model that every worker has stopped.
type RaceDoneMsg struct{}

// TickMsg drives periodic resource sampling.
type TickMsg time.Time

// StatsMsg carries resource samples for the header.
type StatsMsg struct {
	Sys     sysmon.Stats
	Runtime metrics.RuntimeSample
}
