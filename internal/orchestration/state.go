package orchestration

import "fmt"

// State is the lifecycle phase of a Coordinator. A run moves strictly
// forward: Idle, Running, Draining, Done.
type State int32

const (
	// StateIdle is the state before Run.
	StateIdle State = iota
	// StateRunning means workers are being spawned or are racing.
	StateRunning
	// StateDraining means the barrier released and the pool is shutting down.
	StateDraining
	// StateDone means the summary is available.
	StateDone
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
