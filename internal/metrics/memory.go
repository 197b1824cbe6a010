package metrics

import "runtime"

// RuntimeSample is a point-in-time reading of the Go runtime, shown in the
// TUI header next to host CPU and memory.
type RuntimeSample struct {
	Goroutines int
	HeapAlloc  uint64
	Sys        uint64
	NumGC      uint32
}

// RuntimeSampler reads runtime statistics on demand.
type RuntimeSampler struct {
	read func(*runtime.MemStats)
}

// NewRuntimeSampler returns a sampler backed by runtime.ReadMemStats.
func NewRuntimeSampler() *RuntimeSampler {
	return &RuntimeSampler{read: runtime.ReadMemStats}
}

// Sample takes a reading. ReadMemStats stops the world briefly, so callers
// should sample at display rate, not per step.
func (s *RuntimeSampler) Sample() RuntimeSample {
	var m runtime.MemStats
	s.read(&m)
	return RuntimeSample{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}
