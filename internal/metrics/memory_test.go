package metrics

import (
	"runtime"
	"testing"
)

func TestRuntimeSampler_Sample(t *testing.T) {
	t.Parallel()

	snap := NewRuntimeSampler().Sample()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
	if snap.Goroutines < 1 {
		t.Errorf("expected at least one goroutine, got %d", snap.Goroutines)
	}
}

func TestRuntimeSampler_CustomReader(t *testing.T) {
	t.Parallel()

	s := &RuntimeSampler{read: func(m *runtime.MemStats) {
		m.HeapAlloc = 42
		m.Sys = 100
		m.NumGC = 3
	}}
	snap := s.Sample()
	if snap.HeapAlloc != 42 || snap.Sys != 100 || snap.NumGC != 3 {
		t.Errorf("unexpected sample: %+v", snap)
	}
}
