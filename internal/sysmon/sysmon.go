// Package sysmon samples host CPU and memory usage for the TUI header.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64  // bytes
}

// Sampler reads host statistics. The zero value is not usable; use New.
type Sampler struct {
	cpuPercent func(ctx context.Context) ([]float64, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// New returns a Sampler backed by gopsutil.
func New() *Sampler {
	return &Sampler{
		cpuPercent: func(ctx context.Context) ([]float64, error) {
			// Interval zero compares against the previous call.
			return cpu.PercentWithContext(ctx, 0, false)
		},
		virtualMem: mem.VirtualMemoryWithContext,
	}
}

// Sample collects CPU and memory usage. Fields whose source fails are left
// at zero.
func (s *Sampler) Sample(ctx context.Context) Stats {
	var st Stats
	if pcts, err := s.cpuPercent(ctx); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vm, err := s.virtualMem(ctx); err == nil && vm != nil {
		st.MemPercent = vm.UsedPercent
		st.MemUsed = vm.Used
	}
	return st
}
