// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named inspection probes over live socket state. The serving layer
// registers one probe per exposed datum and DumpState evaluates them all
// into a single report.

package control

import (
	"sort"
	"sync"
)

// Probe produces one inspection value when evaluated.
type Probe func() any

// DebugProbes is a registry of named probes. Create one with NewDebugProbes.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

// NewDebugProbes creates an empty probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]Probe)}
}

// RegisterProbe inserts a named probe, replacing any previous one under the
// same name.
func (dp *DebugProbes) RegisterProbe(name string, fn Probe) {
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

// RegisterMetrics exposes snapshots of the given counters under name.
func (dp *DebugProbes) RegisterMetrics(name string, m *Metrics) {
	dp.RegisterProbe(name, func() any { return m.Snapshot() })
}

// Names lists registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	dp.mu.RUnlock()
	sort.Strings(names)
	return names
}

// DumpState evaluates every probe. Evaluation holds the read lock, so a
// probe must not register new probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
