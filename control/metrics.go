// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Socket activity counters for the serving layer.

package control

import (
	"sync/atomic"
	"time"
)

// Metrics counts socket activity. The zero value is ready to use.
type Metrics struct {
	Accepted     atomic.Int64
	AcceptErrors atomic.Int64
	Served       atomic.Int64
	OpenStreams  atomic.Int64

	started atomic.Int64 // unix nanos of first snapshot-relevant event
}

// MarkStarted records the serving start time once.
func (m *Metrics) MarkStarted() {
	m.started.CompareAndSwap(0, time.Now().UnixNano())
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() map[string]int64 {
	out := map[string]int64{
		"accepted":      m.Accepted.Load(),
		"accept_errors": m.AcceptErrors.Load(),
		"served":        m.Served.Load(),
		"open_streams":  m.OpenStreams.Load(),
	}
	if s := m.started.Load(); s != 0 {
		out["uptime_ns"] = time.Now().UnixNano() - s
	}
	return out
}
