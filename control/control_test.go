package control_test

import (
	"sync"
	"testing"

	"github.com/momentics/netsock/control"
)

func TestMetricsSnapshot(t *testing.T) {
	var m control.Metrics
	m.Accepted.Add(3)
	m.AcceptErrors.Add(1)
	m.OpenStreams.Add(2)
	m.OpenStreams.Add(-1)

	snap := m.Snapshot()
	if snap["accepted"] != 3 {
		t.Fatalf("accepted = %d, want 3", snap["accepted"])
	}
	if snap["accept_errors"] != 1 {
		t.Fatalf("accept_errors = %d, want 1", snap["accept_errors"])
	}
	if snap["open_streams"] != 1 {
		t.Fatalf("open_streams = %d, want 1", snap["open_streams"])
	}
	if _, ok := snap["uptime_ns"]; ok {
		t.Fatal("uptime reported before MarkStarted")
	}
	m.MarkStarted()
	if _, ok := m.Snapshot()["uptime_ns"]; !ok {
		t.Fatal("uptime missing after MarkStarted")
	}
}

func TestMetricsConcurrent(t *testing.T) {
	var m control.Metrics
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Accepted.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := m.Snapshot()["accepted"]; got != 800 {
		t.Fatalf("accepted = %d, want 800", got)
	}
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	dp.RegisterProbe("streams", func() any { return 7 })
	dp.RegisterProbe("streams", func() any { return 9 })

	state := dp.DumpState()
	if state["streams"] != 9 {
		t.Fatalf("probe value = %v, want replacement value 9", state["streams"])
	}
}

func TestDebugProbesMetricsAndNames(t *testing.T) {
	var m control.Metrics
	m.Accepted.Add(5)

	dp := control.NewDebugProbes()
	dp.RegisterMetrics("metrics", &m)
	dp.RegisterProbe("addr", func() any { return "127.0.0.1:1" })

	names := dp.Names()
	if len(names) != 2 || names[0] != "addr" || names[1] != "metrics" {
		t.Fatalf("names = %v, want [addr metrics]", names)
	}
	snap, ok := dp.DumpState()["metrics"].(map[string]int64)
	if !ok || snap["accepted"] != 5 {
		t.Fatalf("metrics probe = %v, want accepted 5", dp.DumpState()["metrics"])
	}
}
