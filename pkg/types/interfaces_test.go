package types

import (
	"testing"
	"time"
)

func TestPoolState_String(t *testing.T) {
	tests := []struct {
		state    PoolState
		expected string
	}{
		{StateInactive, "Inactive"},
		{StateActive, "Active"},
		{StateDraining, "Draining"},
		{PoolState(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.state.String()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNoopMetrics(t *testing.T) {
	var m Metrics = NoopMetrics{}

	// must not panic
	m.RecordTaskSubmitted("pool")
	m.RecordTaskDuration("pool", time.Millisecond)
	m.RecordTaskPanic("pool", "boom")
	m.RecordQueueDepth("pool", 3)
	m.RecordWorkers("pool", 2)
}

func TestRealClock(t *testing.T) {
	clock := NewRealClock()

	start := clock.Now()
	timer := clock.NewTimer(5 * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C():
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	if clock.Since(start) < 5*time.Millisecond {
		t.Errorf("expected at least 5ms to elapse, got %v", clock.Since(start))
	}
}
