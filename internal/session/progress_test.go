package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/yildizm/scrollmark/internal/config"
)

func TestNewSimulatorDefaults(t *testing.T) {
	sim := NewSimulator(config.DefaultConfig().Progress)
	if sim.Step != 5 || sim.Interval != 100*time.Millisecond || sim.Ceiling != 90 {
		t.Errorf("Unexpected simulator: %+v", sim)
	}
}

func TestSimulatorStopsWhenTickDeclines(t *testing.T) {
	var ticks int32
	sim := Simulator{Step: 5, Interval: time.Millisecond, Ceiling: 90}

	stop := sim.Start(func() bool {
		return atomic.AddInt32(&ticks, 1) < 3
	})
	time.Sleep(30 * time.Millisecond)
	stop()

	if got := atomic.LoadInt32(&ticks); got != 3 {
		t.Errorf("Expected ticking to end after 3 calls, got %d", got)
	}
}

func TestSimulatorNoTickAfterStop(t *testing.T) {
	var ticks int32
	sim := Simulator{Step: 5, Interval: time.Millisecond, Ceiling: 90}

	stop := sim.Start(func() bool {
		atomic.AddInt32(&ticks, 1)
		return true
	})
	time.Sleep(5 * time.Millisecond)
	stop()
	after := atomic.LoadInt32(&ticks)

	time.Sleep(10 * time.Millisecond)
	if got := atomic.LoadInt32(&ticks); got != after {
		t.Errorf("Tick ran after stop returned: %d -> %d", after, got)
	}

	stop() // second call must not panic or block
}
