package session

import (
	"sync"
	"time"

	"github.com/yildizm/scrollmark/internal/config"
)

// Simulator drives the cosmetic progress bar. It knows nothing about the
// request; it only ticks until told to stop or until tick reports that the
// bar cannot move any further.
type Simulator struct {
	Step     int
	Interval time.Duration
	Ceiling  int
}

// NewSimulator builds a simulator from the progress settings
func NewSimulator(cfg config.ProgressConfig) Simulator {
	return Simulator{Step: cfg.Step, Interval: cfg.Interval, Ceiling: cfg.Ceiling}
}

// Start calls tick every Interval on its own goroutine. The returned stop
// function blocks until that goroutine has exited, so no tick can run after
// stop returns. Calling stop more than once is safe.
func (s Simulator) Start(tick func() bool) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if !tick() {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}
