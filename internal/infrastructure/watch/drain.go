// Package watch observes the feedback drop directory and feeds new executor
// feedback into the adaptation loop.
package watch

import (
	"sync"
	"time"
)

// drainScheduler coalesces bursts of file events into a single drain of the
// drop directory. Executors often write several feedback files in quick
// succession; the drain runs once the directory has been quiet for the
// settle window.
type drainScheduler struct {
	settle time.Duration
	drain  func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDrainScheduler(settle time.Duration, drain func()) *drainScheduler {
	return &drainScheduler{settle: settle, drain: drain}
}

// Notify records a file event and re-arms the settle timer. The drain fires
// once no further events arrive within the window.
func (s *drainScheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		s.timer = time.AfterFunc(s.settle, s.drain)
		return
	}
	s.timer.Stop()
	s.timer.Reset(s.settle)
}

// Stop cancels any pending drain.
func (s *drainScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
}
