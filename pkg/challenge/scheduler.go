package challenge

import (
	"sync"
	"time"
)

// RetryScheduler owns a single timer slot per key. Scheduling against a key
// that already holds a pending timer is refused, which is what keeps retry
// timers from stacking when failures arrive faster than the backoff window.
type RetryScheduler struct {
	mu    sync.Mutex
	clock Clock
	slots map[string]Timer
}

// NewRetryScheduler constructs a scheduler on the supplied clock. A nil clock
// defaults to the system clock.
func NewRetryScheduler(clock Clock) *RetryScheduler {
	if clock == nil {
		clock = SystemClock()
	}
	return &RetryScheduler{
		clock: clock,
		slots: make(map[string]Timer),
	}
}

// Schedule arms a timer for key unless one is already pending. It reports
// whether the timer was armed. The slot is released before fn runs, so fn may
// schedule a follow-up retry.
func (s *RetryScheduler) Schedule(key string, delay time.Duration, fn func()) bool {
	if key == "" || fn == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, pending := s.slots[key]; pending {
		return false
	}

	s.slots[key] = s.clock.AfterFunc(delay, func() {
		s.release(key)
		fn()
	})
	return true
}

// Cancel stops a pending timer for key, reporting whether one was pending.
func (s *RetryScheduler) Cancel(key string) bool {
	s.mu.Lock()
	timer, pending := s.slots[key]
	delete(s.slots, key)
	s.mu.Unlock()

	if !pending {
		return false
	}
	timer.Stop()
	return true
}

// IsScheduled reports whether key holds a pending timer.
func (s *RetryScheduler) IsScheduled(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, pending := s.slots[key]
	return pending
}

// PendingCount returns the number of armed timers across all keys.
func (s *RetryScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

func (s *RetryScheduler) release(key string) {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
}
