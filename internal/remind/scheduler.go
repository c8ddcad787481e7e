// Package remind schedules deferred reminders keyed by user id.
package remind

import (
	"sync"
	"time"
)

// Scheduler fires a callback once per user after a fixed delay. The
// base contract is fire-after-delay; cancellation exists behind the
// interface so callers can opt into it without changing the contract.
type Scheduler interface {
	// Schedule arms a reminder for the user. A reminder already armed
	// for the same user is replaced.
	Schedule(userID string, delay time.Duration, fn func())
	// Cancel disarms a pending reminder. Returns whether one was armed.
	Cancel(userID string) bool
	// Stop disarms all pending reminders.
	Stop()
}

// TimerScheduler is a timer-backed Scheduler.
type TimerScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewTimerScheduler creates an empty TimerScheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[string]*time.Timer)}
}

// Schedule arms a reminder for the user, replacing any pending one.
func (s *TimerScheduler) Schedule(userID string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[userID]; ok {
		t.Stop()
	}
	s.timers[userID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, userID)
		s.mu.Unlock()
		fn()
	})
}

// Cancel disarms the user's pending reminder if one is armed.
func (s *TimerScheduler) Cancel(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[userID]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, userID)
	return true
}

// Stop disarms all pending reminders.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
