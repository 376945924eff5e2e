package lasso

import "sync"

// FrameScheduler is a single-slot cancellable frame mailbox. Scheduling a
// new frame replaces any unfired previous one (debounce by cancellation,
// not queuing), so the callback that eventually runs always observes the
// latest fully consistent input snapshot — partial frames are impossible
// by construction.
//
// The scheduler is synchronous: nothing runs until the host drives
// RunPending, typically from its paint callback.
type FrameScheduler struct {
	mu      sync.Mutex
	pending func()
}

// Schedule stores fn as the pending frame, replacing any unfired one.
func (s *FrameScheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.pending = fn
	s.mu.Unlock()
}

// Cancel drops the pending frame, if any. It reports whether a frame was
// pending.
func (s *FrameScheduler) Cancel() bool {
	s.mu.Lock()
	had := s.pending != nil
	s.pending = nil
	s.mu.Unlock()
	return had
}

// Pending reports whether a frame is waiting to run.
func (s *FrameScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// RunPending fires the latest scheduled frame, if any, and clears the
// slot. It reports whether a frame ran.
func (s *FrameScheduler) RunPending() bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}
