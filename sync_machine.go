package fsm

import (
	"sync"

	. "github.com/enetx/g"
)

// SyncMachine is a thread-safe wrapper around a StateMachine. The engine
// itself performs no locking and assumes one logical thread of control;
// SyncMachine is the external serializer for callers that issue commands or
// deliver asynchronous completions from multiple goroutines. Configure the
// machine first, then wrap it.
type SyncMachine[S comparable] struct {
	m  *StateMachine[S]
	mu sync.RWMutex
}

// NewSync wraps an already configured machine.
func NewSync[S comparable](m *StateMachine[S]) *SyncMachine[S] {
	return &SyncMachine[S]{m: m}
}

// Begin is the thread-safe version of StateMachine.Begin.
func (s *SyncMachine[S]) Begin(initial S) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.m.Begin(initial)
}

// IssueCommand is the thread-safe version of StateMachine.IssueCommand.
func (s *SyncMachine[S]) IssueCommand(command Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m.IssueCommand(command)
}

// Do runs fn while holding the write lock. Custom transitions whose deferred
// work finishes on another goroutine deliver their completion through it:
//
//	sm.Do(func(*fsm.StateMachine[S]) { t.Complete() })
func (s *SyncMachine[S]) Do(fn func(*StateMachine[S])) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.m)
}

// Current is the thread-safe version of StateMachine.Current.
func (s *SyncMachine[S]) Current() S {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.Current()
}

// Started is the thread-safe version of StateMachine.Started.
func (s *SyncMachine[S]) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.Started()
}

// IsTransitioning is the thread-safe version of StateMachine.IsTransitioning.
func (s *SyncMachine[S]) IsTransitioning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.IsTransitioning()
}

// States is the thread-safe version of StateMachine.States.
func (s *SyncMachine[S]) States() Slice[S] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.States()
}

// ToDOT is the thread-safe version of StateMachine.ToDOT.
func (s *SyncMachine[S]) ToDOT() String {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.m.ToDOT()
}
