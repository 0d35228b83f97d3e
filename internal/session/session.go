// Package session owns the "current analysis" for one user-facing view.
package session

import (
	"sync"

	"github.com/veridex/trustlens/internal/model"
)

// Session guards the current analysis against stale responses: each
// request takes a monotonically increasing sequence number, and a
// completed analysis is accepted only if no newer request was issued in
// the meantime. Without the guard a slow response from an old request
// could overwrite a fresher result.
type Session struct {
	mu       sync.Mutex
	issued   uint64
	accepted uint64
	current  *model.Analysis
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// Begin registers a new analysis request and returns its sequence
// number. Beginning a request implicitly marks all in-flight requests
// as stale.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Accept installs a completed analysis if it is still the newest
// request. Reports false when the result was stale and dropped.
func (s *Session) Accept(seq uint64, a *model.Analysis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued || seq <= s.accepted {
		return false
	}
	s.accepted = seq
	s.current = a
	return true
}

// Current returns the most recently accepted analysis, or nil.
func (s *Session) Current() *model.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Reset discards the current analysis and invalidates all in-flight
// requests, returning the session to the idle state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.accepted = s.issued
	s.current = nil
}
