package session

import (
	"testing"

	"github.com/veridex/trustlens/internal/model"
)

func analysis(subject string) *model.Analysis {
	return &model.Analysis{Subject: subject}
}

func TestSession_AcceptsLatest(t *testing.T) {
	s := New()
	seq := s.Begin()

	if !s.Accept(seq, analysis("first")) {
		t.Fatal("expected first result to be accepted")
	}
	if got := s.Current(); got == nil || got.Subject != "first" {
		t.Errorf("unexpected current analysis: %+v", got)
	}
}

func TestSession_DropsStaleResponse(t *testing.T) {
	s := New()

	slow := s.Begin()
	fast := s.Begin()

	if !s.Accept(fast, analysis("fresh")) {
		t.Fatal("expected newest result to be accepted")
	}
	// The older request resolves late; it must not overwrite.
	if s.Accept(slow, analysis("stale")) {
		t.Error("stale result must be dropped")
	}
	if got := s.Current(); got == nil || got.Subject != "fresh" {
		t.Errorf("stale result overwrote fresh one: %+v", got)
	}
}

func TestSession_DropsResultOlderThanPendingRequest(t *testing.T) {
	s := New()

	first := s.Begin()
	s.Begin() // newer request in flight, not yet resolved

	if s.Accept(first, analysis("old")) {
		t.Error("result must be dropped once a newer request exists")
	}
	if s.Current() != nil {
		t.Errorf("expected no current analysis, got %+v", s.Current())
	}
}

func TestSession_Reset(t *testing.T) {
	s := New()
	seq := s.Begin()
	s.Accept(seq, analysis("a"))

	s.Reset()

	if s.Current() != nil {
		t.Error("expected nil current after reset")
	}
	// A request begun before the reset must not resurrect its result.
	if s.Accept(seq, analysis("zombie")) {
		t.Error("pre-reset result must be dropped")
	}
}

func TestSession_RepeatAcceptSameSequence(t *testing.T) {
	s := New()
	seq := s.Begin()

	if !s.Accept(seq, analysis("a")) {
		t.Fatal("first accept should succeed")
	}
	if s.Accept(seq, analysis("b")) {
		t.Error("second accept with the same sequence must be rejected")
	}
}
