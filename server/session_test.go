package main

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"seafling/internal/sim"
)

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func newTestSessions() *SessionManager {
	return NewSessionManager(sim.DefaultConfig(), 1, nil)
}

func TestSessionIDIsUUID(t *testing.T) {
	sm := newTestSessions()
	defer sm.StopAll()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sess := sm.CreateSession(testArena)
		if !uuidRegex.MatchString(sess.ID) {
			t.Errorf("session ID %q is not a valid UUID v4", sess.ID)
		}
		if seen[sess.ID] {
			t.Fatalf("duplicate session ID %s", sess.ID)
		}
		seen[sess.ID] = true
	}
	if sm.Count() != 10 {
		t.Errorf("expected 10 sessions, got %d", sm.Count())
	}
}

func TestGetSessionNotFound(t *testing.T) {
	sm := newTestSessions()
	if _, err := sm.GetSession("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRemoveSession(t *testing.T) {
	sm := newTestSessions()
	sess := sm.CreateSession(testArena)
	sm.RemoveSession(sess.ID)

	if _, err := sm.GetSession(sess.ID); err == nil {
		t.Error("removed session should be gone")
	}
	select {
	case <-sess.Game.stop:
	default:
		t.Error("removed session should stop its game loop")
	}
	sm.RemoveSession(sess.ID) // unknown ID is a no-op
}

func TestReapIdleSessions(t *testing.T) {
	prev := SessionIdleTimeout
	SessionIdleTimeout = time.Minute
	defer func() { SessionIdleTimeout = prev }()

	sm := newTestSessions()
	defer sm.StopAll()

	idle := sm.CreateSession(testArena)
	attached := sm.CreateSession(testArena)
	fresh := sm.CreateSession(testArena)
	attached.Game.SetClient(&mockBroadcaster{})

	later := time.Now().Add(2 * time.Minute)
	sm.mu.Lock()
	fresh.lastActive = later
	sm.mu.Unlock()

	if n := sm.Reap(later); n != 1 {
		t.Errorf("expected 1 reaped session, got %d", n)
	}
	if _, err := sm.GetSession(idle.ID); err == nil {
		t.Error("idle detached session should be reaped")
	}
	if _, err := sm.GetSession(attached.ID); err != nil {
		t.Error("session with a client should survive")
	}
	if _, err := sm.GetSession(fresh.ID); err != nil {
		t.Error("recently active session should survive")
	}
}
