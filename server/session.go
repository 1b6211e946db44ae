package main

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"seafling/internal/sim"
)

const maxSessions = 100

// SessionIdleTimeout is how long a voyage survives without an attached
// client before it is reaped
var SessionIdleTimeout = 2 * time.Minute

var ErrSessionNotFound = errors.New("session not found")

// Session is one voyage addressable by ID, kept alive across reconnects
type Session struct {
	ID         string
	Game       *Game
	lastActive time.Time
}

// SessionManager handles creation, lookup and reaping of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      sim.Config
	seed     int64
	tel      *Telemetry
}

// NewSessionManager creates a SessionManager. A zero seed seeds each world
// from the clock.
func NewSessionManager(cfg sim.Config, seed int64, tel *Telemetry) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		seed:     seed,
		tel:      tel,
	}
}

// CreateSession creates a voyage and starts its loop. Returns nil if the
// limit is reached.
func (sm *SessionManager) CreateSession(arena sim.Arena) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	id := uuid.NewString()
	seed := sm.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sess := &Session{
		ID:         id,
		Game:       NewGame(id, sm.cfg, arena, seed, sm.tel),
		lastActive: time.Now(),
	}
	sm.sessions[id] = sess
	sm.tel.SetActiveSessions(len(sm.sessions))
	go sess.Game.Run()
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sess, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// MarkActive refreshes the idle clock of a session
func (sm *SessionManager) MarkActive(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sess, ok := sm.sessions[id]; ok {
		sess.lastActive = time.Now()
	}
}

// RemoveSession stops and forgets a session
func (sm *SessionManager) RemoveSession(id string) {
	sm.mu.Lock()
	sess, ok := sm.sessions[id]
	if ok {
		delete(sm.sessions, id)
	}
	n := len(sm.sessions)
	sm.mu.Unlock()

	if ok {
		sess.Game.Stop()
		sm.tel.SetActiveSessions(n)
	}
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Reap removes detached sessions idle for longer than SessionIdleTimeout
// and returns how many were removed
func (sm *SessionManager) Reap(now time.Time) int {
	sm.mu.RLock()
	var expired []string
	for id, sess := range sm.sessions {
		if sess.Game.HasClient() {
			continue
		}
		if now.Sub(sess.lastActive) > SessionIdleTimeout {
			expired = append(expired, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range expired {
		sm.RemoveSession(id)
	}
	return len(expired)
}

// RunReaper reaps idle sessions every interval until stop is closed
func (sm *SessionManager) RunReaper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			sm.Reap(now)
		case <-stop:
			return
		}
	}
}

// StopAll stops every running voyage
func (sm *SessionManager) StopAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		sess.Game.Stop()
		delete(sm.sessions, id)
	}
}
