package server

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultSessionTimeout is how long an idle conversation keeps its
// identified caller before the session is discarded.
const DefaultSessionTimeout = 2 * time.Hour

// CallerIdentity is what a conversation knows about its caller once
// identification has run.
type CallerIdentity struct {
	// Phone is the caller's normalized E.164 number.
	Phone string

	// UserID is the profile ID, empty for unregistered callers.
	UserID string

	// DisplayName is how the agent addresses the caller.
	DisplayName string
}

type sessionInfo struct {
	caller     CallerIdentity
	lastAccess time.Time
}

// SessionManager tracks the identified caller per MCP session, so a
// caller identified once at the start of a conversation does not need
// to repeat their details for every tool call. Expired sessions are
// cleaned up in the background.
type SessionManager struct {
	sessions map[string]*sessionInfo
	mu       sync.RWMutex

	cleanupTicker *time.Ticker
	cleanupDone   chan struct{}
	timeout       time.Duration
	logger        *slog.Logger
}

// NewSessionManager creates a session manager with the given idle
// timeout. A non-positive timeout selects DefaultSessionTimeout.
func NewSessionManager(timeout time.Duration, logger *slog.Logger) *SessionManager {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &SessionManager{
		sessions:      make(map[string]*sessionInfo),
		cleanupTicker: time.NewTicker(10 * time.Minute),
		cleanupDone:   make(chan struct{}),
		timeout:       timeout,
		logger:        logger,
	}
	go m.cleanupExpired()
	return m
}

// SetCaller records the identified caller for a session.
func (m *SessionManager) SetCaller(sessionID string, caller CallerIdentity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = &sessionInfo{
		caller:     caller,
		lastAccess: time.Now(),
	}
}

// Caller returns the identified caller for a session, refreshing its
// idle timer. The second return is false when the session is unknown.
func (m *SessionManager) Caller(sessionID string) (CallerIdentity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.sessions[sessionID]
	if !ok {
		return CallerIdentity{}, false
	}
	info.lastAccess = time.Now()
	return info.caller, true
}

// Remove drops a session, typically when the conversation ends.
func (m *SessionManager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// ActiveSessions returns the number of tracked conversations.
func (m *SessionManager) ActiveSessions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *SessionManager) cleanupExpired() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.mu.Lock()
			now := time.Now()
			expired := 0
			for sessionID, info := range m.sessions {
				if now.Sub(info.lastAccess) > m.timeout {
					delete(m.sessions, sessionID)
					expired++
				}
			}
			m.mu.Unlock()
			if expired > 0 {
				m.logger.Info("cleaned up expired sessions", slog.Int("count", expired))
			}
		case <-m.cleanupDone:
			return
		}
	}
}

// Stop halts the cleanup goroutine. Safe to call once.
func (m *SessionManager) Stop() {
	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
	}
	if m.cleanupDone != nil {
		close(m.cleanupDone)
	}
}
