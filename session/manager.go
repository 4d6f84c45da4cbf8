package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
)

// AppFactory builds the dashboard App for a new session.
type AppFactory func() *dashboard.App

// Manager manages dashboard sessions with sliding expiry and automatic cleanup.
type Manager struct {
	store    *Store
	duration time.Duration
	newApp   AppFactory
	logger   logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewManager creates a new session manager with the given duration.
func NewManager(duration time.Duration, newApp AppFactory, log logger.Logger) *Manager {
	return &Manager{
		store:    NewStore(),
		duration: duration,
		newApp:   newApp,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Create starts a new session with a fresh App.
func (m *Manager) Create(ctx context.Context) *Session {
	now := time.Now()
	session := &Session{
		ID:        generateSessionID(),
		App:       m.newApp(),
		CreatedAt: now,
		expiresAt: now.Add(m.duration),
	}

	m.store.Set(session)

	m.logger.Info(ctx, "session created", map[string]interface{}{
		"session_id": session.ID,
	})

	return session
}

// Get retrieves a live session by ID and pushes its expiry forward.
func (m *Manager) Get(sessionID string) (*Session, error) {
	session, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.extend(time.Now().Add(m.duration))
	return session, nil
}

// Delete deletes a session by ID.
func (m *Manager) Delete(ctx context.Context, sessionID string) {
	m.store.Delete(sessionID)
	m.logger.Info(ctx, "session deleted", map[string]interface{}{
		"session_id": sessionID,
	})
}

// Duration returns how long a session stays alive without requests.
func (m *Manager) Duration() time.Duration {
	return m.duration
}

// StartCleanup starts a background goroutine that periodically cleans up expired sessions.
func (m *Manager) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				removed := m.store.Cleanup()
				if removed > 0 {
					m.logger.Info(context.Background(), "cleaned up expired sessions", map[string]interface{}{
						"removed_count": removed,
					})
				}
			case <-m.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// StopCleanup stops the cleanup goroutine.
func (m *Manager) StopCleanup() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func generateSessionID() string {
	return uuid.NewString()
}
