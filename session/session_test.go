package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(duration time.Duration) *Manager {
	log := logger.NewTestLogger()
	return NewManager(duration, func() *dashboard.App {
		return dashboard.NewApp(nil, dashboard.NewNotifier(0), log)
	}, log)
}

func newTestSession(id string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		App:       dashboard.NewApp(nil, dashboard.NewNotifier(0), logger.NewTestLogger()),
		CreatedAt: time.Now(),
		expiresAt: expiresAt,
	}
}

func TestSession_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "not expired",
			expiresAt: time.Now().Add(time.Hour),
			want:      false,
		},
		{
			name:      "expired",
			expiresAt: time.Now().Add(-time.Hour),
			want:      true,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-time.Second),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{expiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, session.IsExpired())
		})
	}
}

func TestStore_SetAndGet(t *testing.T) {
	store := NewStore()
	session := newTestSession("test-session-id", time.Now().Add(time.Hour))
	store.Set(session)

	retrieved, err := store.Get("test-session-id")
	require.NoError(t, err)
	assert.Same(t, session, retrieved)
	assert.Same(t, session.App, retrieved.App)
}

func TestStore_GetNonExistent(t *testing.T) {
	store := NewStore()

	_, err := store.Get("non-existent-id")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_GetExpired(t *testing.T) {
	store := NewStore()
	store.Set(newTestSession("expired-session", time.Now().Add(-time.Hour)))

	_, err := store.Get("expired-session")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	session := newTestSession("delete-session", time.Now().Add(time.Hour))
	session.App.Notifier().Success("pending toast")
	store.Set(session)

	store.Delete("delete-session")

	_, err := store.Get("delete-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, session.App.Notifier().Active())

	// Deleting twice is harmless.
	store.Delete("delete-session")
}

func TestStore_Cleanup(t *testing.T) {
	store := NewStore()
	store.Set(newTestSession("active-session", time.Now().Add(time.Hour)))
	expired := newTestSession("expired-session", time.Now().Add(-time.Hour))
	expired.App.Notifier().Success("stale")
	store.Set(expired)

	removed := store.Cleanup()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, err := store.Get("active-session")
	assert.NoError(t, err)

	_, err = store.Get("expired-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, expired.App.Notifier().Active())
}

func TestManager_Create(t *testing.T) {
	manager := newTestManager(24 * time.Hour)

	session := manager.Create(context.Background())
	assert.NotEmpty(t, session.ID)
	require.NotNil(t, session.App)
	assert.Equal(t, dashboard.DisplayLoading, session.App.Snapshot().Display)
	assert.False(t, session.IsExpired())

	other := manager.Create(context.Background())
	assert.NotEqual(t, session.ID, other.ID)
	assert.NotSame(t, session.App, other.App)
}

func TestManager_GetExtendsExpiry(t *testing.T) {
	manager := newTestManager(time.Hour)

	created := manager.Create(context.Background())
	before := created.ExpiresAt()
	time.Sleep(5 * time.Millisecond)

	retrieved, err := manager.Get(created.ID)
	require.NoError(t, err)
	assert.Same(t, created, retrieved)
	assert.True(t, retrieved.ExpiresAt().After(before))
}

func TestManager_GetExpired(t *testing.T) {
	manager := newTestManager(time.Millisecond)

	created := manager.Create(context.Background())

	time.Sleep(10 * time.Millisecond)

	_, err := manager.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestManager_Delete(t *testing.T) {
	manager := newTestManager(24 * time.Hour)

	created := manager.Create(context.Background())
	manager.Delete(context.Background(), created.ID)

	_, err := manager.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_StartCleanup(t *testing.T) {
	manager := newTestManager(20 * time.Millisecond)
	manager.Create(context.Background())

	manager.StartCleanup(10 * time.Millisecond)
	defer manager.StopCleanup()

	assert.Eventually(t, func() bool {
		return manager.store.Len() == 0
	}, time.Second, 10*time.Millisecond)

	// Stopping twice must not panic.
	manager.StopCleanup()
}

func TestManager_Concurrent(t *testing.T) {
	manager := newTestManager(24 * time.Hour)

	var wg sync.WaitGroup
	sessionIDs := make(chan string, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessionIDs <- manager.Create(context.Background()).ID
		}()
	}

	wg.Wait()
	close(sessionIDs)

	count := 0
	for sessionID := range sessionIDs {
		_, err := manager.Get(sessionID)
		assert.NoError(t, err)
		count++
	}

	assert.Equal(t, 100, count)
}
