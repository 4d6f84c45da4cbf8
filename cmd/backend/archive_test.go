package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/hairizuanbinnoorazman/script-tracker/storage"
	"github.com/hairizuanbinnoorazman/script-tracker/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) script.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &script.Script{})
	return script.NewMySQLStore(db, logger.NewTestLogger())
}

func TestSnapshotAndRestore(t *testing.T) {
	ctx := context.Background()
	source := setupTestStore(t)
	require.NoError(t, source.Create(ctx, &script.Script{Name: "Fix indexes", Category: "BD", Priority: script.PriorityHigh}))
	require.NoError(t, source.Create(ctx, &script.Script{Name: "Grant read", Category: "Permisos", Priority: script.PriorityLow, Notes: "n"}))

	archive, err := storage.NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	name, count, err := snapshotScripts(ctx, source, archive, now)
	require.NoError(t, err)
	assert.Equal(t, "scripts-20240305T100000Z.json", name)
	assert.Equal(t, 2, count)

	snapshots, err := archive.List(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, name, snapshots[0].Name)

	target := setupTestStore(t)
	result, err := restoreSnapshot(ctx, target, archive, name)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, result.Errors)

	restored, err := target.List(ctx, script.ListFilter{Search: "grant"})
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "n", restored[0].Notes)

	t.Run("restoring twice does not duplicate", func(t *testing.T) {
		_, err := restoreSnapshot(ctx, target, archive, name)
		require.NoError(t, err)
		all, err := target.List(ctx, script.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestSnapshotEmptyStore(t *testing.T) {
	ctx := context.Background()
	archive, err := storage.NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	name, count, err := snapshotScripts(ctx, setupTestStore(t), archive, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)

	result, err := restoreSnapshot(ctx, setupTestStore(t), archive, name)
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
}

func TestRestoreSnapshot_Missing(t *testing.T) {
	archive, err := storage.NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	_, err = restoreSnapshot(context.Background(), setupTestStore(t), archive, "scripts-missing.json")
	assert.ErrorIs(t, err, storage.ErrSnapshotNotFound)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func TestNewRouter(t *testing.T) {
	router := newRouter(setupTestStore(t), okPinger{}, nil, logger.NewTestLogger())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/scripts", http.StatusOK},
		{http.MethodGet, "/api/scripts/stats", http.StatusOK},
		{http.MethodGet, "/api/scripts/42", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.connection().IsSQLite())
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "./snapshots", cfg.Storage.archiveOptions().BaseDir)
	assert.Equal(t, "json", cfg.Log.Format)
}
