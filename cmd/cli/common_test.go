package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/script-tracker/cmd/backend/handlers"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/hairizuanbinnoorazman/script-tracker/testutil"
)

// setupTestAPI serves the real REST handlers on SQLite and returns the API
// base URL. HOME points at an empty directory so no user config is read.
func setupTestAPI(t *testing.T) (string, script.Store) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	color.NoColor = true

	log := logger.NewTestLogger()
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &script.Script{})
	store := script.NewMySQLStore(db, log)

	router := mux.NewRouter()
	handlers.NewScriptHandler(store, log).RegisterRoutes(router.PathPrefix("/api").Subrouter())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv.URL + "/api", store
}

// execute runs scriptctl against url with stdin and returns stdout and stderr.
func execute(t *testing.T, url, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--url", url}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
