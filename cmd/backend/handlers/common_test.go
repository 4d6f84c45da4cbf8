package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/hairizuanbinnoorazman/script-tracker/testutil"
	"github.com/stretchr/testify/require"
)

type testEnvelope struct {
	Success       bool            `json:"success"`
	Data          json.RawMessage `json:"data"`
	Error         string          `json:"error"`
	Message       string          `json:"message"`
	Count         *int            `json:"count"`
	ImportedCount *int            `json:"imported_count"`
	Errors        []string        `json:"errors"`
	ExportedAt    string          `json:"exported_at"`
}

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

// setupTestRouter wires a ScriptHandler backed by an in-memory database.
func setupTestRouter(t *testing.T) (http.Handler, script.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &script.Script{})

	log := logger.NewTestLogger()
	store := script.NewMySQLStore(db, log)
	h := NewScriptHandler(store, log)
	h.now = func() time.Time { return fixedNow }

	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api").Subrouter())
	return router, store
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decodeData(t *testing.T, env testEnvelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func uintToString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
