package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		incomingID string
		status     int
		wantLevel  string
	}{
		{name: "keeps incoming request id", incomingID: "abc-123", status: http.StatusOK, wantLevel: "info"},
		{name: "generates request id", status: http.StatusNotFound, wantLevel: "info"},
		{name: "server errors log at error", status: http.StatusInternalServerError, wantLevel: "error"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			log := logger.NewTestLogger()
			var seenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID, _ = logger.RequestID(r.Context())
				w.WriteHeader(tc.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/scripts", nil)
			if tc.incomingID != "" {
				req.Header.Set(RequestIDHeader, tc.incomingID)
			}
			w := httptest.NewRecorder()
			RequestLogger(log)(next).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.NotEmpty(t, seenID)
			assert.Equal(t, seenID, w.Header().Get(RequestIDHeader))
			if tc.incomingID != "" {
				assert.Equal(t, tc.incomingID, seenID)
			}

			entries := log.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0].Level)
			assert.Equal(t, tc.status, entries[0].Fields["status"])
			assert.Equal(t, seenID, entries[0].Fields["request_id"])
		})
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	log := logger.NewTestLogger()
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recoverer(log)(panicking).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Error interno del servidor"}`, w.Body.String())
	assert.True(t, log.HasMessage("error", "handler panic"))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"http://dashboard.local"})(ok)

	req := httptest.NewRequest(http.MethodGet, "/api/scripts", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "http://dashboard.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/scripts", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	NewHealthHandler(fakePinger{err: errors.New("down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
