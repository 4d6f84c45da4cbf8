package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

// fakeBackend is an in-memory REST backend speaking the JSON envelope.
type fakeBackend struct {
	mu       sync.Mutex
	scripts  []script.Script
	nextID   uint
	requests []string

	// reject, when set for "METHOD /path", is returned as the raw reply.
	reject map[string]string
}

func newFakeBackend(scripts ...script.Script) *fakeBackend {
	f := &fakeBackend{nextID: 100, reject: map[string]string{}}
	f.scripts = append(f.scripts, scripts...)
	return f
}

func (f *fakeBackend) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeBackend) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// rejectWith makes every "METHOD /path" request answer 400 with raw.
func (f *fakeBackend) rejectWith(key, raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reject[key] = raw
}

func (f *fakeBackend) write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	if raw, ok := f.reject[key]; ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(raw))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/scripts")
	switch {
	case r.Method == http.MethodGet && path == "":
		f.write(w, http.StatusOK, map[string]interface{}{"success": true, "data": f.scripts, "count": len(f.scripts)})

	case r.Method == http.MethodPost && path == "":
		var in script.Input
		json.NewDecoder(r.Body).Decode(&in)
		s := in.ToScript()
		s.ApplyDefaults()
		s.ID = f.nextID
		s.DateCreated = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
		f.nextID++
		f.scripts = append(f.scripts, *s)
		f.write(w, http.StatusCreated, map[string]interface{}{"success": true, "data": s})

	case r.Method == http.MethodPost && path == "/sample-data":
		f.scripts = append(f.scripts, script.Script{ID: f.nextID, Name: "Sample", Category: "BD", Priority: script.PriorityLow, Status: script.StatusPending})
		f.nextID++
		f.write(w, http.StatusOK, map[string]interface{}{"success": true, "imported_count": 1})

	default:
		rest := strings.TrimPrefix(path, "/")
		parts := strings.Split(rest, "/")
		id, err := strconv.Atoi(parts[0])
		idx := f.indexOf(uint(id))
		if err != nil || idx < 0 {
			f.write(w, http.StatusNotFound, map[string]interface{}{"success": false, "error": "Script no encontrado"})
			return
		}
		switch {
		case r.Method == http.MethodPut && len(parts) == 1:
			var in script.Input
			json.NewDecoder(r.Body).Decode(&in)
			updated := in.ToScript()
			updated.ID = f.scripts[idx].ID
			updated.DateCreated = f.scripts[idx].DateCreated
			f.scripts[idx] = *updated
			f.write(w, http.StatusOK, map[string]interface{}{"success": true, "data": updated})
		case r.Method == http.MethodDelete && len(parts) == 1:
			f.scripts = append(f.scripts[:idx], f.scripts[idx+1:]...)
			f.write(w, http.StatusOK, map[string]interface{}{"success": true})
		case r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "apply":
			now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
			f.scripts[idx].Status = script.StatusApplied
			f.scripts[idx].DateApplied = &now
			f.write(w, http.StatusOK, map[string]interface{}{"success": true, "data": f.scripts[idx]})
		default:
			http.Error(w, fmt.Sprintf("unexpected %s", key), http.StatusMethodNotAllowed)
		}
	}
}

func (f *fakeBackend) indexOf(id uint) int {
	for i, s := range f.scripts {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// setupTestApp starts a fake backend and an App talking to it through the
// real API client. Toasts do not expire.
func setupTestApp(t *testing.T, scripts ...script.Script) (*App, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend(scripts...)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := apiclient.New(srv.URL + "/api")
	notifier := NewNotifier(0)
	t.Cleanup(notifier.Close)

	return NewApp(client, notifier, logger.NewTestLogger()), backend
}

func testScript(id uint, name string, status script.Status) script.Script {
	return script.Script{
		ID:          id,
		Name:        name,
		Category:    script.CategoryDatabase,
		Priority:    script.PriorityMedium,
		Status:      status,
		Responsible: "DBA",
		DateCreated: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func lastToast(app *App) Toast {
	toasts := app.Notifier().Active()
	if len(toasts) == 0 {
		return Toast{}
	}
	return toasts[len(toasts)-1]
}
