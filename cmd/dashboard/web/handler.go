package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"github.com/hairizuanbinnoorazman/script-tracker/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures the web handler.
type Options struct {
	CookieName   string
	CookieSecret string
	CookieSecure bool
}

// Handler serves the dashboard page. Each browser session owns one
// dashboard.App; forms post events that are dispatched to it and then
// redirect back to the page.
type Handler struct {
	sessions *session.Manager
	cookie   *sessionCookie
	tmpl     *template.Template
	logger   logger.Logger
}

// NewHandler creates a new web handler.
func NewHandler(sessions *session.Manager, opts Options, log logger.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		sessions: sessions,
		cookie:   newSessionCookie(opts.CookieSecret, opts.CookieName, opts.CookieSecure, sessions.Duration()),
		tmpl:     tmpl,
		logger:   log,
	}, nil
}

// RegisterRoutes mounts the page and its event endpoints on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	events := r.PathPrefix("/events").Subrouter()
	events.HandleFunc("/reload", h.event(reloadAction)).Methods(http.MethodPost)
	events.HandleFunc("/filters", h.event(filterAction)).Methods(http.MethodPost)
	events.HandleFunc("/filters/clear", h.event(fixedAction(dashboard.ClearFilters{}))).Methods(http.MethodPost)
	events.HandleFunc("/dialog/create", h.event(fixedAction(dashboard.OpenCreate{}))).Methods(http.MethodPost)
	events.HandleFunc("/dialog/edit/{id:[0-9]+}", h.event(openEditAction)).Methods(http.MethodPost)
	events.HandleFunc("/dialog/close", h.event(fixedAction(dashboard.CloseDialog{}))).Methods(http.MethodPost)
	events.HandleFunc("/dialog/submit", h.event(submitAction)).Methods(http.MethodPost)
	events.HandleFunc("/scripts/{id:[0-9]+}/delete", h.event(deleteAction)).Methods(http.MethodPost)
	events.HandleFunc("/scripts/{id:[0-9]+}/apply", h.event(applyAction)).Methods(http.MethodPost)
	events.HandleFunc("/sample-data", h.event(fixedAction(dashboard.LoadSampleData{}))).Methods(http.MethodPost)
	events.HandleFunc("/toasts/{toast}/dismiss", h.event(dismissAction)).Methods(http.MethodPost)
}

// Health reports that the web process is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Index renders the dashboard for the caller's session. The
// confirm_delete query parameter shows the delete prompt for one card.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	app := h.app(w, r)
	data := newPageData(app.Snapshot(), r.URL.Query().Get("confirm_delete"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error(r.Context(), "failed to render dashboard", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// actionFromRequest turns a form post into a dashboard action. A nil action
// means the request was not understood and nothing is dispatched.
type actionFromRequest func(r *http.Request) dashboard.Action

func (h *Handler) event(build actionFromRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.logger.Warn(r.Context(), "failed to parse form", map[string]interface{}{
				"error": err.Error(),
				"path":  r.URL.Path,
			})
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		// Without a live session there is no page the post came from.
		// Index starts a fresh one after the redirect.
		app, ok := h.liveApp(w, r)
		if !ok {
			h.logger.Warn(r.Context(), "event without a live session", map[string]interface{}{
				"path": r.URL.Path,
			})
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if action := build(r); action != nil {
			app.Dispatch(r.Context(), action)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// liveApp returns the App of the caller's session when its cookie is valid
// and the session has not expired. The cookie is re-issued so its MaxAge
// follows the sliding session expiry.
func (h *Handler) liveApp(w http.ResponseWriter, r *http.Request) (*dashboard.App, bool) {
	id := h.cookie.read(r)
	if id == "" {
		return nil, false
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		return nil, false
	}
	h.writeCookie(w, r, sess.ID)
	return sess.App, true
}

// app returns the App of the caller's session, starting a new session when
// the cookie is missing, forged or expired.
func (h *Handler) app(w http.ResponseWriter, r *http.Request) *dashboard.App {
	if app, ok := h.liveApp(w, r); ok {
		return app
	}

	sess := h.sessions.Create(r.Context())
	h.writeCookie(w, r, sess.ID)
	sess.App.Bootstrap(r.Context())
	return sess.App
}

func (h *Handler) writeCookie(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.cookie.write(w, id); err != nil {
		h.logger.Error(r.Context(), "failed to encode session cookie", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func fixedAction(action dashboard.Action) actionFromRequest {
	return func(*http.Request) dashboard.Action { return action }
}

func reloadAction(*http.Request) dashboard.Action {
	return dashboard.Reload{}
}

// filterAction replaces the whole criteria with the submitted filter form.
func filterAction(r *http.Request) dashboard.Action {
	return dashboard.SetCriteria{Criteria: dashboard.Criteria{
		Search:   r.PostForm.Get("search"),
		Status:   r.PostForm.Get("status"),
		Category: r.PostForm.Get("category"),
		Priority: r.PostForm.Get("priority"),
	}}
}

func openEditAction(r *http.Request) dashboard.Action {
	id, ok := pathID(r)
	if !ok {
		return nil
	}
	return dashboard.OpenEdit{ID: id}
}

func submitAction(r *http.Request) dashboard.Action {
	return dashboard.Submit{Input: script.Input{
		Name:        r.PostForm.Get("name"),
		Path:        r.PostForm.Get("path"),
		Category:    r.PostForm.Get("category"),
		Priority:    script.Priority(r.PostForm.Get("priority")),
		Status:      script.Status(r.PostForm.Get("status")),
		Responsible: r.PostForm.Get("responsible"),
		Notes:       r.PostForm.Get("notes"),
	}}
}

// deleteAction is only reachable from the rendered confirmation prompt, so
// the deletion is already confirmed.
func deleteAction(r *http.Request) dashboard.Action {
	id, ok := pathID(r)
	if !ok {
		return nil
	}
	return dashboard.DeleteScript{ID: id, Confirm: dashboard.AlwaysConfirm}
}

func applyAction(r *http.Request) dashboard.Action {
	id, ok := pathID(r)
	if !ok {
		return nil
	}
	return dashboard.MarkApplied{ID: id}
}

func dismissAction(r *http.Request) dashboard.Action {
	return dashboard.DismissToast{ID: mux.Vars(r)["toast"]}
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
