package dashboard

import (
	"context"
	"sort"
	"sync"

	"github.com/hairizuanbinnoorazman/script-tracker/apiclient"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

// Backend is the part of the REST API the dashboard drives.
type Backend interface {
	ListScripts(ctx context.Context, params apiclient.ListParams) (*apiclient.Envelope[[]script.Script], error)
	CreateScript(ctx context.Context, in script.Input) (*apiclient.Envelope[script.Script], error)
	UpdateScript(ctx context.Context, id uint, in script.Input) (*apiclient.Envelope[script.Script], error)
	DeleteScript(ctx context.Context, id uint) (*apiclient.Envelope[struct{}], error)
	ApplyScript(ctx context.Context, id uint) (*apiclient.Envelope[script.Script], error)
	LoadSampleData(ctx context.Context) (*apiclient.Envelope[struct{}], error)
}

// App holds the state of one dashboard instance. It is safe for concurrent
// use; network calls are made without holding the lock, so filter changes are
// never blocked by a pending save.
type App struct {
	backend  Backend
	notifier *Notifier
	logger   logger.Logger

	mu       sync.Mutex
	records  []script.Script
	filtered []script.Script
	criteria Criteria
	grid     Grid
	display  DisplayState
	stats    script.Stats
	dialog   Dialog
}

// NewApp creates an App that starts in the loading state with an empty store.
func NewApp(backend Backend, notifier *Notifier, log logger.Logger) *App {
	return &App{
		backend:  backend,
		notifier: notifier,
		logger:   log,
		display:  DisplayLoading,
		dialog:   newDialog(),
	}
}

// View is a consistent copy of the App state for renderers.
type View struct {
	Criteria   Criteria
	Grid       Grid
	Display    DisplayState
	Stats      script.Stats
	Dialog     Dialog
	Toasts     []Toast
	Categories []string
}

// Snapshot returns the current state.
func (a *App) Snapshot() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	cards := append([]Card(nil), a.grid.Cards...)
	return View{
		Criteria:   a.criteria,
		Grid:       Grid{Cards: cards},
		Display:    a.display,
		Stats:      a.stats,
		Dialog:     a.dialog,
		Toasts:     a.notifier.Active(),
		Categories: categoriesOf(a.records),
	}
}

// Records returns a copy of the full record set.
func (a *App) Records() []script.Script {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]script.Script(nil), a.records...)
}

// Filtered returns a copy of the filtered record set.
func (a *App) Filtered() []script.Script {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]script.Script(nil), a.filtered...)
}

// Notifier returns the toast surface of the app.
func (a *App) Notifier() *Notifier {
	return a.notifier
}

// Bootstrap performs the initial load and greets the user.
func (a *App) Bootstrap(ctx context.Context) {
	a.Reload(ctx)
	a.notifier.Show(ToastSuccess, "Aplicación cargada correctamente", "Bienvenido")
}

// Reload re-fetches the full record set and recomputes every derived view.
// On failure the previous records are kept and the display is restored.
func (a *App) Reload(ctx context.Context) bool {
	a.mu.Lock()
	a.display = DisplayLoading
	a.mu.Unlock()

	env, err := a.backend.ListScripts(ctx, apiclient.ListParams{})

	a.mu.Lock()
	defer a.mu.Unlock()

	if err != nil {
		a.logger.Error(ctx, "failed to load scripts", map[string]interface{}{
			"error": err.Error(),
		})
		a.notifier.Error(textsLoad.connection)
		a.display = displayFor(a.grid)
		return false
	}
	if !env.Success {
		a.logger.Warn(ctx, "backend rejected script list", map[string]interface{}{
			"error":  env.Error,
			"status": env.StatusCode,
		})
		a.notifier.Error(textsLoad.fallback)
		a.display = displayFor(a.grid)
		return false
	}

	a.records = append([]script.Script(nil), env.Data...)
	a.stats = ComputeStats(a.records)
	a.applyFiltersLocked()

	a.logger.Debug(ctx, "scripts loaded", map[string]interface{}{
		"total":    len(a.records),
		"filtered": len(a.filtered),
	})
	return true
}

// SetCriteria replaces the filter criteria and re-renders.
func (a *App) SetCriteria(c Criteria) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.criteria = c
	a.applyFiltersLocked()
}

// UpdateCriteria applies fn to the current criteria and re-renders.
func (a *App) UpdateCriteria(fn func(*Criteria)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.criteria)
	a.applyFiltersLocked()
}

// ClearFilters resets every criterion.
func (a *App) ClearFilters() {
	a.SetCriteria(Criteria{})
}

// applyFiltersLocked recomputes the filtered set and replaces the grid.
func (a *App) applyFiltersLocked() {
	a.filtered = Filter(a.records, a.criteria)
	a.grid = ProjectGrid(a.filtered)
	a.display = displayFor(a.grid)
}

// OpenCreate opens an empty form.
func (a *App) OpenCreate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dialog.openCreate()
}

// OpenEdit opens the form on the record with id. Unknown ids are ignored.
func (a *App) OpenEdit(id uint) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range a.records {
		if s.ID == id {
			a.dialog.openEdit(s)
			return true
		}
	}
	return false
}

// CloseDialog closes the form and clears the edit target.
func (a *App) CloseDialog() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dialog.close()
}

// Dialog returns the current form state.
func (a *App) Dialog() Dialog {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dialog
}

// categoriesOf lists the known categories followed by any other category in
// use, sorted.
func categoriesOf(records []script.Script) []string {
	seen := make(map[string]bool, len(script.KnownCategories))
	categories := append([]string(nil), script.KnownCategories...)
	for _, c := range categories {
		seen[c] = true
	}
	var extra []string
	for _, s := range records {
		if s.Category != "" && !seen[s.Category] {
			seen[s.Category] = true
			extra = append(extra, s.Category)
		}
	}
	sort.Strings(extra)
	return append(categories, extra...)
}
