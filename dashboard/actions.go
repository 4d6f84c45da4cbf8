package dashboard

import (
	"context"

	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

// Action is a user or system event the App reacts to.
type Action interface {
	isAction()
}

type (
	// Reload re-fetches the record set.
	Reload struct{}

	// SetSearch changes the free-text criterion.
	SetSearch struct{ Value string }

	// SetStatusFilter changes the status criterion.
	SetStatusFilter struct{ Value string }

	// SetCategoryFilter changes the category criterion.
	SetCategoryFilter struct{ Value string }

	// SetPriorityFilter changes the priority criterion.
	SetPriorityFilter struct{ Value string }

	// SetCriteria replaces every criterion at once.
	SetCriteria struct{ Criteria Criteria }

	// ClearFilters resets every criterion.
	ClearFilters struct{}

	// OpenCreate opens an empty form.
	OpenCreate struct{}

	// OpenEdit opens the form on an existing script.
	OpenEdit struct{ ID uint }

	// CloseDialog dismisses the form.
	CloseDialog struct{}

	// Submit saves the form.
	Submit struct{ Input script.Input }

	// DeleteScript deletes a script once Confirm agrees.
	DeleteScript struct {
		ID      uint
		Confirm Confirmer
	}

	// MarkApplied marks a pending script as applied.
	MarkApplied struct{ ID uint }

	// LoadSampleData loads the backend's sample scripts.
	LoadSampleData struct{}

	// DismissToast hides a toast before its timer fires.
	DismissToast struct{ ID string }
)

func (Reload) isAction()            {}
func (SetSearch) isAction()         {}
func (SetStatusFilter) isAction()   {}
func (SetCategoryFilter) isAction() {}
func (SetPriorityFilter) isAction() {}
func (SetCriteria) isAction()       {}
func (ClearFilters) isAction()      {}
func (OpenCreate) isAction()        {}
func (OpenEdit) isAction()          {}
func (CloseDialog) isAction()       {}
func (Submit) isAction()            {}
func (DeleteScript) isAction()      {}
func (MarkApplied) isAction()       {}
func (LoadSampleData) isAction()    {}
func (DismissToast) isAction()      {}

// Dispatch routes an action to the operation that handles it. Operations
// report their outcome through toasts, never through errors.
func (a *App) Dispatch(ctx context.Context, action Action) {
	switch act := action.(type) {
	case Reload:
		a.Reload(ctx)
	case SetSearch:
		a.UpdateCriteria(func(c *Criteria) { c.Search = act.Value })
	case SetStatusFilter:
		a.UpdateCriteria(func(c *Criteria) { c.Status = act.Value })
	case SetCategoryFilter:
		a.UpdateCriteria(func(c *Criteria) { c.Category = act.Value })
	case SetPriorityFilter:
		a.UpdateCriteria(func(c *Criteria) { c.Priority = act.Value })
	case SetCriteria:
		a.SetCriteria(act.Criteria)
	case ClearFilters:
		a.ClearFilters()
	case OpenCreate:
		a.OpenCreate()
	case OpenEdit:
		a.OpenEdit(act.ID)
	case CloseDialog:
		a.CloseDialog()
	case Submit:
		a.Submit(ctx, act.Input)
	case DeleteScript:
		a.Delete(ctx, act.ID, act.Confirm)
	case MarkApplied:
		a.MarkApplied(ctx, act.ID)
	case LoadSampleData:
		a.LoadSampleData(ctx)
	case DismissToast:
		a.notifier.Dismiss(act.ID)
	default:
		a.logger.Warn(ctx, "unknown dashboard action", map[string]interface{}{
			"action": action,
		})
	}
}
