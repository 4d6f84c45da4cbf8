package web

import (
	"strconv"

	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

// pageData is what index.html renders.
type pageData struct {
	View          dashboard.View
	Statuses      []option
	Priorities    []option
	Categories    []option
	FormStatuses  []option
	FormPriority  []option
	FormCategory  []option
	ConfirmDelete *dashboard.Card
	DeletePrompt  string
}

var statusOrder = []script.Status{script.StatusPending, script.StatusApplied, script.StatusError}

var priorityOrder = []script.Priority{script.PriorityHigh, script.PriorityMedium, script.PriorityLow}

func statusOptions(selected string) []option {
	opts := make([]option, 0, len(statusOrder))
	for _, s := range statusOrder {
		opts = append(opts, option{Value: string(s), Label: dashboard.StatusText(s), Selected: string(s) == selected})
	}
	return opts
}

func priorityOptions(selected string) []option {
	opts := make([]option, 0, len(priorityOrder))
	for _, p := range priorityOrder {
		opts = append(opts, option{Value: string(p), Label: dashboard.PriorityText(p), Selected: string(p) == selected})
	}
	return opts
}

func categoryOptions(categories []string, selected string) []option {
	opts := make([]option, 0, len(categories)+1)
	found := false
	for _, c := range categories {
		opts = append(opts, option{Value: c, Label: c, Selected: c == selected})
		found = found || c == selected
	}
	// An edited script may carry a category no longer in the list.
	if selected != "" && !found {
		opts = append(opts, option{Value: selected, Label: selected, Selected: true})
	}
	return opts
}

func newPageData(view dashboard.View, confirmDelete string) pageData {
	form := view.Dialog.Form
	data := pageData{
		View:         view,
		Statuses:     statusOptions(view.Criteria.Status),
		Priorities:   priorityOptions(view.Criteria.Priority),
		Categories:   categoryOptions(view.Categories, view.Criteria.Category),
		FormStatuses: statusOptions(string(form.Status)),
		FormPriority: priorityOptions(string(form.Priority)),
		FormCategory: categoryOptions(view.Categories, form.Category),
		DeletePrompt: dashboard.DeletePrompt,
	}

	if id, err := strconv.ParseUint(confirmDelete, 10, 64); err == nil {
		for i := range view.Grid.Cards {
			if view.Grid.Cards[i].ID == uint(id) {
				card := view.Grid.Cards[i]
				data.ConfirmDelete = &card
				break
			}
		}
	}
	return data
}
