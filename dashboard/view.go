package dashboard

import "github.com/hairizuanbinnoorazman/script-tracker/script"

// ActionKind names an action a card offers.
type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
	ActionApply  ActionKind = "apply"
)

// CardAction is a trigger rendered on a card.
type CardAction struct {
	Kind     ActionKind
	Label    string
	Icon     string
	ScriptID uint
}

// Badge is a labelled chip. Class carries the raw code for styling.
type Badge struct {
	Text  string
	Icon  string
	Class string
}

// Card is the view node of one script. Every field is plain text; renderers
// are responsible for escaping.
type Card struct {
	ID          uint
	Name        string
	Path        string
	Icon        string
	StatusClass string
	Category    Badge
	Priority    Badge
	Status      Badge
	Responsible string
	Created     string
	Applied     string
	Notes       string
	Actions     []CardAction
}

// HasAction reports whether the card offers kind.
func (c Card) HasAction(kind ActionKind) bool {
	for _, a := range c.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Grid is the projection of the filtered record set.
type Grid struct {
	Cards []Card
}

// Empty reports whether the grid has no cards.
func (g Grid) Empty() bool {
	return len(g.Cards) == 0
}

// ProjectCard builds the view node of s.
func ProjectCard(s script.Script) Card {
	path := s.Path
	if path == "" {
		path = "Sin ruta especificada"
	}
	responsible := s.Responsible
	if responsible == "" {
		responsible = "No asignado"
	}

	card := Card{
		ID:          s.ID,
		Name:        s.Name,
		Path:        path,
		Icon:        CategoryIcon(s.Category),
		StatusClass: string(s.Status),
		Category: Badge{
			Text:  s.Category,
			Icon:  CategoryIcon(s.Category),
			Class: "category",
		},
		Priority: Badge{
			Text:  PriorityText(s.Priority),
			Class: string(s.Priority),
		},
		Status: Badge{
			Text:  StatusText(s.Status),
			Icon:  StatusIcon(s.Status),
			Class: string(s.Status),
		},
		Responsible: responsible,
		Created:     FormatDate(&s.DateCreated),
		Notes:       s.Notes,
	}
	if s.DateApplied != nil {
		card.Applied = FormatDate(s.DateApplied)
	}

	card.Actions = append(card.Actions,
		CardAction{Kind: ActionEdit, Label: "Editar", Icon: "fas fa-edit", ScriptID: s.ID},
		CardAction{Kind: ActionDelete, Label: "Eliminar", Icon: "fas fa-trash", ScriptID: s.ID},
	)
	if s.IsPending() {
		card.Actions = append(card.Actions,
			CardAction{Kind: ActionApply, Label: "Marcar Aplicado", Icon: "fas fa-check", ScriptID: s.ID})
	}

	return card
}

// ProjectGrid builds a fresh grid from records, in order.
func ProjectGrid(records []script.Script) Grid {
	grid := Grid{Cards: make([]Card, 0, len(records))}
	for _, s := range records {
		grid.Cards = append(grid.Cards, ProjectCard(s))
	}
	return grid
}
