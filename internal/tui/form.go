package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

const (
	fieldName = iota
	fieldPath
	fieldCategory
	fieldPriority
	fieldStatus
	fieldResponsible
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nombre", "Ruta", "Categoría", "Prioridad", "Estado", "Responsable", "Notas"}

// fieldLimits follow the column sizes of the scripts table. Notes is a
// text column and stays unlimited.
var fieldLimits = [fieldCount]int{255, 500, 50, 20, 20, 100, 0}

// form edits a script.Input with one text input per field.
type form struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newForm() form {
	var f form
	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = fieldLimits[i]
		in.Width = 48
		f.inputs[i] = in
	}
	f.inputs[fieldPriority].Placeholder = "high | medium | low"
	f.inputs[fieldStatus].Placeholder = "pending | applied | error"
	f.inputs[fieldCategory].Placeholder = strings.Join(script.KnownCategories, " | ")
	return f
}

// load fills the inputs from in and focuses the first field.
func (f *form) load(in script.Input) {
	values := [fieldCount]string{
		in.Name, in.Path, in.Category, string(in.Priority), string(in.Status), in.Responsible, in.Notes,
	}
	if values[fieldPriority] == "" {
		values[fieldPriority] = string(script.PriorityMedium)
	}
	if values[fieldStatus] == "" {
		values[fieldStatus] = string(script.StatusPending)
	}
	for i := range f.inputs {
		f.inputs[i].SetValue(values[i])
		f.inputs[i].CursorEnd()
	}
	f.setFocus(0)
}

func (f *form) input() script.Input {
	v := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	return script.Input{
		Name:        v(fieldName),
		Path:        v(fieldPath),
		Category:    v(fieldCategory),
		Priority:    script.Priority(v(fieldPriority)),
		Status:      script.Status(v(fieldStatus)),
		Responsible: v(fieldResponsible),
		Notes:       v(fieldNotes),
	}
}

func (f *form) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab: campo • enter: guardar • esc: cancelar"))
	return dialogStyle.Render(b.String())
}
