package dashboard

import "github.com/hairizuanbinnoorazman/script-tracker/script"

// DialogMode is the state of the script form.
type DialogMode string

const (
	DialogClosed DialogMode = "closed"
	DialogCreate DialogMode = "create"
	DialogEdit   DialogMode = "edit"
)

const (
	TitleCreate = "Agregar Nuevo Script"
	TitleEdit   = "Editar Script"

	// FormResponsible pre-fills the responsible field of a new script.
	FormResponsible = "DBA"
)

// Dialog is the single reusable create/edit form. EditID is non-zero only in
// edit mode.
type Dialog struct {
	Mode   DialogMode
	EditID uint
	Title  string
	Form   script.Input
}

func newDialog() Dialog {
	d := Dialog{}
	d.reset()
	return d
}

// IsOpen reports whether the form is visible.
func (d Dialog) IsOpen() bool {
	return d.Mode != DialogClosed
}

func (d *Dialog) reset() {
	d.EditID = 0
	d.Title = TitleCreate
	d.Form = script.Input{Responsible: FormResponsible}
}

// openCreate clears the form and opens it for a new script.
func (d *Dialog) openCreate() {
	d.reset()
	d.Mode = DialogCreate
}

// openEdit fills the form from s.
func (d *Dialog) openEdit(s script.Script) {
	d.Mode = DialogEdit
	d.EditID = s.ID
	d.Title = TitleEdit
	d.Form = script.InputFrom(s)
}

func (d *Dialog) close() {
	d.Mode = DialogClosed
	d.reset()
}
