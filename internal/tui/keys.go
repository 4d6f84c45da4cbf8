package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Status   key.Binding
	Priority key.Binding
	Category key.Binding
	Clear    key.Binding
	Reload   key.Binding
	Create   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Apply    key.Binding
	Samples  key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "estado")),
		Priority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prioridad")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "categoría")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "limpiar filtros")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		Create:   key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "nuevo")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "editar")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "eliminar")),
		Apply:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "marcar aplicado")),
		Samples:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "datos de ejemplo")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cerrar aviso")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Create, k.Edit, k.Delete, k.Apply, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload, k.Samples},
		{k.Search, k.Status, k.Priority, k.Category, k.Clear},
		{k.Create, k.Edit, k.Delete, k.Apply},
		{k.Dismiss, k.Help, k.Quit},
	}
}
