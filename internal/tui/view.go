package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

const appTitle = "Gestor de Scripts de Base de Datos"

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(appTitle))
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view(m.view.Dialog.Title))
	case modeConfirm:
		b.WriteString(confirmStyle.Render(dashboard.DeletePrompt + "\n\n" + helpStyle.Render("y: eliminar • n: cancelar")))
	default:
		b.WriteString(m.renderMain())
	}
	b.WriteString("\n")

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderStats() string {
	s := m.view.Stats
	stat := func(n int, label string) string {
		return statStyle.Render(fmt.Sprintf("%d %s", n, label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat(s.Total, "Total"),
		stat(s.Pending, "Pendientes"),
		stat(s.Applied, "Aplicados"),
		stat(s.Error, "Con Error"),
	)
}

func orAll(v string) string {
	if v == "" {
		return "Todos"
	}
	return v
}

func (m Model) renderFilters() string {
	c := m.view.Criteria
	search := c.Search
	if m.mode == modeSearch {
		search = m.search.View()
	} else if search == "" {
		search = mutedStyle.Render("(vacío)")
	}
	status := "Todos"
	if c.Status != "" {
		status = dashboard.StatusText(script.Status(c.Status))
	}
	priority := "Todas"
	if c.Priority != "" {
		priority = dashboard.PriorityText(script.Priority(c.Priority))
	}
	return fmt.Sprintf("Buscar: %s  Estado: %s  Prioridad: %s  Categoría: %s",
		search, status, priority, orAll(c.Category))
}

func (m Model) renderMain() string {
	switch m.view.Display {
	case dashboard.DisplayLoading:
		return m.spin.View() + " Cargando scripts..."
	case dashboard.DisplayEmpty:
		return mutedStyle.Render("No se encontraron scripts\nAgrega un script o ajusta los filtros.")
	}

	cards := m.view.Grid.Cards
	start, end := m.window(len(cards))
	var b strings.Builder
	for i := start; i < end; i++ {
		style := cardStyle
		if i == m.cursor {
			style = selectedStyle
		}
		b.WriteString(style.Render(renderCard(cards[i])))
		b.WriteString("\n")
	}
	if m.busy > 0 {
		b.WriteString(m.spin.View())
	}
	return b.String()
}

// window returns the range of cards that fits the terminal around the cursor.
func (m Model) window(n int) (int, int) {
	const linesPerCard = 5
	visible := n
	if m.height > 0 {
		visible = (m.height - 14) / linesPerCard
		if visible < 1 {
			visible = 1
		}
	}
	if visible >= n {
		return 0, n
	}
	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}

func renderCard(c dashboard.Card) string {
	head := lipgloss.NewStyle().Bold(true).Render(c.Name) + " " +
		badge(c.Category.Text, lipgloss.Color("111")) + " " +
		badge(c.Priority.Text, priorityColors[script.Priority(c.Priority.Class)]) + " " +
		badge(c.Status.Text, statusColors[script.Status(c.Status.Class)])

	lines := []string{
		head,
		mutedStyle.Render(c.Path),
		fmt.Sprintf("Responsable: %s  Creado: %s", c.Responsible, c.Created),
	}
	if c.Applied != "" {
		lines[2] += "  Aplicado: " + c.Applied
	}
	if c.Notes != "" {
		lines = append(lines, mutedStyle.Render(c.Notes))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderToasts() string {
	var lines []string
	for _, t := range m.view.Toasts {
		text := t.Message
		if t.Title != "" {
			text = t.Title + ": " + text
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(toastColors[t.Kind]).Render("● "+text))
	}
	return strings.Join(lines, "\n")
}
