// Package tui renders the script dashboard in a terminal.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

type mode int

const (
	modeGrid mode = iota
	modeSearch
	modeForm
	modeConfirm
)

var (
	statusCycle   = []string{"", string(script.StatusPending), string(script.StatusApplied), string(script.StatusError)}
	priorityCycle = []string{"", string(script.PriorityHigh), string(script.PriorityMedium), string(script.PriorityLow)}
)

// actionDoneMsg is sent when a dispatched backend action has finished.
type actionDoneMsg struct{}

// tickMsg refreshes the toasts, which expire on their own timers.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	app  *dashboard.App
	ctx  context.Context
	keys keyMap
	help help.Model
	spin spinner.Model

	search     textinput.Model
	prevSearch string
	form       form

	mode      mode
	view      dashboard.View
	cursor    int
	busy      int
	confirmID uint

	width  int
	height int
}

// New creates a model driving app. ctx bounds every backend call.
func New(ctx context.Context, app *dashboard.App) Model {
	search := textinput.New()
	search.Placeholder = "Buscar scripts..."
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		app:    app,
		ctx:    ctx,
		keys:   newKeyMap(),
		help:   help.New(),
		spin:   sp,
		search: search,
		form:   newForm(),
	}
	m.view = app.Snapshot()
	return m
}

// Init loads the scripts and starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrap(), m.spin.Tick, tick())
}

func (m Model) bootstrap() tea.Cmd {
	return func() tea.Msg {
		m.app.Bootstrap(m.ctx)
		return actionDoneMsg{}
	}
}

// run dispatches action off the update loop.
func (m *Model) run(action dashboard.Action) tea.Cmd {
	m.busy++
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		app.Dispatch(ctx, action)
		return actionDoneMsg{}
	}
}

// apply dispatches a local action and refreshes the snapshot at once.
func (m *Model) apply(action dashboard.Action) {
	m.app.Dispatch(m.ctx, action)
	m.refresh()
}

func (m *Model) refresh() {
	m.view = m.app.Snapshot()
	if n := len(m.view.Grid.Cards); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.mode == modeForm && !m.view.Dialog.IsOpen() {
		m.mode = modeGrid
	}
}

func (m Model) selected() (dashboard.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Grid.Cards) {
		return dashboard.Card{}, false
	}
	return m.view.Grid.Cards[m.cursor], true
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case actionDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		m.refresh()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Grid.Cards)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.prevSearch = m.view.Criteria.Search
		m.search.SetValue(m.prevSearch)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Status):
		m.apply(dashboard.SetStatusFilter{Value: cycle(statusCycle, m.view.Criteria.Status)})

	case key.Matches(msg, m.keys.Priority):
		m.apply(dashboard.SetPriorityFilter{Value: cycle(priorityCycle, m.view.Criteria.Priority)})

	case key.Matches(msg, m.keys.Category):
		categories := append([]string{""}, m.view.Categories...)
		m.apply(dashboard.SetCategoryFilter{Value: cycle(categories, m.view.Criteria.Category)})

	case key.Matches(msg, m.keys.Clear):
		m.apply(dashboard.ClearFilters{})

	case key.Matches(msg, m.keys.Reload):
		return m, m.run(dashboard.Reload{})

	case key.Matches(msg, m.keys.Create):
		m.apply(dashboard.OpenCreate{})
		m.openForm()

	case key.Matches(msg, m.keys.Edit):
		if card, ok := m.selected(); ok {
			m.apply(dashboard.OpenEdit{ID: card.ID})
			m.openForm()
		}

	case key.Matches(msg, m.keys.Delete):
		if card, ok := m.selected(); ok {
			m.confirmID = card.ID
			m.mode = modeConfirm
		}

	case key.Matches(msg, m.keys.Apply):
		if card, ok := m.selected(); ok && card.HasAction(dashboard.ActionApply) {
			return m, m.run(dashboard.MarkApplied{ID: card.ID})
		}

	case key.Matches(msg, m.keys.Samples):
		return m, m.run(dashboard.LoadSampleData{})

	case key.Matches(msg, m.keys.Dismiss):
		if len(m.view.Toasts) > 0 {
			m.apply(dashboard.DismissToast{ID: m.view.Toasts[0].ID})
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) openForm() {
	if !m.view.Dialog.IsOpen() {
		return
	}
	m.form.load(m.view.Dialog.Form)
	m.mode = modeForm
}

// updateSearch filters as the user types; esc restores the previous search.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeGrid
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.mode = modeGrid
		m.apply(dashboard.SetSearch{Value: m.prevSearch})
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.view.Criteria.Search {
		m.apply(dashboard.SetSearch{Value: m.search.Value()})
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.apply(dashboard.CloseDialog{})
		m.mode = modeGrid
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.form.next()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.prev()
		return m, nil
	case tea.KeyCtrlS:
		return m, m.run(dashboard.Submit{Input: m.form.input()})
	case tea.KeyEnter:
		if m.form.focus == fieldCount-1 {
			return m, m.run(dashboard.Submit{Input: m.form.input()})
		}
		m.form.next()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	switch msg.String() {
	case "y", "s", "enter":
		m.mode = modeGrid
		m.confirmID = 0
		return m, m.run(dashboard.DeleteScript{ID: id, Confirm: dashboard.AlwaysConfirm})
	case "n", "esc", "q":
		m.mode = modeGrid
		m.confirmID = 0
	}
	return m, nil
}

// cycle returns the value after current in values, wrapping around.
func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
