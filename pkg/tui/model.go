// Package tui is the interactive terminal front end: a Today tab with the
// priority widget, a Manage tab with the full list, and a bare widget mode.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arohiabhilasha/FocusFlow/pkg/logging"
	"github.com/arohiabhilasha/FocusFlow/pkg/model"
	"github.com/arohiabhilasha/FocusFlow/pkg/suggest"
	"github.com/arohiabhilasha/FocusFlow/pkg/tasks"
	"github.com/arohiabhilasha/FocusFlow/pkg/widget"
)

const suggestTimeout = 30 * time.Second

type tab int

const (
	tabToday tab = iota
	tabManage
)

func (t tab) String() string {
	if t == tabManage {
		return "Manage"
	}
	return "Today"
}

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputIntent
	inputDescription
)

// snapshot is shared by every copy of Model so the store observer can update it.
type snapshot struct {
	tasks []model.Task
}

type suggestionsMsg struct {
	result suggest.Result
}

type Model struct {
	store       *tasks.Store
	gateway     *suggest.Gateway
	log         *logging.Logger
	snap        *snapshot
	unsubscribe func()

	tab        tab
	widgetMode bool
	cursor     int
	input      textinput.Model
	inputMode  inputMode
	editID     string
	confirmDel bool
	pendingDel *model.Task
	pending    bool
	status     string
	width      int
}

// New builds a Model over store. A nil gateway disables suggestions.
func New(store *tasks.Store, gateway *suggest.Gateway, log *logging.Logger, widgetMode bool) Model {
	if log == nil {
		log = logging.NewNop()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	snap := &snapshot{tasks: store.Tasks()}
	unsubscribe := store.Subscribe(func(ts []model.Task) {
		snap.tasks = ts
	})

	return Model{
		store:       store,
		gateway:     gateway,
		log:         log.WithComponent("tui"),
		snap:        snap,
		unsubscribe: unsubscribe,
		widgetMode:  widgetMode,
		input:       ti,
		status:      "Press 'a' to add, 's' for suggestions, tab to switch views.",
	}
}

// Close detaches the model from its store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(store *tasks.Store, gateway *suggest.Gateway, log *logging.Logger, widgetMode bool) error {
	m := New(store, gateway, log, widgetMode)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
	case suggestionsMsg:
		return m.applySuggestions(msg.result), nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.inputMode != inputNone {
			return m.updateInput(msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String()), nil
		}
		return m.updateKeys(msg.String())
	}
	return m, nil
}

// items are the rows the cursor moves over in the current view.
func (m Model) items() []model.Task {
	if m.widgetMode || m.tab == tabToday {
		return widget.Select(m.snap.tasks, widget.ScrollLimit).Tasks
	}
	return m.snap.tasks
}

func (m Model) selected() (model.Task, bool) {
	items := m.items()
	if len(items) == 0 {
		return model.Task{}, false
	}
	return items[clampCursor(m.cursor, len(items))], true
}

func (m Model) updateKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "w":
		m.widgetMode = !m.widgetMode
		m.cursor = clampCursor(m.cursor, len(m.items()))
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.items()))
		return m, nil
	case " ", "x", "enter":
		return m.toggleSelected(), nil
	}

	if m.widgetMode {
		return m, nil
	}

	switch key {
	case "tab":
		if m.tab == tabToday {
			m.tab = tabManage
		} else {
			m.tab = tabToday
		}
		m.cursor = 0
	case "a":
		return m.openInput(inputAdd, "What do you want to get done?", "")
	case "s":
		if m.gateway == nil {
			m.status = "Suggestions are not available"
			return m, nil
		}
		if m.pending || m.gateway.State() == suggest.StatePending {
			m.status = "Still fetching suggestions..."
			return m, nil
		}
		return m.openInput(inputIntent, "Describe your day (blank for a productive day)", "")
	case "e":
		if m.tab != tabManage {
			return m, nil
		}
		t, ok := m.selected()
		if !ok {
			m.status = "No task to edit"
			return m, nil
		}
		m.editID = t.ID
		return m.openInput(inputDescription, "Description", t.DescriptionText())
	case "d":
		if m.tab != tabManage {
			return m, nil
		}
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	case "c":
		n := m.store.ClearCompleted()
		m.cursor = clampCursor(m.cursor, len(m.items()))
		if n == 0 {
			m.status = "Nothing to clear"
		} else {
			m.status = fmt.Sprintf("Cleared %d completed task(s)", n)
		}
	}
	return m, nil
}

func (m Model) toggleSelected() Model {
	t, ok := m.selected()
	if !ok {
		return m
	}
	m.store.Toggle(t.ID)
	m.cursor = clampCursor(m.cursor, len(m.items()))
	if t.Completed {
		m.status = fmt.Sprintf("Reopened %q", t.Title)
	} else {
		m.status = fmt.Sprintf("Completed %q", t.Title)
	}
	return m
}

func (m Model) openInput(mode inputMode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.status = "Enter to confirm, Esc to cancel"
	return m, m.input.Focus()
}

func (m Model) closeInput() Model {
	m.input.SetValue("")
	m.input.Blur()
	m.inputMode = inputNone
	m.editID = ""
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeInput()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		value := m.input.Value()
		mode, id := m.inputMode, m.editID
		m = m.closeInput()

		switch mode {
		case inputAdd:
			if t, ok := m.store.Add(value); ok {
				m.status = fmt.Sprintf("Added %q", t.Title)
			} else {
				m.status = "Title cannot be empty"
			}
		case inputIntent:
			return m.startSuggest(value)
		case inputDescription:
			if m.store.SetDescription(id, value) {
				m.status = "Description saved"
			} else {
				m.status = "Task no longer exists"
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDeleteConfirm(key string) Model {
	switch key {
	case "y", "Y":
		if m.pendingDel != nil && m.store.Delete(m.pendingDel.ID) {
			m.status = fmt.Sprintf("Deleted %q", m.pendingDel.Title)
		} else {
			m.status = "Nothing to delete"
		}
		m.cursor = clampCursor(m.cursor, len(m.items()))
	case "n", "N", "esc":
		m.status = "Delete cancelled"
	default:
		return m
	}
	m.confirmDel = false
	m.pendingDel = nil
	return m
}

func (m Model) startSuggest(intent string) (tea.Model, tea.Cmd) {
	m.pending = true
	m.status = "Fetching suggestions..."
	g := m.gateway
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), suggestTimeout)
		defer cancel()
		return suggestionsMsg{result: g.Suggest(ctx, intent)}
	}
}

func (m Model) applySuggestions(res suggest.Result) Model {
	m.pending = false
	added := m.store.AddBatch(res.Suggestions)
	m.log.Info("imported suggestions", "source", string(res.Source), "count", len(added))

	switch {
	case len(added) == 0:
		m.status = "No suggestions to add"
	case res.Source == suggest.SourceFallback:
		m.status = fmt.Sprintf("Suggestion service unavailable, added %d default goals", len(added))
	default:
		m.status = fmt.Sprintf("Added %d suggested goals", len(added))
	}
	return m
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
