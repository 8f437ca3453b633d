package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arohiabhilasha/FocusFlow/pkg/model"
	"github.com/arohiabhilasha/FocusFlow/pkg/suggest"
	"github.com/arohiabhilasha/FocusFlow/pkg/tasks"
)

type memPersister struct {
	stored  []model.Task
	saveErr error
}

func (p *memPersister) Load() []model.Task { return p.stored }

func (p *memPersister) Save(ts []model.Task) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.stored = ts
	return nil
}

type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

func newTestStore(p *memPersister) *tasks.Store {
	n := 0
	return tasks.Open(p, tasks.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func TestAddTask(t *testing.T) {
	p := &memPersister{}
	store := newTestStore(p)
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "a", "Write report", "enter")

	if store.Len() != 1 {
		t.Fatalf("Expected 1 task, got %d", store.Len())
	}
	if got := store.Tasks()[0].Title; got != "Write report" {
		t.Errorf("Expected title 'Write report', got %q", got)
	}
	if m.inputMode != inputNone {
		t.Error("Expected input to close after adding")
	}
	if !strings.Contains(m.View(), "Write report") {
		t.Error("Expected the new task in the widget")
	}
}

func TestAddBlankTitle(t *testing.T) {
	store := newTestStore(&memPersister{})
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "a", "   ", "enter")

	if store.Len() != 0 {
		t.Errorf("Expected no tasks, got %d", store.Len())
	}
	if !strings.Contains(m.status, "empty") {
		t.Errorf("Expected empty-title status, got %q", m.status)
	}
}

func TestEscCancelsInput(t *testing.T) {
	store := newTestStore(&memPersister{})
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "a", "Half typed", "esc")

	if store.Len() != 0 {
		t.Errorf("Expected no tasks, got %d", store.Len())
	}
	if m.inputMode != inputNone {
		t.Error("Expected input to close on esc")
	}
}

func TestToggleFromToday(t *testing.T) {
	store := newTestStore(&memPersister{})
	m := New(store, nil, nil, false)
	store.AddBatch([]string{"First", "Second"})

	m, _ = press(t, m, "down", " ")

	ts := store.Tasks()
	if ts[0].Completed || !ts[1].Completed {
		t.Errorf("Expected only Second completed, got %+v", ts)
	}
	if m.cursor != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestObserverKeepsSnapshotCurrent(t *testing.T) {
	store := newTestStore(&memPersister{})
	m := New(store, nil, nil, false)

	store.Add("Added elsewhere")
	if len(m.snap.tasks) != 1 {
		t.Fatalf("Expected snapshot of 1 task, got %d", len(m.snap.tasks))
	}

	m.Close()
	store.Add("After close")
	if len(m.snap.tasks) != 1 {
		t.Errorf("Expected snapshot to stop updating after Close, got %d", len(m.snap.tasks))
	}
}

func TestSuggestImportsResults(t *testing.T) {
	store := newTestStore(&memPersister{})
	gw := suggest.NewGateway(stubGenerator{reply: `{"suggestions": ["Walk", "Stretch"]}`}, "", nil)
	m := New(store, gw, nil, false)

	m, cmd := press(t, m, "s", "calm day", "enter")
	if cmd == nil {
		t.Fatal("Expected a suggestion command")
	}
	if !m.pending {
		t.Error("Expected suggestion to be pending")
	}

	m, again := press(t, m, "s")
	if again != nil || m.inputMode != inputNone {
		t.Error("Expected suggest key to be ignored while pending")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)

	got := store.Tasks()
	if len(got) != 2 || got[0].Title != "Walk" || got[1].Title != "Stretch" {
		t.Errorf("Expected suggestions imported in order, got %+v", got)
	}
	if m.pending {
		t.Error("Expected pending to clear")
	}
}

func TestSuggestFallback(t *testing.T) {
	store := newTestStore(&memPersister{})
	gw := suggest.NewGateway(stubGenerator{err: errors.New("offline")}, "", nil)
	m := New(store, gw, nil, false)

	m, cmd := press(t, m, "s", "enter")
	next, _ := m.Update(cmd())
	m = next.(Model)

	if store.Len() != len(suggest.Fallback()) {
		t.Errorf("Expected %d fallback tasks, got %d", len(suggest.Fallback()), store.Len())
	}
	if !strings.Contains(m.status, "unavailable") {
		t.Errorf("Expected fallback status, got %q", m.status)
	}
}

func TestManageDelete(t *testing.T) {
	store := newTestStore(&memPersister{})
	store.AddBatch([]string{"Keep", "Drop"})
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "tab", "down", "d", "n")
	if store.Len() != 2 {
		t.Fatalf("Expected delete to be cancelled, got %d tasks", store.Len())
	}

	m, _ = press(t, m, "d", "y")
	if store.Len() != 1 || store.Tasks()[0].Title != "Keep" {
		t.Errorf("Expected only Keep left, got %+v", store.Tasks())
	}
	if m.confirmDel {
		t.Error("Expected confirmation to close")
	}
}

func TestEditDescription(t *testing.T) {
	store := newTestStore(&memPersister{})
	store.Add("Plan week")
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "tab", "e", "Review calendar", "enter")

	task := store.Tasks()[0]
	if task.DescriptionText() != "Review calendar" {
		t.Errorf("Expected description saved, got %q", task.DescriptionText())
	}
	if !strings.Contains(m.View(), "Review calendar") {
		t.Error("Expected description shown under the selected task")
	}
}

func TestClearCompleted(t *testing.T) {
	store := newTestStore(&memPersister{})
	added := store.AddBatch([]string{"One", "Two", "Three"})
	store.Toggle(added[0].ID)
	store.Toggle(added[2].ID)
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "c")

	if store.Len() != 1 || store.Tasks()[0].Title != "Two" {
		t.Errorf("Expected only Two left, got %+v", store.Tasks())
	}
	if !strings.Contains(m.status, "Cleared 2") {
		t.Errorf("Expected clear status, got %q", m.status)
	}
}

func TestWidgetMode(t *testing.T) {
	store := newTestStore(&memPersister{})
	m := New(store, nil, nil, true)

	view := m.View()
	if !strings.Contains(view, "All Done") {
		t.Error("Expected All Done for an empty list")
	}
	if strings.Contains(view, "Manage") {
		t.Error("Expected no tabs in widget mode")
	}

	m, _ = press(t, m, "a")
	if m.inputMode != inputNone {
		t.Error("Expected add to be unavailable in widget mode")
	}

	m, _ = press(t, m, "w")
	if m.widgetMode {
		t.Error("Expected w to leave widget mode")
	}
	if !strings.Contains(m.View(), "Manage") {
		t.Error("Expected tabs after leaving widget mode")
	}
}

func TestWidgetPlaceholders(t *testing.T) {
	store := newTestStore(&memPersister{})
	store.AddBatch([]string{"Only one"})
	m := New(store, nil, nil, true)

	if got := strings.Count(m.View(), "┄"); got != 4 {
		t.Errorf("Expected 4 placeholder rows, got %d", got)
	}
}

func TestSaveWarningShown(t *testing.T) {
	p := &memPersister{saveErr: errors.New("disk full")}
	store := newTestStore(p)
	m := New(store, nil, nil, false)

	m, _ = press(t, m, "a", "Still visible", "enter")

	view := m.View()
	if !strings.Contains(view, "could not be saved") {
		t.Error("Expected a save warning")
	}
	if !strings.Contains(view, "Still visible") {
		t.Error("Expected the task to stay in memory")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "app", false},
		{"app", "app", false},
		{"widget", "widget", false},
		{"WIDGET", "widget", false},
		{"mode=widget", "widget", false},
		{"?mode=widget", "widget", false},
		{"?mode=other", "app", false},
		{"?foo=bar", "app", false},
		{"fullscreen", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
