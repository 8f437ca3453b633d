// Package tasks owns the in-memory task collection. Every change goes through a
// Store method, which saves the whole collection and then notifies observers.
package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arohiabhilasha/FocusFlow/pkg/logging"
	"github.com/arohiabhilasha/FocusFlow/pkg/model"
)

// Persister is the storage the Store loads from once and saves to after every change.
type Persister interface {
	Load() []model.Task
	Save([]model.Task) error
}

// Observer receives a snapshot of the collection after each change.
type Observer func([]model.Task)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is not safe for concurrent use; callers drive it from one goroutine.
type Store struct {
	tasks     []model.Task
	persister Persister
	observers []Observer
	lastErr   error
	issued    map[string]bool

	now   func() time.Time
	newID func() string
	log   *logging.Logger
}

// Open loads the stored collection and returns a Store holding it. Nothing is
// saved until the first change.
func Open(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		issued:    make(map[string]bool),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	s.log = s.log.WithComponent("tasks")

	loaded := p.Load()
	s.tasks = make([]model.Task, 0, len(loaded))
	for _, t := range loaded {
		if s.issued[t.ID] {
			s.log.Warn("dropping stored task with duplicate id", "id", t.ID)
			continue
		}
		s.issued[t.ID] = true
		s.tasks = append(s.tasks, t.Clone())
	}
	return s
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Resolve finds the task whose id equals ref or, failing that, is the only id
// starting with ref.
func (s *Store) Resolve(ref string) (model.Task, error) {
	if t, ok := s.Get(ref); ok {
		return t, nil
	}
	if ref == "" {
		return model.Task{}, fmt.Errorf("empty task id")
	}
	var match *model.Task
	for i := range s.tasks {
		if strings.HasPrefix(s.tasks[i].ID, ref) {
			if match != nil {
				return model.Task{}, fmt.Errorf("task id %q is ambiguous", ref)
			}
			match = &s.tasks[i]
		}
	}
	if match == nil {
		return model.Task{}, fmt.Errorf("no task with id %q", ref)
	}
	return match.Clone(), nil
}

// LastSaveError returns the error from the most recent save, or nil if it succeeded.
func (s *Store) LastSaveError() error {
	return s.lastErr
}

// Subscribe registers fn to be called after every change, after the observers
// registered before it. The returned func removes it.
func (s *Store) Subscribe(fn Observer) func() {
	i := len(s.observers)
	s.observers = append(s.observers, fn)
	return func() { s.observers[i] = nil }
}

// Add appends a task titled title. Blank titles are ignored. It returns the new
// task and whether one was added.
func (s *Store) Add(title string) (model.Task, bool) {
	t, ok := s.newTask(title)
	if !ok {
		return model.Task{}, false
	}
	s.tasks = append(s.tasks, t)
	s.commit("add")
	return t.Clone(), true
}

// AddBatch appends one task per admissible title, in order, as a single change.
// Titles already in the collection are added again.
func (s *Store) AddBatch(titles []string) []model.Task {
	start := len(s.tasks)
	for _, title := range titles {
		if t, ok := s.newTask(title); ok {
			s.tasks = append(s.tasks, t)
		}
	}
	if len(s.tasks) == start {
		return nil
	}
	s.commit("add_batch")

	out := make([]model.Task, 0, len(s.tasks)-start)
	for _, t := range s.tasks[start:] {
		out = append(out, t.Clone())
	}
	return out
}

// Toggle flips the completed flag of the task with the given id.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.commit("toggle")
	return true
}

// Delete removes the task with the given id.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.commit("delete")
	return true
}

// SetDescription sets the description of the task with the given id. An empty
// text is stored as a present, empty description.
func (s *Store) SetDescription(id, text string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	d := text
	s.tasks[i].Description = &d
	s.commit("set_description")
	return true
}

// ClearCompleted removes every completed task and returns how many were removed.
// It saves even when nothing was removed.
func (s *Store) ClearCompleted() int {
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	s.commit("clear_completed")
	return removed
}

func (s *Store) newTask(title string) (model.Task, bool) {
	title, ok := model.NormalizeTitle(title)
	if !ok {
		return model.Task{}, false
	}
	// Ids are never handed out twice, even after the first holder is deleted.
	id := s.newID()
	for s.issued[id] {
		id = s.newID()
	}
	s.issued[id] = true
	return model.Task{
		ID:        id,
		Title:     title,
		CreatedAt: model.NewMillis(s.now()),
	}, true
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// commit saves the collection and then notifies observers. A failed save leaves
// the in-memory collection as it is.
func (s *Store) commit(op string) {
	snapshot := s.Tasks()
	s.lastErr = s.persister.Save(snapshot)
	if s.lastErr != nil {
		s.log.Warn("failed to persist tasks", "op", op, "error", s.lastErr)
	}
	for _, fn := range s.observers {
		if fn != nil {
			fn(s.Tasks())
		}
	}
}
