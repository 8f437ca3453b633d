// Package storage persists the task collection as one JSON array under a fixed
// key in a local key-value store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arohiabhilasha/FocusFlow/pkg/logging"
	"github.com/arohiabhilasha/FocusFlow/pkg/model"
)

// TasksKey is the key the task collection is stored under.
const TasksKey = "focusflow_tasks"

// ParseError reports a stored value that is not a task collection.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stored value under %q is not a task list: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Adapter loads and saves whole snapshots of the task collection. It never keeps
// a reference to the slices it is given.
type Adapter struct {
	kv  KV
	log *logging.Logger
}

func NewAdapter(kv KV, log *logging.Logger) *Adapter {
	if log == nil {
		log = logging.NewNop()
	}
	return &Adapter{kv: kv, log: log.WithComponent("storage")}
}

// Open builds an Adapter on top of the named backend.
func Open(backend, dir string, log *logging.Logger) (*Adapter, error) {
	kv, err := OpenKV(backend, dir)
	if err != nil {
		return nil, err
	}
	return NewAdapter(kv, log), nil
}

// Load returns the stored collection. A missing value, an unreadable store, or a
// value that does not decode as a task list all yield an empty collection.
func (a *Adapter) Load() []model.Task {
	tasks, err := a.LoadStrict()
	if err != nil {
		a.log.Warn("falling back to empty task list", "error", err)
		return []model.Task{}
	}
	return tasks
}

// LoadStrict is Load without the fallback. A missing value is still not an error.
func (a *Adapter) LoadStrict() ([]model.Task, error) {
	data, err := a.kv.Get(TasksKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", TasksKey, err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &ParseError{Key: TasksKey, Err: err}
	}
	if tasks == nil {
		// A stored "null" is not an error.
		tasks = []model.Task{}
	}
	for i, t := range tasks {
		if t.ID == "" {
			return nil, &ParseError{Key: TasksKey, Err: fmt.Errorf("task %d has no id", i)}
		}
	}
	return tasks, nil
}

// Save overwrites the stored collection with tasks.
func (a *Adapter) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := a.kv.Put(TasksKey, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	a.log.Debug("saved tasks", "count", len(tasks))
	return nil
}

// Raw returns the stored bytes, or "[]" when nothing has been saved.
func (a *Adapter) Raw() ([]byte, error) {
	data, err := a.kv.Get(TasksKey)
	if errors.Is(err, ErrNotFound) {
		return []byte("[]"), nil
	}
	return data, err
}

func (a *Adapter) Close() error {
	return a.kv.Close()
}
