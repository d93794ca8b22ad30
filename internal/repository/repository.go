// Package repository applies task operations as load, mutate, save cycles.
package repository

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
)

// Store loads and saves the full task collection.
type Store interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
}

// Repository runs each operation against a freshly loaded collection and
// persists the full result. It holds no tasks between calls.
type Repository struct {
	store  Store
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger for operation diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns a repository over store.
func New(store Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends a new todo task and returns it.
func (r *Repository) Add(description string) (task.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return task.Task{}, err
	}

	t := task.New(task.NextID(tasks), description, r.now())
	tasks = append(tasks, t)
	if err := r.save(tasks); err != nil {
		return task.Task{}, err
	}
	r.logger.Debug("added task", "id", t.ID)
	return t, nil
}

// List returns the tasks matching filter, or all tasks when filter is nil.
func (r *Repository) List(filter *task.Status) ([]task.Task, error) {
	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	return task.Filter(tasks, filter), nil
}

// Update replaces the description of task id. A missing id is not an error;
// the collection is saved unchanged.
func (r *Repository) Update(id int, description string) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}

	tasks, found := task.SetDescription(tasks, id, description, r.now())
	if !found {
		r.logger.Debug("update: task not found", "id", id)
	}
	return r.save(tasks)
}

// Delete removes every task with id and saves the result.
func (r *Repository) Delete(id int) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}

	tasks, removed := task.Remove(tasks, id)
	if removed == 0 {
		r.logger.Debug("delete: task not found", "id", id)
	}
	return r.save(tasks)
}

// Mark sets the status of task id. Unrecognized statuses are stored as given.
func (r *Repository) Mark(id int, status task.Status) error {
	tasks, err := r.load()
	if err != nil {
		return err
	}

	if !status.Known() {
		r.logger.Debug("mark: unrecognized status", "id", id, "status", status)
	}
	tasks, found := task.SetStatus(tasks, id, status, r.now())
	if !found {
		r.logger.Debug("mark: task not found", "id", id)
	}
	return r.save(tasks)
}

func (r *Repository) load() ([]task.Task, error) {
	tasks, err := r.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

func (r *Repository) save(tasks []task.Task) error {
	if err := r.store.Save(tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
