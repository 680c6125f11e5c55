// Package store owns the canonical task list and persists it on every
// mutation.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/taskboard/internal/task"
)

var (
	// ErrNotFound is returned when an id does not match any task.
	ErrNotFound = errors.New("task not found")
	// ErrPersist wraps backend write failures. The in-memory change has
	// already been applied when it is returned.
	ErrPersist = errors.New("persist tasks")
)

// MinPrefixLen is the shortest id prefix Resolve will match.
const MinPrefixLen = 6

// Backend loads and saves the whole task list.
type Backend interface {
	// Load returns the stored tasks. A nil slice means no tasks.
	Load() ([]task.Task, error)
	// Save replaces the stored tasks.
	Save(tasks []task.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation traces and warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDFunc overrides id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Store holds the task list in insertion order.
type Store struct {
	backend Backend
	logger  *log.Logger
	newID   func() string

	mu    sync.Mutex
	tasks []task.Task
}

// New loads the current list from backend.
func New(backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("store backend is nil")
	}
	s := &Store{
		backend: backend,
		logger:  log.Default(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = make([]task.Task, 0, len(tasks))
	repaired := false
	for _, t := range tasks {
		if t.Name = strings.TrimSpace(t.Name); t.Name == "" {
			s.logger.Warn("Dropping task with empty name", "id", t.ID)
			repaired = true
			continue
		}
		if t.ID == "" || s.index(t.ID) >= 0 {
			old := t.ID
			t.ID = s.uniqueID()
			s.logger.Warn("Reassigned duplicate task id", "old", old, "id", t.ID, "name", t.Name)
			repaired = true
		}
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("Loaded tasks", "count", len(s.tasks))

	// Save repairs so reassigned ids are stable across runs.
	if repaired {
		if err := s.save(); err != nil {
			s.logger.Warn("Repaired task list kept in memory only", "err", err)
		}
	}
	return s, nil
}

// Add creates an incomplete task and appends it to the list.
func (s *Store) Add(name string, due time.Time) (task.Task, error) {
	name, err := task.ValidateName(name)
	if err != nil {
		return task.Task{}, err
	}
	if err := task.ValidateDue(due); err != nil {
		return task.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := task.Task{
		ID:      s.uniqueID(),
		Name:    name,
		DueDate: due.UTC(),
	}
	s.tasks = append(s.tasks, t)
	s.logger.Debug("Added task", "id", t.ID, "name", t.Name, "due", t.DueDate)

	return t, s.save()
}

// Edit replaces the name and due date of an existing task. The completed
// flag is kept.
func (s *Store) Edit(id, name string, due time.Time) error {
	name, err := task.ValidateName(name)
	if err != nil {
		return err
	}
	if err := task.ValidateDue(due); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Name = name
	s.tasks[i].DueDate = due.UTC()
	s.logger.Debug("Edited task", "id", id, "name", name, "due", s.tasks[i].DueDate)

	return s.save()
}

// ToggleComplete flips the completed flag of a task.
func (s *Store) ToggleComplete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debug("Toggled task", "id", id, "completed", s.tasks[i].Completed)

	return s.save()
}

// Delete removes a task. Deleting an unknown id does nothing.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		s.logger.Debug("Delete of unknown task ignored", "id", id)
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.logger.Debug("Deleted task", "id", id)

	return s.save()
}

// Get returns a task by exact id.
func (s *Store) Get(id string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.tasks[i], nil
}

// List returns a copy of the tasks in insertion order.
func (s *Store) List() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]task.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Resolve maps an exact id or a unique id prefix (at least MinPrefixLen
// characters) to the full id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(ref); i >= 0 {
		return s.tasks[i].ID, nil
	}

	if len(ref) >= MinPrefixLen {
		var matches []string
		for _, t := range s.tasks {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t.ID)
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return "", fmt.Errorf("ambiguous task id prefix %s (matches %d tasks)", ref, len(matches))
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}

// save writes the full list. Callers hold s.mu.
func (s *Store) save() error {
	snapshot := make([]task.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	if err := s.backend.Save(snapshot); err != nil {
		s.logger.Warn("Tasks not saved, keeping in-memory state", "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// IsWarning reports whether err leaves the in-memory state valid.
func IsWarning(err error) bool {
	return errors.Is(err, ErrPersist)
}
