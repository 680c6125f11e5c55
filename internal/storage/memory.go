package storage

import (
	"sync"

	"github.com/nibzard/taskboard/internal/task"
)

// Memory keeps the task list in process. Load and Save copy the slice.
type Memory struct {
	mu    sync.Mutex
	tasks []task.Task
	saves int
}

// NewMemory returns a backend preloaded with tasks.
func NewMemory(tasks ...task.Task) *Memory {
	m := &Memory{}
	if len(tasks) > 0 {
		m.tasks = append([]task.Task(nil), tasks...)
	}
	return m
}

// Load returns a copy of the stored tasks.
func (m *Memory) Load() ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks == nil {
		return nil, nil
	}
	return append([]task.Task(nil), m.tasks...), nil
}

// Save replaces the stored tasks.
func (m *Memory) Save(tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append([]task.Task{}, tasks...)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
