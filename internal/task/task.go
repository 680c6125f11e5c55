package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid matches every ValidationError.
var ErrInvalid = errors.New("invalid task")

// Task is a single entry in the task list.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DueDate   time.Time `json:"dueDate"`
	Completed bool      `json:"completed"`
}

// Equal compares the persisted fields of two tasks. Due dates are compared
// as instants, so location differences do not matter.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.Name == other.Name &&
		t.DueDate.Equal(other.DueDate) &&
		t.Completed == other.Completed
}

// ValidationError describes a rejected field.
type ValidationError struct {
	Field string // name, date, time or due
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalid) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// ValidateName trims name and rejects it when empty.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &ValidationError{Field: "name", Err: errors.New("must not be empty")}
	}
	return trimmed, nil
}

// ValidateDue rejects the zero time.
func ValidateDue(due time.Time) error {
	if due.IsZero() {
		return &ValidationError{Field: "due", Err: errors.New("missing due date")}
	}
	return nil
}
