// Package task defines the task record and the input validation applied
// before any task reaches the store.
//
// A task file is an ordered JSON array of task records:
//
//	[
//	  {
//	    "id": "0b6c3f52-4a9e-4a55-9d59-5d0c1d1c2a10",
//	    "name": "Buy milk",
//	    "dueDate": "2024-05-02T09:00:00Z",
//	    "completed": false
//	  }
//	]
//
// # Due dates
//
// Due dates are absolute instants. User input arrives as a calendar date
// (YYYY-MM-DD) and a wall-clock time (HH:MM) interpreted in a given
// location; see ParseDue and ParseDueString. Stored values are normalized
// to UTC.
//
// # Validation
//
// Names must be non-empty after trimming whitespace. Both date and time
// parts of a due date are required. Failures are reported as
// *ValidationError values that match ErrInvalid via errors.Is.
package task
