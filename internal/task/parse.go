package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the accepted calendar date input.
	DateLayout = "2006-01-02"
	// ClockLayout is the accepted wall-clock time input.
	ClockLayout = "15:04"
)

// dueLayouts are tried in order by ParseDueString after RFC 3339.
var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDue combines a date (YYYY-MM-DD) and a time (HH:MM) in loc.
// Both parts are required. A nil loc means time.Local.
func ParseDue(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, &ValidationError{Field: "date", Err: errors.New("missing date")}
	}
	if clock == "" {
		return time.Time{}, &ValidationError{Field: "time", Err: errors.New("missing time")}
	}

	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Err: fmt.Errorf("expected YYYY-MM-DD, got %q", date)}
	}
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "time", Err: fmt.Errorf("expected HH:MM, got %q", clock)}
	}

	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// ParseDueString parses a single due date value. It accepts RFC 3339 and
// "YYYY-MM-DD HH:MM" (a T separator and seconds are also accepted). Values
// without an offset are interpreted in loc.
func ParseDueString(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "due", Err: errors.New("missing due date")}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if _, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return time.Time{}, &ValidationError{Field: "time", Err: errors.New("missing time")}
	}
	return time.Time{}, &ValidationError{Field: "due", Err: fmt.Errorf("expected YYYY-MM-DD HH:MM, got %q", s)}
}

// SplitDue formats due in loc as the date and time strings ParseDue accepts.
func SplitDue(due time.Time, loc *time.Location) (date, clock string) {
	if loc == nil {
		loc = time.Local
	}
	local := due.In(loc)
	return local.Format(DateLayout), local.Format(ClockLayout)
}
