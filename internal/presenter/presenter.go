// Package presenter turns a task list into the three board buckets and a
// completion percentage. It is a pure function of the list and the clock.
package presenter

import (
	"math"
	"sort"
	"time"

	"github.com/nibzard/taskboard/internal/task"
)

// DefaultLayout is the human-readable due date format.
const DefaultLayout = "Jan 2, 2006 3:04 PM"

// Bucket titles and empty-state messages.
const (
	TodayTitle     = "Today & Overdue"
	UpcomingTitle  = "Upcoming"
	CompletedTitle = "Completed"

	TodayEmpty     = "No tasks for today. Enjoy your day!"
	UpcomingEmpty  = "No upcoming tasks."
	CompletedEmpty = "No completed tasks yet."
)

// Entry is a task placed in a bucket.
type Entry struct {
	Task task.Task
	// Overdue is set for incomplete tasks due before the start of today.
	Overdue bool
	// PastDue is set for incomplete tasks whose due instant has passed.
	PastDue bool
}

// Bucket is one section of the board, sorted by due date.
type Bucket struct {
	Title   string
	Empty   string
	Entries []Entry
}

// Len returns the number of entries.
func (b Bucket) Len() int {
	return len(b.Entries)
}

// Progress summarizes completion across all tasks.
type Progress struct {
	Percent   int
	Completed int
	Total     int
}

// Board is the categorized view of a task list.
type Board struct {
	Today     Bucket
	Upcoming  Bucket
	Completed Bucket
	Progress  Progress
}

// Buckets returns the buckets in display order.
func (b Board) Buckets() []Bucket {
	return []Bucket{b.Today, b.Upcoming, b.Completed}
}

// Entries returns every entry in display order: today, upcoming, completed.
func (b Board) Entries() []Entry {
	entries := make([]Entry, 0, b.Today.Len()+b.Upcoming.Len()+b.Completed.Len())
	entries = append(entries, b.Today.Entries...)
	entries = append(entries, b.Upcoming.Entries...)
	entries = append(entries, b.Completed.Entries...)
	return entries
}

// DayBounds returns the start of now's calendar day in now's location and
// the instant 24 hours later.
func DayBounds(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

// Categorize partitions tasks into the board buckets. The input is not
// modified.
func Categorize(tasks []task.Task, now time.Time) Board {
	board := Board{
		Today:     Bucket{Title: TodayTitle, Empty: TodayEmpty},
		Upcoming:  Bucket{Title: UpcomingTitle, Empty: UpcomingEmpty},
		Completed: Bucket{Title: CompletedTitle, Empty: CompletedEmpty},
	}

	sorted := make([]task.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	todayStart, todayEnd := DayBounds(now)

	for _, t := range sorted {
		if t.Completed {
			board.Completed.Entries = append(board.Completed.Entries, Entry{Task: t})
			continue
		}
		entry := Entry{
			Task:    t,
			Overdue: t.DueDate.Before(todayStart),
			PastDue: now.After(t.DueDate),
		}
		if t.DueDate.Before(todayEnd) {
			board.Today.Entries = append(board.Today.Entries, entry)
		} else {
			board.Upcoming.Entries = append(board.Upcoming.Entries, entry)
		}
	}

	board.Progress = ComputeProgress(tasks)
	return board
}

// ComputeProgress returns the rounded completion percentage.
func ComputeProgress(tasks []task.Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}

// FormatDue renders t in loc using layout. Empty layout means
// DefaultLayout and nil loc means time.Local.
func FormatDue(t time.Time, layout string, loc *time.Location) string {
	if layout == "" {
		layout = DefaultLayout
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}
