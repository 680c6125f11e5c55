package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/taskboard/internal/presenter"
	"github.com/nibzard/taskboard/internal/task"
)

func TestRenderBoard(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{ID: "11111111-aaaa", Name: "Pay rent", DueDate: now.AddDate(0, 0, -2)},
		{ID: "22222222-bbbb", Name: "Lunch", DueDate: now.Add(-time.Hour)},
		{ID: "33333333-cccc", Name: "Dentist", DueDate: now.AddDate(0, 0, 3)},
		{ID: "44444444-dddd", Name: "Taxes", DueDate: now.AddDate(0, 0, -10), Completed: true},
	}
	board := presenter.Categorize(tasks, now)

	var buf bytes.Buffer
	err := RenderBoard(&buf, board, RenderOptions{Layout: "2006-01-02 15:04", Location: time.UTC})
	if err != nil {
		t.Fatalf("RenderBoard: %v", err)
	}
	out := buf.String()

	wants := []string{
		"Today & Overdue (2)",
		"11111111  [ ] Pay rent  2024-04-29 12:00  (overdue)",
		"22222222  [ ] Lunch  2024-05-01 11:00  (past due)",
		"Upcoming (1)",
		"33333333  [ ] Dentist  2024-05-04 12:00",
		"Completed (1)",
		"44444444  [x] Taxes  2024-04-21 12:00",
		"Progress: 25% (1/4)",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Pay rent") > strings.Index(out, "Lunch") {
		t.Error("today entries should be sorted by due date")
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBoard(&buf, presenter.Categorize(nil, time.Now()), RenderOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{presenter.TodayEmpty, presenter.UpcomingEmpty, presenter.CompletedEmpty, "Progress: 0% (0/0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayIDs(t *testing.T) {
	entries := []presenter.Entry{
		{Task: task.Task{ID: "abcdef0123-1"}},
		{Task: task.Task{ID: "abcdef0199-2"}},
		{Task: task.Task{ID: "task-1"}},
		{Task: task.Task{ID: "zzzzzzzzzzzz"}},
	}
	ids := displayIDs(entries, false)

	tests := map[string]string{
		"abcdef0123-1": "abcdef012",
		"abcdef0199-2": "abcdef019",
		"task-1":       "task-1",
		"zzzzzzzzzzzz": "zzzzzzzz",
	}
	for id, want := range tests {
		if ids[id] != want {
			t.Errorf("displayIDs[%q] = %q, want %q", id, ids[id], want)
		}
	}

	full := displayIDs(entries, true)
	if full["zzzzzzzzzzzz"] != "zzzzzzzzzzzz" {
		t.Errorf("full ids: %v", full)
	}
}

func TestProgressBar(t *testing.T) {
	s := newStyles(false)
	tests := []struct {
		percent int
		want    string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{100, "██████████"},
		{140, "██████████"},
	}
	for _, tt := range tests {
		if got := progressBar(s, tt.percent, 10); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
