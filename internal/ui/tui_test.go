package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskboard/internal/logging"
	"github.com/nibzard/taskboard/internal/storage"
	"github.com/nibzard/taskboard/internal/store"
	"github.com/nibzard/taskboard/internal/task"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newTestModel(t *testing.T, confirm bool, tasks ...task.Task) (*tuiModel, *store.Store) {
	t.Helper()
	st, err := store.New(storage.NewMemory(tasks...), store.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	m := newTUIModel(st, Options{
		Location:      time.UTC,
		ConfirmDelete: confirm,
		Now:           func() time.Time { return testNow },
	})
	m.Init()
	return m, st
}

func send(m *tuiModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *tuiModel, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

func TestAddTaskThroughForm(t *testing.T) {
	m, st := newTestModel(t, true)

	send(m, runes("a"))
	if m.mode != modeForm {
		t.Fatalf("expected form mode, got %v", m.mode)
	}
	if _, date, _ := m.form.values(); date != "2024-05-01" {
		t.Errorf("date should default to today, got %q", date)
	}

	typeText(m, "Buy milk")
	send(m, keyType(tea.KeyTab))
	for i := 0; i < 10; i++ {
		send(m, keyType(tea.KeyBackspace))
	}
	typeText(m, "2024-05-02")
	send(m, keyType(tea.KeyTab))
	typeText(m, "09:00")
	send(m, keyType(tea.KeyEnter))

	if m.mode != modeList {
		t.Fatalf("form should close after submit, status %q", m.status)
	}
	tasks := st.List()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	want := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	if tasks[0].Name != "Buy milk" || !tasks[0].DueDate.Equal(want) {
		t.Errorf("unexpected task: %+v", tasks[0])
	}
	if m.board.Upcoming.Len() != 1 {
		t.Errorf("task should be upcoming, board %+v", m.board)
	}
	if !strings.Contains(m.status, "Added") {
		t.Errorf("status = %q", m.status)
	}
}

func TestFormValidationKeepsFormOpen(t *testing.T) {
	m, st := newTestModel(t, true)

	send(m, runes("a"), keyType(tea.KeyEnter))
	if m.mode != modeForm {
		t.Fatal("form should stay open on invalid input")
	}
	if !m.statusErr || !strings.Contains(m.status, "time") {
		t.Errorf("expected time validation error, got %q", m.status)
	}

	send(m, keyType(tea.KeyShiftTab))
	if m.form.focus != fieldTime {
		t.Fatalf("shift+tab from name should wrap to time, got %d", m.form.focus)
	}
	typeText(m, "10:30")
	send(m, keyType(tea.KeyEnter))
	if m.mode != modeForm || !strings.Contains(m.status, "name") {
		t.Errorf("expected name error with form open, got mode %v status %q", m.mode, m.status)
	}
	if st.Len() != 0 {
		t.Error("invalid input must not create tasks")
	}

	send(m, keyType(tea.KeyEsc))
	if m.mode != modeList || m.status != "Cancelled" {
		t.Errorf("esc should cancel, mode %v status %q", m.mode, m.status)
	}
}

func TestEditTask(t *testing.T) {
	due := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	m, st := newTestModel(t, true, task.Task{ID: "task-1", Name: "Call", DueDate: due})

	send(m, runes("e"))
	if !m.form.editing() {
		t.Fatal("expected edit form")
	}
	name, date, clock := m.form.values()
	if name != "Call" || date != "2024-05-01" || clock != "18:00" {
		t.Fatalf("form not prefilled: %q %q %q", name, date, clock)
	}

	typeText(m, " mom")
	send(m, keyType(tea.KeyEnter))

	got, err := st.Get("task-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Call mom" || !got.DueDate.Equal(due) {
		t.Errorf("edit not applied: %+v", got)
	}
}

func TestToggleAndNavigate(t *testing.T) {
	m, st := newTestModel(t, true,
		task.Task{ID: "b", Name: "Later", DueDate: testNow.Add(72 * time.Hour)},
		task.Task{ID: "a", Name: "Soon", DueDate: testNow.Add(time.Hour)},
	)

	if e, _ := m.selected(); e.Task.ID != "a" {
		t.Fatalf("cursor should start on the today task, got %q", e.Task.ID)
	}
	send(m, runes("j"))
	if e, _ := m.selected(); e.Task.ID != "b" {
		t.Fatalf("j should move to upcoming task, got %q", e.Task.ID)
	}
	send(m, runes("j"))
	if m.cursor != 1 {
		t.Errorf("cursor should clamp at the end, got %d", m.cursor)
	}

	send(m, keyType(tea.KeySpace))
	got, _ := st.Get("b")
	if !got.Completed {
		t.Fatal("space should toggle the selected task")
	}
	if e, _ := m.selected(); e.Task.ID != "b" {
		t.Errorf("selection should follow the toggled task, got %q", e.Task.ID)
	}
	if m.board.Progress.Percent != 50 {
		t.Errorf("Percent = %d, want 50", m.board.Progress.Percent)
	}

	send(m, runes("x"))
	got, _ = st.Get("b")
	if got.Completed {
		t.Error("x should toggle back")
	}

	send(m, runes("k"))
	if e, _ := m.selected(); e.Task.ID != "a" {
		t.Errorf("k should move up, got %q", e.Task.ID)
	}
}

func TestDeleteWithConfirm(t *testing.T) {
	m, st := newTestModel(t, true, task.Task{ID: "a", Name: "Soon", DueDate: testNow})

	send(m, runes("d"))
	if m.mode != modeConfirm {
		t.Fatal("expected confirm prompt")
	}
	if !strings.Contains(m.View(), "Are you sure you want to delete this task?") {
		t.Error("confirm prompt not rendered")
	}
	send(m, runes("n"))
	if st.Len() != 1 || m.mode != modeList {
		t.Fatal("n should cancel the delete")
	}

	send(m, runes("d"), runes("y"))
	if st.Len() != 0 {
		t.Error("y should delete the task")
	}
	if !strings.Contains(m.View(), "No tasks for today. Enjoy your day!") {
		t.Error("empty today message missing")
	}
}

func TestDeleteWithoutConfirm(t *testing.T) {
	m, st := newTestModel(t, false, task.Task{ID: "a", Name: "Soon", DueDate: testNow})

	send(m, runes("d"))
	if st.Len() != 0 || m.mode != modeList {
		t.Error("delete should be immediate without confirmation")
	}
	send(m, runes("d"))
	if m.status != "Nothing to delete" {
		t.Errorf("status = %q", m.status)
	}
}

func TestTickRecategorizes(t *testing.T) {
	due := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	m, _ := newTestModel(t, true, task.Task{ID: "a", Name: "Tonight", DueDate: due})
	if m.board.Today.Len() != 1 || m.board.Today.Entries[0].Overdue {
		t.Fatal("task should be in today, not overdue")
	}

	m.opts.Now = func() time.Time { return testNow.Add(24 * time.Hour) }
	_, cmd := m.Update(tickMsg(testNow))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !m.board.Today.Entries[0].Overdue {
		t.Error("after rollover the task should be overdue")
	}
	if !strings.Contains(m.View(), "(overdue)") {
		t.Error("overdue marker not rendered")
	}
}

type failingSaves struct{ storage.Memory }

func (f *failingSaves) Save([]task.Task) error { return errors.New("disk full") }

func TestPersistWarningShown(t *testing.T) {
	st, err := store.New(&failingSaves{}, store.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatal(err)
	}
	m := newTUIModel(st, Options{Location: time.UTC, Now: func() time.Time { return testNow }})
	m.Init()

	send(m, runes("a"))
	typeText(m, "Draft")
	send(m, keyType(tea.KeyTab), keyType(tea.KeyTab))
	typeText(m, "13:00")
	send(m, keyType(tea.KeyEnter))

	if m.mode != modeList {
		t.Fatalf("form should close on persist warning, status %q", m.status)
	}
	if !strings.Contains(m.status, "not saved") || !m.statusErr {
		t.Errorf("status = %q", m.status)
	}
	if m.board.Today.Len() != 1 {
		t.Error("task should stay in memory")
	}
}

func TestHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, true)

	send(m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help not shown")
	}
	send(m, runes("?"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help should toggle off")
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	send(m, runes("a"), runes("q"))
	if name, _, _ := m.form.values(); m.mode != modeForm || name != "q" {
		t.Errorf("q in the form should type, got mode %v name %q", m.mode, name)
	}
	_, cmd = m.Update(keyType(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should quit from the form")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		cursor, n, want int
	}{
		{0, 0, 0},
		{-1, 3, 0},
		{5, 3, 2},
		{1, 3, 1},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cursor, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cursor, tt.n, got, tt.want)
		}
	}
}
