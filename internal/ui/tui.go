// Package ui renders the task board as text and runs the interactive
// terminal UI.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskboard/internal/presenter"
	"github.com/nibzard/taskboard/internal/store"
	"github.com/nibzard/taskboard/internal/task"
)

// DefaultTickInterval is how often the board is re-categorized so day
// rollover shows up without input.
const DefaultTickInterval = time.Minute

// TaskStore is the subset of the store the TUI drives.
type TaskStore interface {
	List() []task.Task
	Get(id string) (task.Task, error)
	Add(name string, due time.Time) (task.Task, error)
	Edit(id, name string, due time.Time) error
	ToggleComplete(id string) error
	Delete(id string) error
}

// Options configures the TUI.
type Options struct {
	Layout        string
	Location      *time.Location
	ConfirmDelete bool
	// Now overrides the clock.
	Now          func() time.Time
	TickInterval time.Duration
	Color        bool
}

// RunTUI starts the interactive board on the terminal.
func RunTUI(ctx context.Context, st TaskStore, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	opts.Color = true
	model := newTUIModel(st, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

type tuiModel struct {
	store  TaskStore
	opts   Options
	styles styles

	board   presenter.Board
	entries []presenter.Entry
	ids     map[string]string
	cursor  int

	mode      mode
	form      taskForm
	pendingID string

	status    string
	statusErr bool
	showHelp  bool
}

type tickMsg time.Time

func newTUIModel(st TaskStore, opts Options) *tuiModel {
	if opts.Layout == "" {
		opts.Layout = presenter.DefaultLayout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	return &tuiModel{
		store:  st,
		opts:   opts,
		styles: newStyles(opts.Color),
		form:   newTaskForm(),
		status: "Press a to add, space to toggle, d to delete, ? for help.",
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.opts.TickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m, m.updateForm(msg)
		case modeConfirm:
			return m, m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	case tea.WindowSizeMsg:
		if w := msg.Width - 12; w > 10 {
			m.form.setWidth(w)
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.opts.TickInterval)
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(m.entries))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(m.entries))
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = clampCursor(len(m.entries)-1, len(m.entries))
	case "r", "f5":
		m.refresh()
		m.setStatus("Refreshed")
	case "?", "h":
		m.showHelp = !m.showHelp
	case "a":
		date := m.opts.Now().In(m.opts.Location).Format(task.DateLayout)
		m.mode = modeForm
		return m, m.form.open("", "", date, "")
	case "e", "enter":
		entry, ok := m.selected()
		if !ok {
			m.setStatus("Nothing to edit")
			return m, nil
		}
		date, clock := task.SplitDue(entry.Task.DueDate, m.opts.Location)
		m.mode = modeForm
		return m, m.form.open(entry.Task.ID, entry.Task.Name, date, clock)
	case " ", "x":
		entry, ok := m.selected()
		if !ok {
			m.setStatus("Nothing to toggle")
			return m, nil
		}
		err := m.store.ToggleComplete(entry.Task.ID)
		verb := "Completed"
		if entry.Task.Completed {
			verb = "Reopened"
		}
		m.report(fmt.Sprintf("%s %q", verb, entry.Task.Name), err)
		m.refreshSelecting(entry.Task.ID)
	case "d", "delete":
		entry, ok := m.selected()
		if !ok {
			m.setStatus("Nothing to delete")
			return m, nil
		}
		if m.opts.ConfirmDelete {
			m.pendingID = entry.Task.ID
			m.mode = modeConfirm
			return m, nil
		}
		m.deleteTask(entry.Task)
	}
	return m, nil
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form.close()
		m.mode = modeList
		m.setStatus("Cancelled")
		return nil
	case "tab", "down":
		return m.form.move(1)
	case "shift+tab", "up":
		return m.form.move(-1)
	case "enter":
		return m.submitForm()
	}
	return m.form.update(msg)
}

// submitForm adds or edits a task. Invalid input keeps the form open.
func (m *tuiModel) submitForm() tea.Cmd {
	name, date, clock := m.form.values()
	due, err := task.ParseDue(date, clock, m.opts.Location)
	if err != nil {
		m.setError(err)
		return nil
	}

	var id, verb string
	if m.form.editing() {
		id, verb = m.form.editID, "Updated"
		err = m.store.Edit(id, name, due)
	} else {
		var created task.Task
		created, err = m.store.Add(name, due)
		id, verb = created.ID, "Added"
	}
	if err != nil && !store.IsWarning(err) {
		m.setError(err)
		if errors.Is(err, store.ErrNotFound) {
			m.form.close()
			m.mode = modeList
			m.refresh()
		}
		return nil
	}

	m.form.close()
	m.mode = modeList
	m.report(fmt.Sprintf("%s %q", verb, strings.TrimSpace(name)), err)
	m.refreshSelecting(id)
	return nil
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		t, err := m.store.Get(m.pendingID)
		m.pendingID = ""
		m.mode = modeList
		if err != nil {
			m.setStatus("Nothing to delete")
			m.refresh()
			return nil
		}
		m.deleteTask(t)
	case "n", "N", "esc", "q":
		m.pendingID = ""
		m.mode = modeList
		m.setStatus("Delete cancelled")
	}
	return nil
}

func (m *tuiModel) deleteTask(t task.Task) {
	err := m.store.Delete(t.ID)
	m.report(fmt.Sprintf("Deleted %q", t.Name), err)
	m.refresh()
}

func (m *tuiModel) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.title.Render("taskboard") + "\n")
	p := m.board.Progress
	b.WriteString(fmt.Sprintf("%s %d%% (%d/%d)\n\n", progressBar(s, p.Percent, 24), p.Percent, p.Completed, p.Total))

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, s, m.opts.TickInterval)
		return b.String()
	}

	m.writeBoard(&b)

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view())
	case modeConfirm:
		name := m.pendingID
		if t, err := m.store.Get(m.pendingID); err == nil {
			name = t.Name
		}
		b.WriteString(fmt.Sprintf("Are you sure you want to delete this task? %q (y/n)\n\n", name))
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(s.errStatus.Render(m.status))
		} else {
			b.WriteString(s.status.Render(m.status))
		}
		b.WriteString("\n")
	}
	writeFooter(&b, s, m.opts.TickInterval)
	return b.String()
}

func (m *tuiModel) writeBoard(b *strings.Builder) {
	s := m.styles
	ropts := RenderOptions{Layout: m.opts.Layout, Location: m.opts.Location}
	index := 0
	for _, bucket := range m.board.Buckets() {
		b.WriteString(s.heading.Render(fmt.Sprintf("%s (%d)", bucket.Title, bucket.Len())) + "\n")
		if bucket.Len() == 0 {
			b.WriteString("  " + s.empty.Render(bucket.Empty) + "\n\n")
			continue
		}
		for _, entry := range bucket.Entries {
			row := formatEntry(s, entry, m.ids[entry.Task.ID], ropts)
			if index == m.cursor && m.mode == modeList {
				b.WriteString(s.selected.Render("> ") + row + "\n")
			} else {
				b.WriteString("  " + row + "\n")
			}
			index++
		}
		b.WriteString("\n")
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-categorizes the store contents, keeping the selected task.
func (m *tuiModel) refresh() {
	var keep string
	if entry, ok := m.selected(); ok {
		keep = entry.Task.ID
	}
	m.refreshSelecting(keep)
}

func (m *tuiModel) refreshSelecting(id string) {
	m.board = presenter.Categorize(m.store.List(), m.opts.Now())
	m.entries = m.board.Entries()
	m.ids = displayIDs(m.entries, false)
	if id != "" {
		for i, e := range m.entries {
			if e.Task.ID == id {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.entries))
}

func (m *tuiModel) selected() (presenter.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return presenter.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *tuiModel) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *tuiModel) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusErr = true
}

// report sets the status for a completed mutation. Persist failures keep
// the change and show a warning.
func (m *tuiModel) report(msg string, err error) {
	switch {
	case err == nil:
		m.setStatus(msg)
	case store.IsWarning(err):
		m.status = msg + " (not saved: " + err.Error() + ")"
		m.statusErr = true
	default:
		m.setError(err)
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  j, down      Move down\n")
	b.WriteString("  k, up        Move up\n")
	b.WriteString("  a            Add task\n")
	b.WriteString("  e, enter     Edit task\n")
	b.WriteString("  space, x     Toggle completed\n")
	b.WriteString("  d            Delete task\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  ?, h         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
	b.WriteString("In the form: tab/shift+tab move, enter saves, esc cancels.\n\n")
}

func writeFooter(b *strings.Builder, s styles, interval time.Duration) {
	b.WriteString(s.help.Render(fmt.Sprintf("? help | q quit | refreshing every %s", interval)) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
