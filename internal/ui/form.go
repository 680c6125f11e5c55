package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldDate
	fieldTime
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Date", "Time"}

// taskForm is the add/edit form: name, date (YYYY-MM-DD) and time (HH:MM).
type taskForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	// editID is empty when adding.
	editID string
}

func newTaskForm() taskForm {
	var f taskForm
	placeholders := [fieldCount]string{"Task name", "YYYY-MM-DD", "HH:MM"}
	limits := [fieldCount]int{256, 10, 5}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		f.inputs[i] = ti
	}
	return f
}

// open fills the form and focuses the name field.
func (f *taskForm) open(editID, name, date, clock string) tea.Cmd {
	f.editID = editID
	f.inputs[fieldName].SetValue(name)
	f.inputs[fieldDate].SetValue(date)
	f.inputs[fieldTime].SetValue(clock)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	return f.setFocus(fieldName)
}

func (f *taskForm) close() {
	for i := range f.inputs {
		f.inputs[i].Blur()
		f.inputs[i].Reset()
	}
	f.editID = ""
	f.focus = fieldName
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j != f.focus {
			f.inputs[j].Blur()
		}
	}
	return f.inputs[f.focus].Focus()
}

// move shifts focus by delta, wrapping around.
func (f *taskForm) move(delta int) tea.Cmd {
	return f.setFocus(f.focus + delta)
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *taskForm) setWidth(w int) {
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f taskForm) values() (name, date, clock string) {
	return f.inputs[fieldName].Value(), f.inputs[fieldDate].Value(), f.inputs[fieldTime].Value()
}

func (f taskForm) editing() bool {
	return f.editID != ""
}

func (f taskForm) view() string {
	var b strings.Builder
	if f.editing() {
		b.WriteString("Edit task\n\n")
	} else {
		b.WriteString("New task\n\n")
	}
	for i, input := range f.inputs {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		b.WriteString(marker + fieldLabels[i] + ": " + input.View() + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
