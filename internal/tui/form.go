package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vocabtracker/backend/internal/models"
)

// Form field indexes
const (
	fieldWord = iota
	fieldMeaning
	fieldExample
	fieldStatus
	fieldCount
)

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Form edits a single vocabulary entry. In edit mode the fields are
// prefilled from the existing entry; status toggles with space on its row.
type Form struct {
	inputs     []textinput.Model
	focus      int
	status     models.Status
	editing    *models.Vocabulary
	submitting bool
	errors     map[string]string
}

// NewForm creates a form, prefilled from "editing" when it is not nil
func NewForm(editing *models.Vocabulary) Form {
	word := textinput.New()
	word.Placeholder = "Word"
	word.Focus()

	meaning := textinput.New()
	meaning.Placeholder = "Meaning"

	example := textinput.New()
	example.Placeholder = "Example (optional)"

	f := Form{
		inputs:  []textinput.Model{word, meaning, example},
		status:  models.StatusReviewNeeded,
		editing: editing,
		errors:  map[string]string{},
	}

	if editing != nil {
		f.inputs[fieldWord].SetValue(editing.Word)
		f.inputs[fieldMeaning].SetValue(editing.Meaning)
		f.inputs[fieldExample].SetValue(editing.Example)
		f.status = editing.Status
	}
	return f
}

// Editing returns the entry being edited, or nil in create mode
func (f Form) Editing() *models.Vocabulary {
	return f.editing
}

// Word returns the trimmed word field
func (f Form) Word() string {
	return strings.TrimSpace(f.inputs[fieldWord].Value())
}

// Meaning returns the trimmed meaning field
func (f Form) Meaning() string {
	return strings.TrimSpace(f.inputs[fieldMeaning].Value())
}

// Example returns the trimmed example field
func (f Form) Example() string {
	return strings.TrimSpace(f.inputs[fieldExample].Value())
}

// Status returns the selected status
func (f Form) Status() models.Status {
	return f.status
}

// Submitting reports whether a save is in flight
func (f Form) Submitting() bool {
	return f.submitting
}

// Validate checks the required fields after trimming whitespace and
// records per-field messages. It returns true when the form can be saved.
func (f *Form) Validate() bool {
	f.errors = map[string]string{}
	if f.Word() == "" {
		f.errors["word"] = "Word is required"
	}
	if f.Meaning() == "" {
		f.errors["meaning"] = "Meaning is required"
	}
	return len(f.errors) == 0
}

// Errors returns the current per-field validation messages
func (f Form) Errors() map[string]string {
	return f.errors
}

// SetSubmitting marks the save in flight. It is always cleared when the
// save settles, success or failure, so the form can never get stuck.
func (f *Form) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

// NextField moves focus to the next row, wrapping past the status row
func (f *Form) NextField() {
	f.focus = (f.focus + 1) % fieldCount
	f.syncFocus()
}

// PrevField moves focus to the previous row
func (f *Form) PrevField() {
	f.focus = (f.focus + fieldCount - 1) % fieldCount
	f.syncFocus()
}

func (f *Form) syncFocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// OnStatusRow reports whether focus is on the status toggle row
func (f Form) OnStatusRow() bool {
	return f.focus == fieldStatus
}

// ToggleStatus flips the status selection
func (f *Form) ToggleStatus() {
	f.status = f.status.Toggled()
}

// Update forwards a message to the focused text input
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// View renders the form
func (f Form) View() string {
	var s strings.Builder

	title := "New Entry"
	if f.editing != nil {
		title = "Edit Entry"
	}
	s.WriteString(formTitleStyle.Render(title))
	s.WriteString("\n\n")

	labels := []string{"Word", "Meaning", "Example"}
	errKeys := []string{"word", "meaning", ""}
	for i, input := range f.inputs {
		s.WriteString(labels[i] + ": " + input.View())
		if errKeys[i] != "" {
			if msg, ok := f.errors[errKeys[i]]; ok {
				s.WriteString("  " + fieldErrorStyle.Render(msg))
			}
		}
		s.WriteString("\n")
	}

	statusRow := "Status: " + string(f.status)
	if f.OnStatusRow() {
		statusRow = "> " + statusRow + "  (space to toggle)"
	} else {
		statusRow = "  " + statusRow
	}
	s.WriteString(statusRow)
	s.WriteString("\n\n")

	submit := "Press Enter to save"
	if f.submitting {
		submit = "Saving..."
	}
	s.WriteString(submit)
	s.WriteString("\n")
	s.WriteString(formHintStyle.Render("Tab/Shift+Tab to move, Esc to cancel"))

	return s.String()
}
