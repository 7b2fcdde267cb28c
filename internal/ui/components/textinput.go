package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/greekquiz/internal/ui/theme"
)

// maxAnswerLen bounds a single answer field.
const maxAnswerLen = 64

// TextInput wraps bubbles/textinput with a field label and a graded mark.
type TextInput struct {
	Model     textinput.Model
	Label     string
	submitted bool
	valid     bool
}

// NewTextInput creates a blurred, labelled answer field.
func NewTextInput(label string) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = label
	ti.CharLimit = maxAnswerLen

	return TextInput{Model: ti, Label: label}
}

// Focus gives the field keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the field has keyboard focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the field and, once graded, a check or cross.
func (t TextInput) View() string {
	label := theme.Hint.Render(t.Label + ">")
	if t.Model.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(t.Label + ">")
	}
	view := label + " " + t.Model.View()
	if t.submitted {
		view = theme.Hint.Render(t.Label+":") + " " + theme.Body.Render(t.Model.Value())
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Clear empties the field.
func (t *TextInput) Clear() {
	t.Model.Reset()
}

// Submit marks the input as submitted with a grading result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
	t.Model.Blur()
}
