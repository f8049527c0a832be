package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput is a multi-line free-text answer box for coding and scenario
// questions.
type AnswerInput struct {
	Model textarea.Model
}

// NewAnswerInput creates a focused input holding value.
func NewAnswerInput(placeholder, value string, width, height int) AnswerInput {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.SetValue(value)
	ta.Focus()
	return AnswerInput{Model: ta}
}

// Focus returns the cursor blink command.
func (a AnswerInput) Focus() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards msg to the text area. changed reports whether the value
// changed.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd, bool) {
	before := a.Model.Value()
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd, a.Model.Value() != before
}

// View renders the input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the current text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}
