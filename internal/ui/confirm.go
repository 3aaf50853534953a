package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	tty "github.com/mattn/go-tty"
)

var ErrCancelled = errors.New("cancelled")

type confirmModel struct {
	textInput textinput.Model
	prompt    string
	err       error
	done      bool
	result    bool
}

// newConfirmModel creates a focused y/N prompt.
func newConfirmModel(prompt string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/N"
	ti.Focus()
	ti.CharLimit = 10
	ti.Width = 20

	return confirmModel{
		textInput: ti,
		prompt:    prompt,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update finishes on enter, and cancels on esc or ctrl+c.
func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.err = ErrCancelled
			m.done = true
			return m, tea.Quit
		case "enter":
			value := strings.ToLower(strings.TrimSpace(m.textInput.Value()))
			m.result = value == "y" || value == "yes"
			m.done = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the prompt, or nothing once answered.
func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", m.prompt, m.textInput.View())
}

// PromptForConfirmation asks a yes/no question on the controlling terminal.
// Only "y" and "yes" count as yes.
func PromptForConfirmation(prompt string) (bool, error) {
	t, err := tty.Open()
	if err != nil {
		return false, fmt.Errorf("failed to open terminal: %w", err)
	}
	defer t.Close()

	p := tea.NewProgram(newConfirmModel(prompt), tea.WithInput(t.Input()), tea.WithOutput(t.Output()))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	result := finalModel.(confirmModel)
	if result.err != nil {
		return false, result.err
	}
	return result.result, nil
}

// ConfirmOverwrite asks whether the existing file at path may be replaced.
func ConfirmOverwrite(path string) (bool, error) {
	return PromptForConfirmation(fmt.Sprintf("%s already exists. Overwrite? (y/N)", path))
}
