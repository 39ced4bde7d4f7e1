package common

import tea "github.com/charmbracelet/bubbletea"

// Model is the contract between the root model and its child components.
// Children report state changes through commands instead of replacing
// themselves.
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Focusable marks components that can hold keyboard focus.
type Focusable interface {
	IsFocused() bool
}

// NewCmd wraps msg in a command, for handing messages between components.
func NewCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
