package confirmation

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

// CloseMsg is broadcast when the dialog is dismissed without running an option.
type CloseMsg struct{}

// SelectOptionMsg moves the selection to the option at Index.
type SelectOptionMsg struct {
	Index int
}

// MoveSelectionMsg moves the selection by Delta, clamped to the option range.
type MoveSelectionMsg struct {
	Delta int
}

// ApplySelectionMsg runs the currently selected option. Alt runs the
// alternative command when the option has one.
type ApplySelectionMsg struct {
	Alt bool
}

// CancelMsg dismisses the dialog through its escape option if present.
type CancelMsg struct{}

type option struct {
	label      string
	cmd        tea.Cmd
	keyBinding key.Binding
	altCmd     tea.Cmd
}

type Styles struct {
	Border   lipgloss.Style
	Selected lipgloss.Style
	Dimmed   lipgloss.Style
	Text     lipgloss.Style
}

type Model struct {
	width       int
	height      int
	options     []option
	selected    int
	messages    []string
	stylePrefix string
	Styles      Styles
}

type Option func(*Model)

func WithStylePrefix(prefix string) Option {
	return func(m *Model) {
		m.stylePrefix = prefix
	}
}

func WithOption(label string, cmd tea.Cmd, keyBinding key.Binding) Option {
	return func(m *Model) {
		m.options = append(m.options, option{label: label, cmd: cmd, keyBinding: keyBinding})
	}
}

// WithAltOption registers an option whose alt-modified key binding runs altCmd
// instead of cmd.
func WithAltOption(label string, cmd tea.Cmd, altCmd tea.Cmd, keyBinding key.Binding) Option {
	return func(m *Model) {
		m.options = append(m.options, option{label: label, cmd: cmd, keyBinding: keyBinding, altCmd: altCmd})
	}
}

func New(messages []string, options ...Option) *Model {
	m := &Model{
		messages: messages,
		selected: 0,
	}
	for _, opt := range options {
		opt(m)
	}
	m.Styles = Styles{
		Border:   common.DefaultPalette.GetBorder(m.getStyleKey("border"), lipgloss.RoundedBorder()),
		Selected: common.DefaultPalette.Get(m.getStyleKey("selected")),
		Dimmed:   common.DefaultPalette.Get(m.getStyleKey("dimmed")),
		Text:     common.DefaultPalette.Get(m.getStyleKey("text")),
	}
	return m
}

func (m *Model) getStyleKey(name string) string {
	if m.stylePrefix != "" {
		return m.stylePrefix + " confirmation " + name
	}
	return "confirmation " + name
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SelectOptionMsg:
		if msg.Index >= 0 && msg.Index < len(m.options) {
			m.selected = msg.Index
		}
		return nil
	case MoveSelectionMsg:
		m.selected += msg.Delta
		if m.selected < 0 {
			m.selected = 0
		}
		if m.selected >= len(m.options) {
			m.selected = len(m.options) - 1
		}
		return nil
	case ApplySelectionMsg:
		if len(m.options) == 0 {
			return Close
		}
		selected := m.options[m.selected]
		if msg.Alt && selected.altCmd != nil {
			return selected.altCmd
		}
		return selected.cmd
	case CancelMsg:
		return m.runOptionForKey("esc")
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "shift+tab":
			return m.Update(MoveSelectionMsg{Delta: -1})
		case "right", "tab":
			return m.Update(MoveSelectionMsg{Delta: 1})
		case "enter":
			return m.Update(ApplySelectionMsg{})
		case "alt+enter":
			return m.Update(ApplySelectionMsg{Alt: true})
		}
		for _, opt := range m.options {
			if key.Matches(msg, opt.keyBinding) {
				if msg.Alt && opt.altCmd != nil {
					return opt.altCmd
				}
				return opt.cmd
			}
		}
	}
	return nil
}

// runOptionForKey runs the command of the first option bound to the given key,
// falling back to Close when none matches.
func (m *Model) runOptionForKey(k string) tea.Cmd {
	for _, opt := range m.options {
		for _, bound := range opt.keyBinding.Keys() {
			if bound == k {
				return opt.cmd
			}
		}
	}
	return Close
}

func (m *Model) View() string {
	var lines []string
	lines = append(lines, m.messages...)

	var rendered []string
	for i, opt := range m.options {
		style := m.Styles.Dimmed
		if i == m.selected {
			style = m.Styles.Selected
		}
		rendered = append(rendered, style.Render(opt.label))
	}
	if len(rendered) > 0 {
		lines = append(lines, "")
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(rendered, " ")))
	}

	content := m.Styles.Text.Render(strings.Join(lines, "\n"))
	dialog := m.Styles.Border.Render(content)
	if m.width <= 0 || m.height <= 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceBackground(m.Styles.Text.GetBackground()))
}

// Close dismisses the dialog.
func Close() tea.Msg {
	return CloseMsg{}
}
