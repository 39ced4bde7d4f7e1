// Package form is the options pane. It owns the find and replace inputs, the
// matching toggles and the numbering controls, and broadcasts a debounced
// OptionsChangedMsg whenever the effective options change.
package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SymphonyNineth/batchren/internal/rename"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

// OptionsChangedMsg carries a snapshot of the options after an edit settled.
type OptionsChangedMsg struct {
	Options rename.Options
}

// ApplyRequestedMsg asks the root model to apply the current plan.
type ApplyRequestedMsg struct{}

const optionsDebounce = 250 * time.Millisecond

const (
	fieldFind = iota
	fieldReplace
	fieldStart
	fieldIncrement
	fieldPadding
	fieldSeparator
	fieldInsertAt
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldFind:      "Find",
	fieldReplace:   "Replace",
	fieldStart:     "Start",
	fieldIncrement: "Step",
	fieldPadding:   "Pad",
	fieldSeparator: "Sep",
	fieldInsertAt:  "At",
}

type keymap struct {
	toggleCase      key.Binding
	toggleRegex     key.Binding
	toggleFirstOnly key.Binding
	toggleExtension key.Binding
	toggleNumbering key.Binding
	cyclePosition   key.Binding
	nextField       key.Binding
	prevField       key.Binding
	apply           key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		toggleCase:      key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "case")),
		toggleRegex:     key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "regex")),
		toggleFirstOnly: key.NewBinding(key.WithKeys("alt+f"), key.WithHelp("alt+f", "first only")),
		toggleExtension: key.NewBinding(key.WithKeys("alt+e"), key.WithHelp("alt+e", "extension")),
		toggleNumbering: key.NewBinding(key.WithKeys("alt+n"), key.WithHelp("alt+n", "numbering")),
		cyclePosition:   key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "position")),
		nextField:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prevField:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		apply:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	}
}

type styles struct {
	label        lipgloss.Style
	labelFocused lipgloss.Style
	toggleOn     lipgloss.Style
	toggleOff    lipgloss.Style
	errorText    lipgloss.Style
	text         lipgloss.Style
}

var (
	_ common.Model     = (*Model)(nil)
	_ common.Focusable = (*Model)(nil)
)

type Model struct {
	keymap     keymap
	inputs     [fieldCount]textinput.Model
	focused    int
	options    rename.Options
	patternErr error
	width      int
	styles     styles
}

// New builds the form seeded with opts, typically the configured defaults.
func New(opts rename.Options) *Model {
	m := &Model{
		keymap:  defaultKeymap(),
		options: opts,
		styles: styles{
			label:        common.DefaultPalette.Get("form label"),
			labelFocused: common.DefaultPalette.Get("form label focused"),
			toggleOn:     common.DefaultPalette.Get("form toggle on"),
			toggleOff:    common.DefaultPalette.Get("form toggle off"),
			errorText:    common.DefaultPalette.Get("form error"),
			text:         common.DefaultPalette.Get("text"),
		},
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Width = 24
		m.inputs[i] = ti
	}
	m.inputs[fieldFind].SetValue(opts.FindText)
	m.inputs[fieldReplace].SetValue(opts.ReplaceText)
	m.inputs[fieldStart].SetValue(strconv.Itoa(opts.Numbering.StartAt))
	m.inputs[fieldStart].Validate = validateInt
	m.inputs[fieldStart].Width = 6
	m.inputs[fieldIncrement].SetValue(strconv.Itoa(opts.Numbering.Increment))
	m.inputs[fieldIncrement].Validate = validateInt
	m.inputs[fieldIncrement].Width = 6
	if opts.Numbering.Padding > 0 {
		m.inputs[fieldPadding].SetValue(strconv.Itoa(opts.Numbering.Padding))
	}
	m.inputs[fieldPadding].Validate = validateNonNegativeInt
	m.inputs[fieldPadding].Width = 6
	m.inputs[fieldSeparator].SetValue(opts.Numbering.Separator)
	m.inputs[fieldSeparator].Width = 6
	m.inputs[fieldInsertAt].SetValue(strconv.Itoa(opts.Numbering.InsertAt))
	m.inputs[fieldInsertAt].Validate = validateNonNegativeInt
	m.inputs[fieldInsertAt].Width = 6
	m.focusField(fieldFind)
	return m
}

func validateInt(s string) error {
	if s == "" || s == "-" {
		return nil
	}
	_, err := strconv.Atoi(s)
	return err
}

func validateNonNegativeInt(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("negative value %d", n)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) IsFocused() bool {
	return m.inputs[m.focused].Focused()
}

func (m *Model) SetWidth(width int) {
	m.width = width
	findWidth := width - len(fieldLabels[fieldFind]) - 6
	if findWidth < 10 {
		findWidth = 10
	}
	m.inputs[fieldFind].Width = findWidth
	m.inputs[fieldReplace].Width = findWidth
}

// SetPatternError records the compile failure shown under the find input.
func (m *Model) SetPatternError(err error) {
	m.patternErr = err
}

// Options returns the current form state as rename options. Numeric fields
// left empty or mid-edit fall back to their previous value.
func (m *Model) Options() rename.Options {
	opts := m.options
	opts.FindText = m.inputs[fieldFind].Value()
	opts.ReplaceText = m.inputs[fieldReplace].Value()
	opts.Numbering.StartAt = intValue(m.inputs[fieldStart].Value(), m.options.Numbering.StartAt)
	opts.Numbering.Increment = intValue(m.inputs[fieldIncrement].Value(), m.options.Numbering.Increment)
	opts.Numbering.Padding = intValue(m.inputs[fieldPadding].Value(), 0)
	opts.Numbering.Separator = m.inputs[fieldSeparator].Value()
	opts.Numbering.InsertAt = intValue(m.inputs[fieldInsertAt].Value(), 0)
	return opts
}

func intValue(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Cursor blinks and other component messages go to the focused input.
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return cmd
	}
	switch {
	case key.Matches(keyMsg, m.keymap.apply):
		return common.NewCmd(ApplyRequestedMsg{})
	case key.Matches(keyMsg, m.keymap.nextField):
		m.focusField(m.nextVisibleField(1))
		return nil
	case key.Matches(keyMsg, m.keymap.prevField):
		m.focusField(m.nextVisibleField(-1))
		return nil
	case key.Matches(keyMsg, m.keymap.toggleCase):
		m.options.CaseSensitive = !m.options.CaseSensitive
		return m.optionsChanged()
	case key.Matches(keyMsg, m.keymap.toggleRegex):
		m.options.RegexMode = !m.options.RegexMode
		return m.optionsChanged()
	case key.Matches(keyMsg, m.keymap.toggleFirstOnly):
		m.options.ReplaceFirstOnly = !m.options.ReplaceFirstOnly
		return m.optionsChanged()
	case key.Matches(keyMsg, m.keymap.toggleExtension):
		m.options.IncludeExtension = !m.options.IncludeExtension
		return m.optionsChanged()
	case key.Matches(keyMsg, m.keymap.toggleNumbering):
		m.options.Numbering.Enabled = !m.options.Numbering.Enabled
		if !m.visible(m.focused) {
			m.focusField(fieldFind)
		}
		return m.optionsChanged()
	case key.Matches(keyMsg, m.keymap.cyclePosition):
		m.options.Numbering.Position = (m.options.Numbering.Position + 1) % 3
		if !m.visible(m.focused) {
			m.focusField(fieldFind)
		}
		return m.optionsChanged()
	}

	before := m.inputs[m.focused].Value()
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	if m.inputs[m.focused].Err != nil {
		// Validate flags the value but leaves it in place, so roll back.
		m.inputs[m.focused].SetValue(before)
		m.inputs[m.focused].CursorEnd()
		return cmd
	}
	if m.inputs[m.focused].Value() != before {
		return tea.Batch(cmd, m.optionsChanged())
	}
	return cmd
}

func (m *Model) optionsChanged() tea.Cmd {
	opts := m.Options()
	return common.Debounce("form-options", optionsDebounce, func() tea.Msg {
		return OptionsChangedMsg{Options: opts}
	})
}

func (m *Model) visible(field int) bool {
	switch field {
	case fieldStart, fieldIncrement, fieldPadding, fieldSeparator:
		return m.options.Numbering.Enabled
	case fieldInsertAt:
		return m.options.Numbering.Enabled && m.options.Numbering.Position == rename.Insert
	default:
		return true
	}
}

func (m *Model) nextVisibleField(delta int) int {
	field := m.focused
	for i := 0; i < fieldCount; i++ {
		field = (field + delta + fieldCount) % fieldCount
		if m.visible(field) {
			return field
		}
	}
	return m.focused
}

func (m *Model) focusField(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = m.styles.label
	}
	m.focused = field
	m.inputs[field].PromptStyle = m.styles.labelFocused
	m.inputs[field].Focus()
}

func (m *Model) renderLabel(field int) string {
	style := m.styles.label
	if field == m.focused {
		style = m.styles.labelFocused
	}
	return style.Render(fieldLabels[field])
}

func (m *Model) renderToggle(label string, on bool, binding key.Binding) string {
	mark := m.styles.toggleOff.Render("[ ]")
	if on {
		mark = m.styles.toggleOn.Render("[x]")
	}
	return mark + " " + m.styles.label.Render(label+" ("+binding.Help().Key+")")
}

func (m *Model) renderField(field int) string {
	return m.renderLabel(field) + " " + m.inputs[field].View()
}

func (m *Model) View() string {
	rows := []string{
		m.renderField(fieldFind),
	}
	if m.patternErr != nil {
		rows = append(rows, m.styles.errorText.Render(m.patternErr.Error()))
	}
	rows = append(rows,
		m.renderField(fieldReplace),
		"",
		strings.Join([]string{
			m.renderToggle("regex", m.options.RegexMode, m.keymap.toggleRegex),
			m.renderToggle("case", m.options.CaseSensitive, m.keymap.toggleCase),
		}, "  "),
		strings.Join([]string{
			m.renderToggle("first only", m.options.ReplaceFirstOnly, m.keymap.toggleFirstOnly),
			m.renderToggle("extension", m.options.IncludeExtension, m.keymap.toggleExtension),
		}, "  "),
		m.renderToggle("numbering", m.options.Numbering.Enabled, m.keymap.toggleNumbering),
	)
	if m.options.Numbering.Enabled {
		rows = append(rows,
			m.styles.label.Render("position: ")+m.styles.text.Render(m.options.Numbering.Position.String())+
				m.styles.label.Render(" ("+m.keymap.cyclePosition.Help().Key+")"),
			strings.Join([]string{
				m.renderField(fieldStart),
				m.renderField(fieldIncrement),
			}, "  "),
			strings.Join([]string{
				m.renderField(fieldPadding),
				m.renderField(fieldSeparator),
			}, "  "),
		)
		if m.options.Numbering.Position == rename.Insert {
			rows = append(rows, m.renderField(fieldInsertAt))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
