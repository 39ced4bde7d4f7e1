// Package fuzzy_files is the filter overlay: it fuzzy-matches the loaded
// paths by file name and narrows the working set to the matches.
package fuzzy_files

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/SymphonyNineth/batchren/internal/pathutil"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

// FilteredMsg carries the narrowed working set, in original list order.
type FilteredMsg struct {
	Paths []string
}

// CancelledMsg dismisses the overlay leaving the working set untouched.
type CancelledMsg struct{}

const maxShown = 30

type styles struct {
	border  lipgloss.Style
	title   lipgloss.Style
	text    lipgloss.Style
	dimmed  lipgloss.Style
	matched lipgloss.Style
}

var _ common.Model = (*Model)(nil)

type Model struct {
	input   textinput.Model
	paths   []string
	names   []string
	matches fuzzy.Matches
	styles  styles
	width   int
}

// Len and String make the model a fuzzy.Source over the file names.
func (m *Model) Len() int { return len(m.names) }

func (m *Model) String(i int) string {
	if i < 0 || i >= len(m.names) {
		return ""
	}
	return m.names[i]
}

func New(paths []string) *Model {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = pathutil.FileName(path)
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()
	m := &Model{
		input: ti,
		paths: paths,
		names: names,
		styles: styles{
			border:  common.DefaultPalette.GetBorder("border", lipgloss.RoundedBorder()),
			title:   common.DefaultPalette.Get("title"),
			text:    common.DefaultPalette.Get("text"),
			dimmed:  common.DefaultPalette.Get("dimmed"),
			matched: common.DefaultPalette.Get("fuzzy match"),
		},
	}
	m.search("")
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) SetWidth(width int) {
	m.width = width
	if width > 8 {
		m.input.Width = width - 8
	}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Cursor blinks and other component messages go to the input.
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	switch keyMsg.String() {
	case "esc":
		return common.NewCmd(CancelledMsg{})
	case "enter":
		paths := m.matchedPaths()
		if len(paths) == 0 {
			return nil
		}
		return common.NewCmd(FilteredMsg{Paths: paths})
	}
	previous := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	if m.input.Value() != previous {
		m.search(m.input.Value())
	}
	return cmd
}

// matchedPaths maps the matches back to paths, restoring list order so the
// narrowed set keeps the session ordering rather than the score ordering.
func (m *Model) matchedPaths() []string {
	indexes := make([]int, 0, len(m.matches))
	for _, match := range m.matches {
		indexes = append(indexes, match.Index)
	}
	sort.Ints(indexes)
	paths := make([]string, 0, len(indexes))
	for _, i := range indexes {
		paths = append(paths, m.paths[i])
	}
	return paths
}

func (m *Model) search(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		// No query shows the whole list, unranked.
		m.matches = make(fuzzy.Matches, 0, len(m.names))
		for i, name := range m.names {
			m.matches = append(m.matches, fuzzy.Match{Index: i, Str: name})
		}
		return
	}
	m.matches = fuzzy.FindFrom(input, m)
}

// MatchCount is the current number of matches.
func (m *Model) MatchCount() int {
	return len(m.matches)
}

func (m *Model) View() string {
	title := m.styles.title.Render(fmt.Sprintf(" %d of %d files ", len(m.matches), len(m.paths)))
	rows := []string{title, m.input.View()}
	shown := len(m.matches)
	if shown > maxShown {
		shown = maxShown
	}
	for _, match := range m.matches[:shown] {
		rows = append(rows, m.renderMatch(match))
	}
	if len(m.matches) == 0 {
		rows = append(rows, m.styles.dimmed.Render("no matches"))
	} else if len(m.matches) > shown {
		rows = append(rows, m.styles.dimmed.Render(fmt.Sprintf("… and %d more", len(m.matches)-shown)))
	}
	return m.styles.border.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderMatch paints the matched bytes of a name in the highlight style.
func (m *Model) renderMatch(match fuzzy.Match) string {
	if len(match.MatchedIndexes) == 0 {
		return m.styles.text.Render(match.Str)
	}
	matched := make([]bool, len(match.Str))
	for _, i := range match.MatchedIndexes {
		if i >= 0 && i < len(matched) {
			matched[i] = true
		}
	}
	var b strings.Builder
	start := 0
	for i := 1; i <= len(matched); i++ {
		if i < len(matched) && matched[i] == matched[start] {
			continue
		}
		chunk := match.Str[start:i]
		if matched[start] {
			b.WriteString(m.styles.matched.Render(chunk))
		} else {
			b.WriteString(m.styles.text.Render(chunk))
		}
		start = i
	}
	return b.String()
}
