// Package preview renders the before/after pane: one row per planned item,
// with removed, added, match and numbering spans painted and a collision
// marker on every member of a colliding group.
package preview

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/SymphonyNineth/batchren/internal/diff"
	"github.com/SymphonyNineth/batchren/internal/rename"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

const (
	classText = iota
	classRemoved
	classAdded
	classMatch
	classMatchAlt
	classNumber
)

type styles struct {
	text      lipgloss.Style
	dimmed    lipgloss.Style
	removed   lipgloss.Style
	added     lipgloss.Style
	match     lipgloss.Style
	matchAlt  lipgloss.Style
	number    lipgloss.Style
	collision lipgloss.Style
	errorText lipgloss.Style
	cursor    lipgloss.Style
}

type keymap struct {
	up       key.Binding
	down     key.Binding
	pageUp   key.Binding
	pageDown key.Binding
	home     key.Binding
	end      key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		pageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		pageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		end:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	}
}

var _ common.Model = (*Model)(nil)

type Model struct {
	viewport viewport.Model
	keymap   keymap
	styles   styles
	plan     *rename.Plan
	pattern  *regexp.Regexp
	cursor   int
	width    int
	height   int
}

func New() *Model {
	return &Model{
		viewport: viewport.New(0, 0),
		keymap:   defaultKeymap(),
		styles: styles{
			text:      common.DefaultPalette.Get("text"),
			dimmed:    common.DefaultPalette.Get("dimmed"),
			removed:   common.DefaultPalette.Get("diff removed"),
			added:     common.DefaultPalette.Get("diff added"),
			match:     common.DefaultPalette.Get("match"),
			matchAlt:  common.DefaultPalette.Get("match alt"),
			number:    common.DefaultPalette.Get("number"),
			collision: common.DefaultPalette.Get("collision"),
			errorText: common.DefaultPalette.Get("preview error"),
			cursor:    common.DefaultPalette.Get("preview cursor"),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// SetPattern swaps the compiled find pattern backing capture-group coloring;
// nil while the find text is empty or in literal mode without groups.
func (m *Model) SetPattern(re *regexp.Regexp) {
	m.pattern = re
	m.refresh()
}

// SetPlan swaps the rendered plan and clamps the cursor to the new length.
func (m *Model) SetPlan(plan *rename.Plan) {
	m.plan = plan
	if m.cursor >= m.itemCount() {
		m.cursor = m.itemCount() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// Cursor is the index of the highlighted item.
func (m *Model) Cursor() int {
	return m.cursor
}

// CurrentItem returns the item under the cursor.
func (m *Model) CurrentItem() (rename.RenameItem, bool) {
	if m.plan == nil || m.cursor >= len(m.plan.Items) {
		return rename.RenameItem{}, false
	}
	return m.plan.Items[m.cursor], true
}

func (m *Model) itemCount() int {
	if m.plan == nil {
		return 0
	}
	return len(m.plan.Items)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keymap.up):
		m.moveCursor(-1)
	case key.Matches(keyMsg, m.keymap.down):
		m.moveCursor(1)
	case key.Matches(keyMsg, m.keymap.pageUp):
		m.moveCursor(-m.viewport.Height)
	case key.Matches(keyMsg, m.keymap.pageDown):
		m.moveCursor(m.viewport.Height)
	case key.Matches(keyMsg, m.keymap.home):
		m.moveCursor(-m.itemCount())
	case key.Matches(keyMsg, m.keymap.end):
		m.moveCursor(m.itemCount())
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	count := m.itemCount()
	if count == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	m.refresh()
	m.followCursor()
}

// followCursor keeps the highlighted row inside the visible window.
func (m *Model) followCursor() {
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if m.cursor < top {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor > bottom {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) refresh() {
	count := m.itemCount()
	if count == 0 {
		m.viewport.SetContent(m.styles.dimmed.Render("no files"))
		return
	}
	rows := make([]string, 0, count)
	for i, item := range m.plan.Items {
		rows = append(rows, m.renderRow(item, i == m.cursor))
	}
	m.viewport.SetContent(strings.Join(rows, "\n"))
}

func (m *Model) View() string {
	return m.viewport.View()
}

func (m *Model) styleFor(class int, cursored bool) lipgloss.Style {
	var style lipgloss.Style
	switch class {
	case classRemoved:
		style = m.styles.removed
	case classAdded:
		style = m.styles.added
	case classMatch:
		style = m.styles.match
	case classMatchAlt:
		style = m.styles.matchAlt
	case classNumber:
		style = m.styles.number
	default:
		style = m.styles.text
	}
	return m.applyCursor(style, cursored)
}

func (m *Model) applyCursor(style lipgloss.Style, cursored bool) lipgloss.Style {
	if cursored {
		return style.Background(m.styles.cursor.GetBackground())
	}
	return style
}

func (m *Model) renderRow(item rename.RenameItem, cursored bool) string {
	styleOf := func(class int) lipgloss.Style { return m.styleFor(class, cursored) }
	var b strings.Builder
	b.WriteString(renderClasses(item.Name, m.oldNameClasses(item), styleOf))
	if item.Changed() {
		b.WriteString(m.applyCursor(m.styles.dimmed, cursored).Render(" → "))
		b.WriteString(renderClasses(item.NewName, newNameClasses(item), styleOf))
	}
	if item.HasCollision {
		b.WriteString(styleOf(classText).Render(" "))
		b.WriteString(m.applyCursor(m.styles.collision, cursored).Render("✗ collision"))
	}
	if item.Err != nil {
		b.WriteString(styleOf(classText).Render(" "))
		b.WriteString(m.applyCursor(m.styles.errorText, cursored).Render(fmt.Sprintf("✗ %v", item.Err)))
	}
	row := b.String()
	if m.width > 0 {
		row = ansi.Truncate(row, m.width, "…")
		if cursored {
			if pad := m.width - lipgloss.Width(row); pad > 0 {
				row += m.applyCursor(m.styles.text, true).Render(strings.Repeat(" ", pad))
			}
		}
	}
	return row
}

// renderClasses styles text as maximal runs of equal byte classes. Spans and
// segments always cut on rune boundaries, so runs never split a rune.
func renderClasses(text string, classes []int, styleOf func(int) lipgloss.Style) string {
	if len(text) == 0 {
		return ""
	}
	var b strings.Builder
	start := 0
	for i := 1; i <= len(classes); i++ {
		if i < len(classes) && classes[i] == classes[start] {
			continue
		}
		b.WriteString(styleOf(classes[start]).Render(text[start:i]))
		start = i
	}
	return b.String()
}

// oldNameClasses paints the original name: removed runs when the name
// changes (diffed when the plan carries no replacement segments), capture
// groups when the find pattern declares them, match spans otherwise.
func (m *Model) oldNameClasses(item rename.RenameItem) []int {
	classes := make([]int, len(item.Name))
	if item.Changed() {
		segments := item.Segments
		if len(segments) == 0 {
			segments = diff.Diff(item.Name, item.NewName)
		}
		pos := 0
		for _, seg := range segments {
			switch seg.Kind {
			case diff.Unchanged:
				pos += len(seg.Text)
			case diff.Removed:
				for i := 0; i < len(seg.Text); i++ {
					classes[pos+i] = classRemoved
				}
				pos += len(seg.Text)
			}
		}
		return classes
	}
	if diff.HasCaptureGroups(m.pattern) {
		pos := 0
		for _, h := range diff.PatternHighlights(item.Name, m.pattern) {
			if h.Group > 0 {
				class := classMatch
				if h.Group%2 == 0 {
					class = classMatchAlt
				}
				for i := 0; i < len(h.Text); i++ {
					classes[pos+i] = class
				}
			}
			pos += len(h.Text)
		}
		return classes
	}
	for _, span := range item.MatchSpans {
		for i := span.Start; i < span.End && i < len(classes); i++ {
			classes[i] = classMatch
		}
	}
	return classes
}

// newNameClasses paints the new name: added segments from the replacement
// plus the digits the numbering stage spliced in. Without replacement
// segments (a numbering-only rename) the added runs come from a character
// diff of the two names.
func newNameClasses(item rename.RenameItem) []int {
	if len(item.Segments) == 0 {
		return diffedNewNameClasses(item)
	}
	classes := make([]int, len(item.NewName))
	base := replacedName(item)
	block := insertedBlock(base, item.NewName, item.NumberSpan)
	added := addedOffsets(item.Segments)
	blockLen := block.End - block.Start
	for i := 0; i < len(classes); i++ {
		if i >= block.Start && i < block.End {
			if i >= item.NumberSpan.Start && i < item.NumberSpan.End {
				classes[i] = classNumber
			}
			continue
		}
		baseOff := i
		if i >= block.End {
			baseOff = i - blockLen
		}
		if baseOff < len(added) && added[baseOff] {
			classes[i] = classAdded
		}
	}
	return classes
}

// diffedNewNameClasses paints the new name from a character diff against the
// old one, with the numbering digits layered on top.
func diffedNewNameClasses(item rename.RenameItem) []int {
	classes := make([]int, len(item.NewName))
	pos := 0
	for _, seg := range diff.Diff(item.Name, item.NewName) {
		if seg.Kind == diff.Removed {
			continue
		}
		if seg.Kind == diff.Added {
			for i := 0; i < len(seg.Text); i++ {
				classes[pos+i] = classAdded
			}
		}
		pos += len(seg.Text)
	}
	for i := item.NumberSpan.Start; i < item.NumberSpan.End && i < len(classes); i++ {
		classes[i] = classNumber
	}
	return classes
}

// replacedName reconstructs the name after find/replace but before numbering.
func replacedName(item rename.RenameItem) string {
	if len(item.Segments) == 0 {
		return item.Name
	}
	var b strings.Builder
	for _, seg := range item.Segments {
		if seg.Kind != diff.Removed {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// addedOffsets marks which bytes of the replaced name are substituted text.
func addedOffsets(segments []diff.Segment) []bool {
	size := 0
	for _, seg := range segments {
		if seg.Kind != diff.Removed {
			size += len(seg.Text)
		}
	}
	added := make([]bool, size)
	pos := 0
	for _, seg := range segments {
		switch seg.Kind {
		case diff.Unchanged:
			pos += len(seg.Text)
		case diff.Added:
			for i := 0; i < len(seg.Text); i++ {
				added[pos+i] = true
			}
			pos += len(seg.Text)
		}
	}
	return added
}

// insertedBlock locates the contiguous bytes numbering spliced into final:
// the digit span plus the separator on whichever side it was attached. The
// candidate offsets are verified by cutting the block back out.
func insertedBlock(base, final string, digits rename.Span) rename.Span {
	insertedLen := len(final) - len(base)
	if insertedLen <= 0 || digits.Empty() {
		return rename.Span{}
	}
	for _, start := range []int{digits.End - insertedLen, digits.Start} {
		if start < 0 || start+insertedLen > len(final) {
			continue
		}
		if final[:start]+final[start+insertedLen:] == base {
			return rename.Span{Start: start, End: start + insertedLen}
		}
	}
	return digits
}
