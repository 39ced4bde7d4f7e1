// Package status renders the bottom bar: item counts, the single reason the
// plan cannot be applied, progress while a service call runs, and short key
// help.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/SymphonyNineth/batchren/internal/rename"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

const progressWidth = 24

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	dimmed   lipgloss.Style
	shortcut lipgloss.Style
	success  lipgloss.Style
	error    lipgloss.Style
}

var _ common.Model = (*Model)(nil)

type Model struct {
	spinner    spinner.Model
	progress   progress.Model
	help       help.Model
	helpKeys   []key.Binding
	styles     styles
	width      int
	total      int
	changed    int
	collisions int
	blocking   string
	running    bool
	operation  string
}

func New() *Model {
	st := styles{
		title:    common.DefaultPalette.Get("status title"),
		text:     common.DefaultPalette.Get("status text"),
		dimmed:   common.DefaultPalette.Get("status dimmed"),
		shortcut: common.DefaultPalette.Get("status shortcut"),
		success:  common.DefaultPalette.Get("status success"),
		error:    common.DefaultPalette.Get("status error"),
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(progress.WithDefaultGradient())
	p.Width = progressWidth

	h := help.New()
	h.Styles.ShortKey = st.shortcut
	h.Styles.ShortDesc = st.dimmed
	h.Styles.ShortSeparator = st.dimmed

	return &Model{
		spinner:  s,
		progress: p,
		help:     h,
		styles:   st,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.help.Width = width
}

// SetHelp replaces the short help entries shown while idle.
func (m *Model) SetHelp(keys []key.Binding) {
	m.helpKeys = keys
}

// SetPlan refreshes the counts from plan; nil clears them.
func (m *Model) SetPlan(plan *rename.Plan) {
	if plan == nil {
		m.total, m.changed, m.collisions = 0, 0, 0
		return
	}
	m.total = len(plan.Items)
	m.changed = plan.ChangedCount()
	m.collisions = plan.CollisionCount()
}

// SetBlocking records why the plan cannot be applied, nil when it can.
func (m *Model) SetBlocking(err error) {
	if err == nil {
		m.blocking = ""
		return
	}
	m.blocking = err.Error()
}

// StartOperation switches the bar into progress mode and starts the spinner.
func (m *Model) StartOperation(name string) tea.Cmd {
	m.running = true
	m.operation = name
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

// SetOperation updates the running label without restarting the spinner.
func (m *Model) SetOperation(name string) {
	if m.running {
		m.operation = name
	}
}

// SetProgress advances the bar; total of zero leaves it untouched.
func (m *Model) SetProgress(current, total int) tea.Cmd {
	if !m.running || total <= 0 {
		return nil
	}
	return m.progress.SetPercent(float64(current) / float64(total))
}

// FinishOperation returns the bar to idle mode.
func (m *Model) FinishOperation() {
	m.running = false
	m.operation = ""
}

// Running reports whether an operation is currently in flight.
func (m *Model) Running() bool {
	return m.running
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		m.progress = model.(progress.Model)
		return cmd
	case spinner.TickMsg:
		if !m.running {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) View() string {
	parts := []string{
		m.styles.title.Render(" batchren "),
		m.renderCounts(),
	}
	if m.running {
		parts = append(parts,
			m.styles.text.Render(m.spinner.View()+m.operation),
			m.progress.View(),
		)
	} else {
		parts = append(parts, m.renderBlocking())
		if len(m.helpKeys) > 0 {
			parts = append(parts, m.help.ShortHelpView(m.helpKeys))
		}
	}
	line := strings.Join(parts, m.styles.text.Render("  "))
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

func (m *Model) renderCounts() string {
	sep := m.styles.dimmed.Render(" • ")
	counts := m.styles.text.Render(fmt.Sprintf("%d files", m.total))
	changed := m.styles.dimmed.Render("0 change")
	if m.changed > 0 {
		changed = m.styles.success.Render(fmt.Sprintf("%d change", m.changed))
	}
	out := counts + sep + changed
	if m.collisions > 0 {
		out += sep + m.styles.error.Render(fmt.Sprintf("%d collide", m.collisions))
	}
	return out
}

func (m *Model) renderBlocking() string {
	if m.blocking == "" {
		return m.styles.success.Render("✓ ready")
	}
	return m.styles.error.Render("✗ " + m.blocking)
}
