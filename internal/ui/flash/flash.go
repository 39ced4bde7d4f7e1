package flash

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SymphonyNineth/batchren/internal/config"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

var _ common.Model = (*Model)(nil)

type expireMessageMsg struct {
	id uint64
}

type flashMessage struct {
	text  string
	error error
	id    uint64
}

type Model struct {
	messages     []flashMessage
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	width        int
	currentId    uint64
}

func New() *Model {
	return &Model{
		messages:     make([]flashMessage, 0),
		successStyle: common.DefaultPalette.Get("flash success"),
		errorStyle:   common.DefaultPalette.Get("flash error"),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if expired, ok := msg.(expireMessageMsg); ok {
		m.removeLiveMessageByID(expired.id)
	}
	return nil
}

// Add queues a message for display. Successes expire after the configured
// timeout, errors stay until dismissed.
func (m *Model) Add(text string, err error) tea.Cmd {
	id := m.add(text, err)
	if err == nil && id != 0 {
		expiringMessageTimeout := config.GetExpiringFlashMessageTimeout(config.Current)
		if expiringMessageTimeout > time.Duration(0) {
			return tea.Tick(expiringMessageTimeout, func(t time.Time) tea.Msg {
				return expireMessageMsg{id: id}
			})
		}
	}
	return nil
}

func (m *Model) add(text string, err error) uint64 {
	text = strings.TrimSpace(text)
	if text == "" && err == nil {
		return 0
	}
	msg := flashMessage{
		id:    m.nextId(),
		text:  text,
		error: err,
	}
	m.messages = append(m.messages, msg)
	return msg.id
}

func (m *Model) removeLiveMessageByID(id uint64) bool {
	for i, message := range m.messages {
		if message.id != id {
			continue
		}
		m.messages = append(m.messages[:i], m.messages[i+1:]...)
		return true
	}
	return false
}

func (m *Model) Any() bool {
	return len(m.messages) > 0
}

func (m *Model) LiveMessagesCount() int {
	return len(m.messages)
}

func (m *Model) DeleteOldest() {
	if len(m.messages) == 0 {
		return
	}
	m.messages = m.messages[1:]
}

func (m *Model) View() string {
	if len(m.messages) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(m.messages))
	for _, message := range m.messages {
		rendered = append(rendered, m.renderMessageContent(message, m.width-4))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (m *Model) renderMessageContent(message flashMessage, maxWidth int) string {
	style := m.successStyle
	bodyText := message.text
	if message.error != nil {
		style = m.errorStyle
		bodyText = message.error.Error()
		if message.text != "" {
			bodyText = message.text + "\n" + bodyText
		}
	}

	content := style.Render(bodyText)
	if w, _ := lipgloss.Size(content); maxWidth > 0 && w > maxWidth {
		content = lipgloss.NewStyle().Width(maxWidth).Render(content)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		PaddingLeft(1).
		PaddingRight(1).
		BorderForeground(style.GetForeground()).
		Render(content)
}

func (m *Model) nextId() uint64 {
	m.currentId = m.currentId + 1
	return m.currentId
}
