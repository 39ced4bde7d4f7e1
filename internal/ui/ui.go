// Package ui is the root model: the option form and the live preview in a
// resizable split, a status bar, flash messages, and the confirmation and
// fuzzy filter overlays. It owns the session list and drives the rename and
// list services through cancellable operations.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SymphonyNineth/batchren/internal/config"
	"github.com/SymphonyNineth/batchren/internal/fsops"
	"github.com/SymphonyNineth/batchren/internal/pathutil"
	"github.com/SymphonyNineth/batchren/internal/rename"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
	"github.com/SymphonyNineth/batchren/internal/ui/confirmation"
	"github.com/SymphonyNineth/batchren/internal/ui/flash"
	"github.com/SymphonyNineth/batchren/internal/ui/form"
	"github.com/SymphonyNineth/batchren/internal/ui/fuzzy_files"
	"github.com/SymphonyNineth/batchren/internal/ui/layout"
	"github.com/SymphonyNineth/batchren/internal/ui/preview"
	"github.com/SymphonyNineth/batchren/internal/ui/status"
)

const (
	opScan   = "scan"
	opApply  = "apply"
	opDelete = "delete"

	statusHeight        = 1
	splitStep           = 5
	defaultPreviewShare = 65
	eventBuffer         = 64
)

type keymap struct {
	quit          key.Binding
	cancel        key.Binding
	apply         key.Binding
	filter        key.Binding
	rescan        key.Binding
	del           key.Binding
	dismiss       key.Binding
	growPreview   key.Binding
	shrinkPreview key.Binding
	previewNav    key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		cancel:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		apply:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		filter:        key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filter")),
		rescan:        key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "rescan")),
		del:           key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		dismiss:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "dismiss")),
		growPreview:   key.NewBinding(key.WithKeys("ctrl+down")),
		shrinkPreview: key.NewBinding(key.WithKeys("ctrl+up")),
		previewNav:    key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown")),
	}
}

type (
	scanEventMsg struct {
		event fsops.ListEvent
		ok    bool
	}
	scanDoneMsg struct {
		files []string
		err   error
	}
	applyEventMsg struct {
		event fsops.RenameEvent
		ok    bool
	}
	applyDoneMsg struct {
		results []fsops.Result
	}
	applyConfirmedMsg struct{}
	deleteConfirmedMsg struct {
		paths []string
	}
	deleteDoneMsg struct {
		result fsops.DeleteResult
	}
)

type Model struct {
	target   string
	session  *fsops.Session
	registry *fsops.Registry

	keymap  keymap
	form    *form.Model
	preview *preview.Model
	status  *status.Model
	flash   *flash.Model
	confirm *confirmation.Model
	fuzzy   *fuzzy_files.Model
	split   *layout.Split

	options rename.Options
	plan    *rename.Plan
	blocked error

	scanEvents  chan fsops.ListEvent
	scanDone    chan scanDoneMsg
	applyEvents chan fsops.RenameEvent
	applyDone   chan applyDoneMsg
	deleteDone  chan deleteDoneMsg

	width         int
	height        int
	formHeight    int
	previewHeight int
}

func NewUI(target string) *Model {
	options := config.Current.Rename.Options()
	m := &Model{
		target:   target,
		session:  fsops.NewSession(),
		registry: fsops.NewRegistry(),
		keymap:   defaultKeymap(),
		form:     form.New(options),
		preview:  preview.New(),
		status:   status.New(),
		flash:    flash.New(),
		split:    layout.NewSplit(defaultPreviewShare),
		options:  options,
	}
	m.status.SetHelp([]key.Binding{m.keymap.apply, m.keymap.filter, m.keymap.rescan, m.keymap.del, m.keymap.quit})
	m.recompute()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.startScan())
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case form.OptionsChangedMsg:
		m.options = msg.Options
		m.recompute()
		return nil
	case form.ApplyRequestedMsg:
		return m.requestApply()
	case applyConfirmedMsg:
		m.confirm = nil
		return m.startApply()
	case deleteConfirmedMsg:
		m.confirm = nil
		return m.startDelete(msg.paths)
	case deleteDoneMsg:
		return m.finishDelete(msg)
	case confirmation.CloseMsg:
		m.confirm = nil
		return nil
	case fuzzy_files.FilteredMsg:
		m.fuzzy = nil
		m.session.SetFiles(msg.Paths)
		m.recompute()
		return nil
	case fuzzy_files.CancelledMsg:
		m.fuzzy = nil
		return nil
	case scanEventMsg:
		if !msg.ok {
			return waitScanDone(m.scanDone)
		}
		if msg.event.Phase == fsops.Progress {
			m.status.SetOperation(fmt.Sprintf("scanning · %d files", msg.event.FilesFound))
		}
		return waitScanEvent(m.scanEvents)
	case scanDoneMsg:
		return m.finishScan(msg)
	case applyEventMsg:
		if !msg.ok {
			return waitApplyDone(m.applyDone)
		}
		if msg.event.Phase == fsops.Progress {
			m.status.SetOperation("renaming " + pathutil.FileName(msg.event.CurrentPath))
			return tea.Batch(
				m.status.SetProgress(msg.event.Current, msg.event.Total),
				waitApplyEvent(m.applyEvents),
			)
		}
		return waitApplyEvent(m.applyEvents)
	case applyDoneMsg:
		return m.finishApply(msg)
	}

	// Ticks, cursor blinks and flash expiry timers.
	var cmds []tea.Cmd
	cmds = append(cmds, m.status.Update(msg))
	before := m.flash.LiveMessagesCount()
	cmds = append(cmds, m.flash.Update(msg))
	if m.flash.LiveMessagesCount() != before {
		m.layout()
	}
	cmds = append(cmds, m.form.Update(msg))
	if m.fuzzy != nil {
		cmds = append(cmds, m.fuzzy.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.quit) {
		return tea.Quit
	}
	if m.confirm != nil {
		return m.confirm.Update(msg)
	}
	if m.fuzzy != nil {
		return m.fuzzy.Update(msg)
	}
	switch {
	case key.Matches(msg, m.keymap.cancel):
		return m.handleCancel()
	case key.Matches(msg, m.keymap.filter):
		if m.session.Len() == 0 {
			return nil
		}
		m.fuzzy = fuzzy_files.New(m.session.Files())
		m.fuzzy.SetWidth(m.width)
		return m.fuzzy.Init()
	case key.Matches(msg, m.keymap.rescan):
		if m.status.Running() {
			return nil
		}
		return m.startScan()
	case key.Matches(msg, m.keymap.del):
		return m.requestDelete()
	case key.Matches(msg, m.keymap.dismiss):
		m.flash.DeleteOldest()
		m.layout()
		return nil
	case key.Matches(msg, m.keymap.growPreview):
		m.split.Expand(splitStep)
		m.layout()
		return nil
	case key.Matches(msg, m.keymap.shrinkPreview):
		m.split.Shrink(splitStep)
		m.layout()
		return nil
	case key.Matches(msg, m.keymap.previewNav):
		return m.preview.Update(msg)
	}
	return m.form.Update(msg)
}

// handleCancel cancels the most disruptive thing first: a running operation,
// then the oldest flash message. With nothing to cancel, esc quits.
func (m *Model) handleCancel() tea.Cmd {
	switch {
	case m.registry.Active(opApply):
		m.registry.Cancel(opApply)
	case m.registry.Active(opDelete):
		m.registry.Cancel(opDelete)
	case m.registry.Active(opScan):
		m.registry.Cancel(opScan)
	case m.flash.Any():
		m.flash.DeleteOldest()
		m.layout()
	default:
		return tea.Quit
	}
	return nil
}

// recompute rebuilds the plan from the session under the current options. A
// pattern error keeps the previous valid plan on screen and only updates the
// inline error and the blocking reason.
func (m *Model) recompute() {
	cfg := rename.Compile(m.options)
	plan := rename.Build(m.session.Files(), cfg)
	if plan.PatternErr != nil {
		m.blocked = plan.PatternErr
		m.form.SetPatternError(plan.PatternErr)
		m.status.SetBlocking(plan.PatternErr)
		return
	}
	m.plan = plan
	m.blocked = plan.CanApply()
	m.form.SetPatternError(nil)
	m.preview.SetPattern(cfg.Pattern())
	m.preview.SetPlan(plan)
	m.status.SetPlan(plan)
	m.status.SetBlocking(m.blocked)
}

func (m *Model) startScan() tea.Cmd {
	events := make(chan fsops.ListEvent, eventBuffer)
	done := make(chan scanDoneMsg, 1)
	ctx, release := m.registry.Begin(context.Background(), opScan)
	go func() {
		defer release()
		files, err := fsops.ListFilesStream(ctx, m.target, events)
		done <- scanDoneMsg{files: files, err: err}
	}()
	m.scanEvents = events
	m.scanDone = done
	return tea.Batch(m.status.StartOperation("scanning"), waitScanEvent(events))
}

func (m *Model) finishScan(msg scanDoneMsg) tea.Cmd {
	m.status.FinishOperation()
	if msg.err != nil {
		var cmd tea.Cmd
		if errors.Is(msg.err, context.Canceled) {
			cmd = m.flash.Add("scan cancelled", nil)
		} else {
			cmd = m.flash.Add("scan failed", msg.err)
		}
		m.layout()
		return cmd
	}
	m.session.SetFiles(msg.files)
	m.recompute()
	return nil
}

func (m *Model) requestApply() tea.Cmd {
	if m.status.Running() {
		return nil
	}
	if m.blocked != nil {
		cmd := m.flash.Add("cannot apply", m.blocked)
		m.layout()
		return cmd
	}
	if !config.Current.UI.ConfirmApply {
		return m.startApply()
	}
	m.confirm = confirmation.New(
		[]string{fmt.Sprintf("Rename %d of %d files?", m.plan.ChangedCount(), len(m.plan.Items))},
		confirmation.WithStylePrefix("apply"),
		confirmation.WithOption("Rename", common.NewCmd(applyConfirmedMsg{}), key.NewBinding(key.WithKeys("y"))),
		confirmation.WithOption("Cancel", confirmation.Close, key.NewBinding(key.WithKeys("n", "esc"))),
	)
	m.confirm.SetSize(m.width, m.height)
	return m.confirm.Init()
}

func (m *Model) startApply() tea.Cmd {
	pairs := m.plan.Pairs()
	if len(pairs) == 0 {
		return nil
	}
	events := make(chan fsops.RenameEvent, eventBuffer)
	done := make(chan applyDoneMsg, 1)
	ctx, release := m.registry.Begin(context.Background(), opApply)
	go func() {
		defer release()
		results := fsops.BatchRenameStream(ctx, pairs, events)
		done <- applyDoneMsg{results: results}
	}()
	m.applyEvents = events
	m.applyDone = done
	return tea.Batch(m.status.StartOperation("renaming"), waitApplyEvent(events))
}

func (m *Model) finishApply(msg applyDoneMsg) tea.Cmd {
	m.status.FinishOperation()
	m.session.Rename(msg.results)

	failures := make(map[string]error, len(msg.results))
	successful := 0
	var firstErr error
	for _, r := range msg.results {
		if r.Err == nil {
			successful++
			continue
		}
		failures[r.OldPath] = r.Err
		if firstErr == nil {
			firstErr = r.Err
		}
	}

	m.recompute()

	var cmd tea.Cmd
	switch {
	case len(failures) == 0:
		cmd = m.flash.Add(fmt.Sprintf("renamed %d files", successful), nil)
	case errors.Is(firstErr, context.Canceled):
		cmd = m.flash.Add(fmt.Sprintf("cancelled after %d of %d files", successful, len(msg.results)), nil)
	default:
		m.flagFailures(failures)
		cmd = m.flash.Add(fmt.Sprintf("renamed %d of %d files", successful, len(msg.results)), firstErr)
	}
	m.layout()
	return cmd
}

// flagFailures marks the recomputed plan's items whose path failed to move.
// Failed files keep their old path in the session, so the fresh plan proposes
// the same rename again with the failure attached.
func (m *Model) flagFailures(failures map[string]error) {
	if m.plan == nil {
		return
	}
	for i := range m.plan.Items {
		if err, ok := failures[m.plan.Items[i].Path]; ok {
			m.plan.Items[i].Err = err
		}
	}
	m.preview.SetPlan(m.plan)
}

// requestDelete matches the current find text against the session and asks
// for confirmation before anything is removed. Deleting is always gated on a
// prompt, even when apply confirmation is switched off.
func (m *Model) requestDelete() tea.Cmd {
	if m.status.Running() {
		return nil
	}
	if m.options.FindText == "" {
		cmd := m.flash.Add("enter a find text to delete matches", nil)
		m.layout()
		return cmd
	}
	mode := fsops.MatchSubstring
	if m.options.RegexMode {
		mode = fsops.MatchRegex
	}
	matches, err := fsops.MatchNames(m.session.Files(), m.options.FindText, mode, m.options.CaseSensitive)
	if err != nil {
		cmd := m.flash.Add("cannot delete", err)
		m.layout()
		return cmd
	}
	if len(matches) == 0 {
		cmd := m.flash.Add(fmt.Sprintf("no files match %q", m.options.FindText), nil)
		m.layout()
		return cmd
	}
	paths := make([]string, len(matches))
	for i, match := range matches {
		paths[i] = match.Path
	}
	m.confirm = confirmation.New(
		[]string{fmt.Sprintf("Delete %d of %d files?", len(paths), m.session.Len())},
		confirmation.WithStylePrefix("delete"),
		confirmation.WithOption("Delete", common.NewCmd(deleteConfirmedMsg{paths: paths}), key.NewBinding(key.WithKeys("y"))),
		confirmation.WithOption("Cancel", confirmation.Close, key.NewBinding(key.WithKeys("n", "esc"))),
	)
	m.confirm.SetSize(m.width, m.height)
	return m.confirm.Init()
}

func (m *Model) startDelete(paths []string) tea.Cmd {
	done := make(chan deleteDoneMsg, 1)
	ctx, release := m.registry.Begin(context.Background(), opDelete)
	go func() {
		defer release()
		done <- deleteDoneMsg{result: fsops.DeleteFiles(ctx, paths, m.target)}
	}()
	m.deleteDone = done
	return tea.Batch(m.status.StartOperation("deleting"), waitDeleteDone(done))
}

func (m *Model) finishDelete(msg deleteDoneMsg) tea.Cmd {
	m.status.FinishOperation()
	m.session.Remove(msg.result.Deleted)
	m.recompute()

	deleted := len(msg.result.Deleted)
	total := deleted + len(msg.result.Failed)
	var cmd tea.Cmd
	switch {
	case len(msg.result.Failed) == 0:
		cmd = m.flash.Add(fmt.Sprintf("deleted %d files", deleted), nil)
	case errors.Is(msg.result.Failed[0].Err, context.Canceled):
		cmd = m.flash.Add(fmt.Sprintf("cancelled after %d of %d files", deleted, total), nil)
	default:
		cmd = m.flash.Add(fmt.Sprintf("deleted %d of %d files", deleted, total), msg.result.Failed[0].Err)
	}
	m.layout()
	return cmd
}

func waitScanEvent(events <-chan fsops.ListEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		return scanEventMsg{event: event, ok: ok}
	}
}

func waitScanDone(done <-chan scanDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

func waitApplyEvent(events <-chan fsops.RenameEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		return applyEventMsg{event: event, ok: ok}
	}
}

func waitApplyDone(done <-chan applyDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

func waitDeleteDone(done <-chan deleteDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

// layout divides the vertical budget: form and preview share the space above
// the flash stack and the status line.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	flashHeight := 0
	if m.flash.Any() {
		flashHeight = lipgloss.Height(m.flash.View())
	}
	content := m.height - statusHeight - flashHeight
	if content < 2 {
		content = 2
	}
	m.formHeight, m.previewHeight = m.split.Apply(content)
	m.form.SetWidth(m.width)
	m.preview.SetSize(m.width, m.previewHeight)
	m.status.SetWidth(m.width)
	m.flash.SetWidth(m.width)
	if m.confirm != nil {
		m.confirm.SetSize(m.width, m.height)
	}
	if m.fuzzy != nil {
		m.fuzzy.SetWidth(m.width)
	}
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirm != nil {
		return m.confirm.View()
	}
	if m.fuzzy != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.fuzzy.View())
	}
	sections := []string{
		pane(m.form.View(), m.width, m.formHeight),
		pane(m.preview.View(), m.width, m.previewHeight),
	}
	if m.flash.Any() {
		sections = append(sections, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.flash.View()))
	}
	sections = append(sections, m.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// pane pins content into an exact box so the column heights stay stable.
func pane(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
}

var _ tea.Model = (*wrapper)(nil)

type wrapper struct {
	ui *Model
}

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return w, w.ui.Update(msg)
}

func (w *wrapper) View() string {
	return w.ui.View()
}

// New wraps the root model for tea.NewProgram.
func New(target string) tea.Model {
	return &wrapper{ui: NewUI(target)}
}
