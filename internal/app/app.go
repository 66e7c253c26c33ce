// Package app implements lazylocker's interactive editor: a
// full-screen list of secrets with add, copy, and remove actions,
// backed by an exclusively-opened locker for the duration of the
// session. Run is the entry point the CLI's bare root command
// invokes.
package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/cbwinslow/lazylocker/pkg/analyzer"
	"github.com/cbwinslow/lazylocker/pkg/clipboard"
	"github.com/cbwinslow/lazylocker/pkg/config"
	"github.com/cbwinslow/lazylocker/pkg/coordinator"
	"github.com/cbwinslow/lazylocker/pkg/ui/markdown"
	"github.com/cbwinslow/lazylocker/pkg/ui/menu"
	"github.com/cbwinslow/lazylocker/pkg/ui/notifications"
	"github.com/cbwinslow/lazylocker/pkg/ui/styles"
)

// Mode represents the editor's current input mode.
type Mode int

const (
	// ModeList is the normal secret-browsing mode.
	ModeList Mode = iota
	// ModeAddName is prompting for a new secret's name.
	ModeAddName
	// ModeAddValue is prompting for a new secret's value.
	ModeAddValue
	// ModeConfirmRemove is confirming deletion of the selected secret.
	ModeConfirmRemove
	// ModeHelp is showing the locker status/help overlay.
	ModeHelp
)

// secretItem adapts a store secret to bubbles/list.Item.
type secretItem struct {
	name      string
	expired   bool
	usage     int
	remaining string
}

func (i secretItem) Title() string { return i.name }

func (i secretItem) Description() string {
	status := "permanent"
	if i.remaining != "" {
		status = i.remaining
	}
	if i.expired {
		status = "expired"
	}
	return fmt.Sprintf("%s · used %dx in history", status, i.usage)
}

func (i secretItem) FilterValue() string { return i.name }

// KeyMap defines the editor's key bindings.
type KeyMap struct {
	Add    key.Binding
	Copy   key.Binding
	Remove key.Binding
	Help   key.Binding
	Menu   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the editor's default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add")),
		Copy:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Remove: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "status")),
		Menu:   key.NewBinding(key.WithKeys("f10", "esc"), key.WithHelp("f10", "menu")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// Model is the editor's bubbletea model.
type Model struct {
	session     *coordinator.EditorSession
	binary      string
	analyzerCfg config.AnalyzerConfig

	keys      KeyMap
	styles    *styles.Styles
	list      list.Model
	input     textinput.Model
	menuBar   *menu.MenuBar
	notifier  *notifications.Manager
	clipboard *clipboard.Manager
	renderer  *markdown.Renderer

	mode        Mode
	pendingName string
	helpBody    string
	width       int
	height      int
	ready       bool
	quitting    bool
}

// NewModel builds the editor model over an already-opened session.
// binary is the path to re-exec for the agent spawned on exit.
// analyzerCfg controls whether and where the usage-count decoration
// reads shell history from, per config.toml's [analyzer] table.
func NewModel(session *coordinator.EditorSession, binary string, analyzerCfg config.AnalyzerConfig) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "lazylocker"
	l.SetShowHelp(false)

	input := textinput.New()
	input.CharLimit = 256

	menuBar := menu.NewMenuBar()
	for _, m := range menu.CreateDefaultMenus() {
		menuBar.AddMenu(m)
	}

	renderer, err := markdown.NewRenderer()
	if err != nil {
		renderer = nil
	}

	m := Model{
		session:     session,
		binary:      binary,
		analyzerCfg: analyzerCfg,
		keys:        DefaultKeyMap(),
		styles:      styles.DefaultStyles(),
		list:        l,
		input:       input,
		menuBar:     menuBar,
		notifier:    notifications.NewManager(),
		clipboard:   clipboard.NewManager(),
		renderer:    renderer,
		mode:        ModeList,
	}
	m.refreshList()
	return m
}

// Run opens dir exclusively as the interactive editor, runs the
// bubbletea program to completion, and hands the locker back to a
// freshly spawned agent on exit, per the coordinator's editor/agent
// handoff rules.
func Run(dir string) error {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	passphrase, err := readPassphrase()
	if err != nil {
		return err
	}

	session, err := coordinator.EnterEditor(dir, passphrase)
	if err != nil {
		return err
	}

	binary, err := os.Executable()
	if err != nil {
		binary = os.Args[0]
	}

	cfg, err := config.LoadFromDefaultPath()
	if err != nil {
		cfg = config.Default()
	}

	model := NewModel(session, binary, cfg.Analyzer)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("app: run editor: %w", err)
	}

	if err := coordinator.LeaveEditor(session, binary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to start background agent: %v\n", err)
	}
	return nil
}

// readPassphrase reads the passphrase from the terminal with echo
// disabled. Unlike internal/cli's resolvePassphrase it does not consult
// --passphrase or LAZY_LOCKER_PASSPHRASE; it always reads interactively.
func readPassphrase() (string, error) {
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (m *Model) refreshList() {
	secrets := m.session.Store.List()
	names := make([]string, 0, len(secrets))
	for _, s := range secrets {
		names = append(names, s.Name)
	}

	counts := make(analyzer.Counts, len(names))
	if m.analyzerCfg.Enabled {
		counts = analyzer.Count(m.analyzerCfg.HistoryPath, names)
	}

	now := time.Now()
	items := make([]list.Item, 0, len(secrets))
	for _, s := range secrets {
		remaining := ""
		if days, ok := s.DaysUntilExpiration(now); ok {
			remaining = fmt.Sprintf("%dd remaining", days)
		}
		items = append(items, secretItem{
			name:      s.Name,
			expired:   s.IsExpired(now),
			usage:     counts[s.Name],
			remaining: remaining,
		})
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.list.SetSize(msg.Width, msg.Height-4)
		m.menuBar.SetWidth(msg.Width)
		m.notifier.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.menuBar.Update(msg); handled {
		return m, cmd
	}

	switch m.mode {
	case ModeAddName, ModeAddValue:
		return m.handleAddKey(msg)
	case ModeConfirmRemove:
		return m.handleConfirmRemoveKey(msg)
	case ModeHelp:
		m.mode = ModeList
		return m, nil
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAddName
		m.input.SetValue("")
		m.input.Placeholder = "secret name"
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()

	case key.Matches(msg, m.keys.Remove):
		if m.selectedName() != "" {
			m.mode = ModeConfirmRemove
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp()
		m.mode = ModeHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// showHelp renders the locker status summary into helpBody for
// display while in ModeHelp. A nil renderer (glamour failed to
// initialize) falls back to a plain-text summary.
func (m *Model) showHelp() {
	secretCount := m.session.Store.Len()
	if m.renderer == nil {
		m.helpBody = fmt.Sprintf("Locker: %s\nSecrets: %d\nAgent: not running (editor has exclusive access)",
			m.session.Dir, secretCount)
		return
	}

	body, err := m.renderer.RenderLockerStatus(m.session.Dir, secretCount, false, "")
	if err != nil {
		m.helpBody = fmt.Sprintf("Locker: %s\nSecrets: %d", m.session.Dir, secretCount)
		return
	}
	m.helpBody = body
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.input.Blur()
		return m, nil

	case "enter":
		if m.mode == ModeAddName {
			name := m.input.Value()
			if name == "" {
				return m, nil
			}
			m.pendingName = name
			m.mode = ModeAddValue
			m.input.SetValue("")
			m.input.Placeholder = "value"
			m.input.EchoMode = textinput.EchoPassword
			return m, nil
		}

		value := m.input.Value()
		m.input.EchoMode = textinput.EchoNormal
		m.input.Blur()
		m.mode = ModeList
		if err := m.session.Store.Add(m.pendingName, value, 0, m.session.Key); err != nil {
			m.notifier.ShowError("Add failed", err.Error())
			return m, nil
		}
		m.notifier.ShowSuccess("Secret saved", m.pendingName)
		m.refreshList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmRemoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		name := m.selectedName()
		if err := m.session.Store.Remove(name, m.session.Key); err != nil {
			m.notifier.ShowError("Remove failed", err.Error())
		} else {
			m.notifier.ShowSuccess("Secret removed", name)
			m.refreshList()
		}
	}
	m.mode = ModeList
	return m, nil
}

func (m Model) selectedName() string {
	item, ok := m.list.SelectedItem().(secretItem)
	if !ok {
		return ""
	}
	return item.name
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	name := m.selectedName()
	if name == "" {
		return m, nil
	}
	value, err := m.session.Store.DecryptOne(name, m.session.Key)
	if err != nil {
		m.notifier.ShowError("Copy failed", err.Error())
		return m, nil
	}
	if err := m.clipboard.CopySecret(value, clipboard.DefaultClearAfter); err != nil {
		m.notifier.ShowWarning("Clipboard unavailable", name)
		return m, nil
	}
	m.notifier.ShowSuccess("Copied "+name, "clears in "+clipboard.DefaultClearAfter.String())
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.quitting {
		return ""
	}

	var body string
	switch m.mode {
	case ModeAddName, ModeAddValue:
		body = m.list.View() + "\n" + m.input.View()
	case ModeConfirmRemove:
		body = m.list.View() + "\n" + m.styles.FormatWarning("remove "+m.selectedName()+"? (y/n)")
	case ModeHelp:
		body = m.helpBody + "\n\npress any key to return"
	default:
		body = m.list.View()
	}

	menuView := m.menuBar.View()
	return menuView + "\n" + body + "\n" + m.notifier.View()
}
