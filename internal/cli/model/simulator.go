// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/cli/styles"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/host/memory"
	"github.com/bnema/tabmover/internal/logging"
)

// RefreshMsg asks the simulator to re-read the host.
type RefreshMsg struct{}

// PlacedMsg reports a finished placement decision.
type PlacedMsg struct {
	Tab    entity.Tab
	Output *usecase.PlaceNewTabOutput
}

// SimulatorModel is the Bubble Tea model for the interactive tab strip
// simulator. It drives a memory.Host the way a user drives a browser.
type SimulatorModel struct {
	help help.Model
	keys simulatorKeyMap

	windows   []entity.WindowID
	tabs      map[entity.WindowID][]entity.Tab
	windowIdx int
	selected  entity.TabID
	moved     entity.TabID
	status    string
	width     int
	opened    int

	ctx   context.Context
	host  *memory.Host
	theme *styles.Theme
}

type simulatorKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	NewTab    key.Binding
	OpenAfter key.Binding
	Pin       key.Binding
	Close     key.Binding
	Window    key.Binding
	NewWindow key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k simulatorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NewTab, k.OpenAfter, k.Pin, k.Close, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k simulatorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Window},
		{k.NewTab, k.OpenAfter, k.NewWindow},
		{k.Pin, k.Close},
		{k.Help, k.Quit},
	}
}

func defaultSimulatorKeyMap() simulatorKeyMap {
	return simulatorKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		NewTab: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new tab at end"),
		),
		OpenAfter: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open after selected"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close tab"),
		),
		Window: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next window"),
		),
		NewWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "new window"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewSimulatorModel creates a simulator over host.
func NewSimulatorModel(ctx context.Context, theme *styles.Theme, host *memory.Host) SimulatorModel {
	m := SimulatorModel{
		help:  help.New(),
		keys:  defaultSimulatorKeyMap(),
		tabs:  make(map[entity.WindowID][]entity.Tab),
		width: 80,
		ctx:   ctx,
		host:  host,
		theme: theme,
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m SimulatorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SimulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case RefreshMsg:
		m.reload()
		return m, nil

	case PlacedMsg:
		m.status = describePlacement(msg)
		if msg.Output != nil && msg.Output.Moved {
			m.moved = msg.Tab.ID
		}
		m.reload()
		return m, nil
	}

	return m, nil
}

func (m SimulatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.step(-1)

	case key.Matches(msg, m.keys.Right):
		m.step(1)

	case key.Matches(msg, m.keys.Window):
		if len(m.windows) > 0 {
			m.windowIdx = (m.windowIdx + 1) % len(m.windows)
			m.selectFallback()
		}

	case key.Matches(msg, m.keys.NewWindow):
		id := m.host.OpenWindow()
		m.reload()
		m.windowIdx = indexOf(m.windows, id)
		m.selectFallback()
		m.status = fmt.Sprintf("opened window %d", id)

	case key.Matches(msg, m.keys.NewTab):
		m.openTab(-1)

	case key.Matches(msg, m.keys.OpenAfter):
		index := -1
		if tab, ok := m.selectedTab(); ok {
			index = tab.Index + 1
		}
		m.openTab(index)

	case key.Matches(msg, m.keys.Pin):
		if tab, ok := m.selectedTab(); ok {
			m.setErr(m.host.SetPinned(tab.ID, !tab.Pinned))
			m.reload()
		}

	case key.Matches(msg, m.keys.Close):
		if tab, ok := m.selectedTab(); ok {
			m.setErr(m.host.CloseTab(tab.ID))
			m.reload()
		}
	}

	return m, nil
}

func (m *SimulatorModel) openTab(index int) {
	win, ok := m.currentWindow()
	if !ok {
		m.status = "no window open"
		return
	}
	m.opened++
	tab, err := m.host.CreateTab(win, memory.CreateTabOptions{
		Title: fmt.Sprintf("New %d", m.opened),
		Index: index,
	})
	if err != nil {
		m.setErr(err)
		return
	}
	logging.FromContext(m.ctx).Debug().Int("tab_id", int(tab.ID)).Int("index", tab.Index).Msg("simulated tab created")
	m.selected = tab.ID
	m.status = fmt.Sprintf("opened tab %d at index %d", tab.ID, tab.Index)
	m.reload()
}

func (m *SimulatorModel) setErr(err error) {
	if err != nil {
		m.status = "error: " + err.Error()
	}
}

func (m *SimulatorModel) reload() {
	m.windows = m.host.Windows()
	for _, id := range m.windows {
		m.tabs[id] = m.host.Tabs(id)
	}
	if m.windowIdx >= len(m.windows) {
		m.windowIdx = 0
	}
	m.selectFallback()
}

// selectFallback keeps the selection inside the current window.
func (m *SimulatorModel) selectFallback() {
	win, ok := m.currentWindow()
	if !ok {
		m.selected = 0
		return
	}
	tabs := m.tabs[win]
	for _, tab := range tabs {
		if tab.ID == m.selected {
			return
		}
	}
	m.selected = 0
	if len(tabs) > 0 {
		m.selected = tabs[len(tabs)-1].ID
	}
}

func (m *SimulatorModel) step(delta int) {
	win, ok := m.currentWindow()
	if !ok {
		return
	}
	tabs := m.tabs[win]
	if len(tabs) == 0 {
		return
	}
	cur := 0
	for i, tab := range tabs {
		if tab.ID == m.selected {
			cur = i
		}
	}
	cur = (cur + delta + len(tabs)) % len(tabs)
	m.selected = tabs[cur].ID
}

func (m SimulatorModel) currentWindow() (entity.WindowID, bool) {
	if len(m.windows) == 0 {
		return 0, false
	}
	return m.windows[m.windowIdx], true
}

func (m SimulatorModel) selectedTab() (entity.Tab, bool) {
	win, ok := m.currentWindow()
	if !ok {
		return entity.Tab{}, false
	}
	for _, tab := range m.tabs[win] {
		if tab.ID == m.selected {
			return tab, true
		}
	}
	return entity.Tab{}, false
}

// View implements tea.Model.
func (m SimulatorModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.theme.Title.Render("tabmover simulator"))
	sb.WriteString("  ")
	sb.WriteString(m.theme.Subtle.Render("new tabs are moved right after the pinned ones"))
	sb.WriteString("\n\n")

	for i, win := range m.windows {
		strip := styles.NewTabStrip(m.theme, win, m.tabs[win])
		strip.Moved = m.moved
		if i == m.windowIdx {
			strip.Selected = m.selected
		}
		sb.WriteString(strip.View(m.width))
		sb.WriteString("\n\n")
	}

	if m.status != "" {
		sb.WriteString(m.theme.Normal.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.NewStyle().MarginTop(1).Render(m.help.View(m.keys)))
	return sb.String()
}

func describePlacement(msg PlacedMsg) string {
	out := msg.Output
	switch {
	case out == nil:
		return fmt.Sprintf("tab %d: no decision", msg.Tab.ID)
	case out.Skipped:
		return fmt.Sprintf("tab %d opened at the front, left in place", msg.Tab.ID)
	case out.MoveErr != nil:
		return fmt.Sprintf("tab %d: move failed: %v", msg.Tab.ID, out.MoveErr)
	default:
		return fmt.Sprintf("tab %d moved from %d to %d", msg.Tab.ID, msg.Tab.Index, out.TargetIndex)
	}
}

func indexOf(ids []entity.WindowID, id entity.WindowID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}
