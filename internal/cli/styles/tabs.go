package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabmover/internal/domain/entity"
)

const maxTabLabel = 14

// TabStrip renders one window's tabs as a horizontal bar.
type TabStrip struct {
	WindowID entity.WindowID
	Tabs     []entity.Tab
	// Selected is drawn with the accent background.
	Selected entity.TabID
	// Moved marks the tab the placement listener last moved.
	Moved entity.TabID
	theme *Theme
}

// NewTabStrip creates a tab strip for the given window.
func NewTabStrip(theme *Theme, windowID entity.WindowID, tabs []entity.Tab) TabStrip {
	return TabStrip{
		WindowID: windowID,
		Tabs:     tabs,
		theme:    theme,
	}
}

// View renders the strip with a window header.
func (s TabStrip) View(width int) string {
	header := s.theme.Subtitle.Render(fmt.Sprintf("%s window %d", IconWindow, s.WindowID))
	counts := s.theme.BadgeMuted.Render(fmt.Sprintf("%d pinned", s.pinned()))

	cells := make([]string, 0, len(s.Tabs))
	for _, tab := range s.Tabs {
		cells = append(cells, s.cell(tab))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, join(cells, " ")...)
	if len(cells) == 0 {
		row = s.theme.Subtle.Render("(no tabs)")
	}

	bar := s.theme.TabBar
	if width > 0 {
		bar = bar.Width(width)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, header, " ", counts),
		bar.Render(row),
	)
}

func (s TabStrip) cell(tab entity.Tab) string {
	label := truncate(tab.DisplayTitle(), maxTabLabel)
	style := s.theme.NormalTab
	switch {
	case tab.ID == s.Selected:
		style = s.theme.SelectedTab
	case tab.ID == s.Moved:
		style = s.theme.MovedTab
	case tab.Pinned:
		style = s.theme.PinnedTab
	}
	if tab.Pinned {
		label = IconPin + " " + label
	}
	return style.Render(fmt.Sprintf("%d:%s", tab.Index, label))
}

func (s TabStrip) pinned() int {
	n := 0
	for _, tab := range s.Tabs {
		if tab.Pinned {
			n++
		}
	}
	return n
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
