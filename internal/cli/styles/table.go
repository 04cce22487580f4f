package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabmover/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	// Nothing is selectable in a printed table.
	s.Selected = s.Cell.Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// PlacementTableColumns returns columns for the placement journal.
func PlacementTableColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 19},
		{Title: "Tab", Width: 6},
		{Title: "Window", Width: 6},
		{Title: "Move", Width: 9},
		{Title: "Outcome", Width: 8},
		{Title: "Detail", Width: 32},
	}
}

// PlacementRow converts a journal entry to a table row.
func PlacementRow(p *entity.Placement) table.Row {
	move := fmt.Sprintf("%d → %d", p.FromIndex, p.ToIndex)
	if p.Outcome == entity.PlacementSkipped {
		move = fmt.Sprintf("%d", p.FromIndex)
	}
	detail := p.URL
	if p.Error != "" {
		detail = p.Error
	}
	return table.Row{
		p.At.Local().Format("2006-01-02 15:04:05"),
		fmt.Sprintf("%d", p.TabID),
		fmt.Sprintf("%d", p.WindowID),
		move,
		string(p.Outcome),
		truncate(detail, 32),
	}
}
