package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/tabmover/internal/domain/entity"
)

const historyTableWidth = 96

// HistoryRenderer renders the placement journal.
type HistoryRenderer struct {
	theme *Theme
}

// NewHistoryRenderer creates a new history renderer with the given theme.
func NewHistoryRenderer(theme *Theme) *HistoryRenderer {
	return &HistoryRenderer{theme: theme}
}

// Render renders a summary line followed by the journal table.
func (r *HistoryRenderer) Render(placements []*entity.Placement, counts map[entity.PlacementOutcome]int) string {
	if len(placements) == 0 {
		return "\n  " + r.theme.Subtle.Render("No placements recorded yet. Run 'tabmover serve' with the extension connected.") + "\n"
	}

	summary := strings.Join([]string{
		r.theme.Badge.Render(fmt.Sprintf("%d moved", counts[entity.PlacementMoved])),
		r.theme.BadgeMuted.Render(fmt.Sprintf("%d skipped", counts[entity.PlacementSkipped])),
		lipgloss.NewStyle().Foreground(r.theme.Background).Background(r.theme.Error).Padding(0, 1).
			Render(fmt.Sprintf("%d failed", counts[entity.PlacementFailed])),
	}, " ")

	rows := make([]table.Row, 0, len(placements))
	for _, p := range placements {
		rows = append(rows, PlacementRow(p))
	}
	t := NewStyledTable(r.theme, PlacementTableColumns(), rows, historyTableWidth, len(rows)+2)

	return fmt.Sprintf("\n  %s\n\n%s\n", summary, t.View())
}
