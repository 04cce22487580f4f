package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/cli/styles"
	"github.com/bnema/tabmover/internal/infrastructure/persistence/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tab placements",
	Long: `Show the placement journal written by 'tabmover serve': which tabs were
moved, which opened at the front and were left alone, and which moves the
browser rejected.

Examples:
  tabmover history           # Last 20 placements
  tabmover history -n 100    # Last 100 placements`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	db, err := sqlite.NewConnection(ctx, app.Config.Database.Path)
	if err != nil {
		return fmt.Errorf("open placement journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	out, err := usecase.NewListPlacementsUseCase(sqlite.NewPlacementRepository(db)).Execute(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("read placement journal: %w", err)
	}

	fmt.Println(styles.NewHistoryRenderer(app.Theme).Render(out.Placements, out.Counts))
	return nil
}
