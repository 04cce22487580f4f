package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tabmover/internal/app/placement"
	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/cli/model"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/config"
	"github.com/bnema/tabmover/internal/infrastructure/host/memory"
	"github.com/bnema/tabmover/internal/logging"
	"github.com/bnema/tabmover/internal/ui/mainloop"
)

// simulatorLogName is the file the simulator logs to under the log dir.
const simulatorLogName = "simulator.log"

var (
	simWindows  int
	simPinned   int
	simUnpinned int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Try tab placement on a simulated tab strip",
	Long: `Open an interactive tab strip in the terminal with the placement
listener attached. Tabs you open anywhere but the front are moved right
after the pinned tabs, exactly as 'tabmover serve' does in the browser.

Logs go to simulator.log in the log directory (see 'tabmover logs').

Keys:
  n      open a tab at the end
  o      open a tab after the selected one
  p      pin or unpin the selected tab
  x      close the selected tab
  ←/→    select a tab
  tab    next window, w opens one
  q      quit`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntVar(&simWindows, "windows", 0, "override simulator.windows")
	simulateCmd.Flags().IntVar(&simPinned, "pinned", -1, "override simulator.pinned_tabs")
	simulateCmd.Flags().IntVar(&simUnpinned, "unpinned", -1, "override simulator.unpinned_tabs")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	if simWindows > 0 {
		cfg.Simulator.Windows = simWindows
	}
	if simPinned >= 0 {
		cfg.Simulator.PinnedTabs = simPinned
	}
	if simUnpinned >= 0 {
		cfg.Simulator.UnpinnedTabs = simUnpinned
	}

	// The TUI owns the terminal, so logs go to a file.
	logDir := cfg.Logging.LogDir
	if logDir == "" {
		dir, err := config.GetLogDir()
		if err != nil {
			return fmt.Errorf("resolve log directory: %w", err)
		}
		logDir = dir
	}
	rotator, err := logging.NewLogRotator(logDir, simulatorLogName, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	if err != nil {
		return err
	}
	defer rotator.Close()

	app.SetLogger(logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: time.RFC3339,
		Output:     rotator,
	}))
	ctx := app.Ctx()

	host := memory.New()
	defer host.Close()
	if err := seedSimulator(host, cfg.Simulator); err != nil {
		return err
	}

	loop := mainloop.New(ctx)
	loop.Start()
	defer loop.Stop()

	program := tea.NewProgram(model.NewSimulatorModel(ctx, app.Theme, host), tea.WithAltScreen())

	refresh := mainloop.NewCoalescer(loop)
	defer refresh.Destroy()
	host.OnChange(func() {
		refresh.Post("refresh", func() { program.Send(model.RefreshMsg{}) })
	})

	listener := placement.NewListener(host, loop, usecase.NewPlaceNewTabUseCase(host, usecase.NewCountPinnedTabsUseCase(host)))
	listener.OnPlaced(func(tab entity.Tab, out *usecase.PlaceNewTabOutput) {
		program.Send(model.PlacedMsg{Tab: tab, Output: out})
	})
	if err := listener.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = listener.Stop() }()

	logging.FromContext(ctx).Info().
		Int("windows", cfg.Simulator.Windows).
		Int("pinned", cfg.Simulator.PinnedTabs).
		Int("unpinned", cfg.Simulator.UnpinnedTabs).
		Msg("simulator started")

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run simulator: %w", err)
	}
	return nil
}

// seedSimulator opens the configured windows and tabs before the listener
// subscribes, so the initial strip is left as is.
func seedSimulator(host *memory.Host, cfg config.SimulatorConfig) error {
	for w := 0; w < cfg.Windows; w++ {
		win := host.OpenWindow()
		for i := 0; i < cfg.PinnedTabs; i++ {
			if _, err := host.CreateTab(win, memory.CreateTabOptions{
				Title:  fmt.Sprintf("Pinned %d", i+1),
				Pinned: true,
				Index:  -1,
			}); err != nil {
				return err
			}
		}
		for i := 0; i < cfg.UnpinnedTabs; i++ {
			if _, err := host.CreateTab(win, memory.CreateTabOptions{
				Title: fmt.Sprintf("Tab %d", i+1),
				Index: -1,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
