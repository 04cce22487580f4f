package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmover/internal/cli/styles"
	"github.com/bnema/tabmover/internal/infrastructure/config"
)

var configSchemaStdout bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where the configuration lives, print the effective values, or regenerate its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file and TABMOVER_* environment variables are merged.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the config JSON schema",
	Long: `Write config.schema.json next to config.toml so editors can validate
and complete the file. Use --stdout to print it instead.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&configSchemaStdout, "stdout", false, "print the schema instead of writing it")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	path, err := config.GetConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(renderer.RenderPath(path))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)
	cfg := app.Config

	if app.Manager != nil {
		fmt.Println(renderer.RenderPath(app.Manager.GetConfigFile()))
	}

	fmt.Println(renderer.RenderSection("logging"))
	fmt.Println(renderer.RenderSetting("level", cfg.Logging.Level))
	fmt.Println(renderer.RenderSetting("format", cfg.Logging.Format))
	fmt.Println(renderer.RenderSetting("log_dir", cfg.Logging.LogDir))
	fmt.Println(renderer.RenderSetting("max_size_mb", cfg.Logging.MaxSizeMB))
	fmt.Println(renderer.RenderSetting("max_backups", cfg.Logging.MaxBackups))

	fmt.Println(renderer.RenderSection("bridge"))
	fmt.Println(renderer.RenderSetting("listen_addr", cfg.Bridge.ListenAddr))
	fmt.Println(renderer.RenderSetting("path", cfg.Bridge.Path))
	fmt.Println(renderer.RenderSetting("allowed_origins", "["+strings.Join(cfg.Bridge.AllowedOrigins, ", ")+"]"))
	fmt.Println(renderer.RenderSetting("write_timeout", cfg.Bridge.WriteTimeout))
	fmt.Println(renderer.RenderSetting("ping_interval", cfg.Bridge.PingInterval))

	fmt.Println(renderer.RenderSection("simulator"))
	fmt.Println(renderer.RenderSetting("windows", cfg.Simulator.Windows))
	fmt.Println(renderer.RenderSetting("pinned_tabs", cfg.Simulator.PinnedTabs))
	fmt.Println(renderer.RenderSetting("unpinned_tabs", cfg.Simulator.UnpinnedTabs))

	fmt.Println(renderer.RenderSection("database"))
	fmt.Println(renderer.RenderSetting("path", cfg.Database.Path))
	fmt.Println(renderer.RenderSetting("keep_entries", cfg.Database.KeepEntries))
	fmt.Println()
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if configSchemaStdout {
		data, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	if err := config.WriteSchemaFile(dir); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(renderer.RenderSchemaWritten(filepath.Join(dir, config.SchemaFileName)))
	return nil
}
