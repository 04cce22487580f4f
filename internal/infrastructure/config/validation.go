package config

import (
	"fmt"
	"net"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}

	if _, _, err := net.SplitHostPort(config.Bridge.ListenAddr); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("bridge.listen_addr must be host:port (got: %s)", config.Bridge.ListenAddr))
	}
	if !strings.HasPrefix(config.Bridge.Path, "/") {
		validationErrors = append(validationErrors, "bridge.path must start with /")
	}
	if config.Bridge.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "bridge.write_timeout must be positive")
	}
	if config.Bridge.PingInterval < 0 {
		validationErrors = append(validationErrors, "bridge.ping_interval must be non-negative")
	}

	if config.Simulator.Windows < 1 {
		validationErrors = append(validationErrors, "simulator.windows must be at least 1")
	}
	if config.Simulator.PinnedTabs < 0 || config.Simulator.UnpinnedTabs < 0 {
		validationErrors = append(validationErrors, "simulator tab counts must be non-negative")
	}

	if config.Database.KeepEntries < 0 {
		validationErrors = append(validationErrors, "database.keep_entries must be non-negative")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%s", strings.Join(validationErrors, "; "))
	}
	return nil
}

// normalizeConfig folds case and fills values left empty in the file.
func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "warning" {
		config.Logging.Level = "warn"
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.LogDir == "" {
		config.Logging.LogDir = getDefaultLogDir()
	}
	if config.Database.Path == "" {
		config.Database.Path = getDefaultDatabasePath()
	}
	if config.Bridge.Path == "" {
		config.Bridge.Path = defaultBridgePath
	}
}
