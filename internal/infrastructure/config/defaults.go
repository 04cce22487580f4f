package config

import (
	"path/filepath"
	"time"
)

// Default configuration constants
const (
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3

	defaultListenAddr   = "127.0.0.1:7373"
	defaultBridgePath   = "/ws"
	defaultWriteTimeout = 5 * time.Second
	defaultPingInterval = 30 * time.Second

	defaultSimWindows      = 1
	defaultSimPinnedTabs   = 2
	defaultSimUnpinnedTabs = 3

	defaultDBKeepEntries = 1000
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// getDefaultDatabasePath returns the default journal path, falls back to empty string on error
func getDefaultDatabasePath() string {
	dataDir, err := GetDataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dataDir, databaseFileName)
}

// DefaultConfig returns the default configuration values for tabmover.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			LogDir:     getDefaultLogDir(),
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
		Bridge: BridgeConfig{
			ListenAddr:     defaultListenAddr,
			Path:           defaultBridgePath,
			AllowedOrigins: []string{},
			WriteTimeout:   defaultWriteTimeout,
			PingInterval:   defaultPingInterval,
		},
		Simulator: SimulatorConfig{
			Windows:      defaultSimWindows,
			PinnedTabs:   defaultSimPinnedTabs,
			UnpinnedTabs: defaultSimUnpinnedTabs,
		},
		Database: DatabaseConfig{
			Path:        getDefaultDatabasePath(),
			KeepEntries: defaultDBKeepEntries,
		},
	}
}
