// Package config loads tabmover configuration with Viper.
package config

import "time"

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for tabmover.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging" jsonschema:"description=Log output settings"`
	Bridge    BridgeConfig    `mapstructure:"bridge" json:"bridge" jsonschema:"description=WebSocket bridge the browser extension connects to"`
	Simulator SimulatorConfig `mapstructure:"simulator" json:"simulator" jsonschema:"description=Initial tab strip for 'tabmover simulate'"`
	Database  DatabaseConfig  `mapstructure:"database" json:"database" jsonschema:"description=Placement journal written by 'tabmover serve'"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
	// LogDir receives file logs when the terminal is taken by the simulator.
	LogDir     string `mapstructure:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1,default=10"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" jsonschema:"minimum=0,default=3"`
}

// BridgeConfig holds the WebSocket bridge configuration.
type BridgeConfig struct {
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr" jsonschema:"default=127.0.0.1:7373"`
	Path       string `mapstructure:"path" json:"path" jsonschema:"default=/ws"`
	// AllowedOrigins lists accepted Origin headers; empty accepts any
	// moz-extension:// or chrome-extension:// origin.
	AllowedOrigins []string      `mapstructure:"allowed_origins" json:"allowed_origins,omitempty"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" json:"write_timeout" jsonschema:"type=string,default=5s"`
	PingInterval   time.Duration `mapstructure:"ping_interval" json:"ping_interval" jsonschema:"type=string,default=30s"`
}

// DatabaseConfig holds the placement journal settings.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/tabmover/tabmover.db.
	Path string `mapstructure:"path" json:"path,omitempty"`
	// KeepEntries bounds the journal; older rows are pruned on startup.
	KeepEntries int `mapstructure:"keep_entries" json:"keep_entries" jsonschema:"minimum=0,default=1000"`
}

// SimulatorConfig seeds the simulator's tab strip.
type SimulatorConfig struct {
	Windows      int `mapstructure:"windows" json:"windows" jsonschema:"minimum=1,default=1"`
	PinnedTabs   int `mapstructure:"pinned_tabs" json:"pinned_tabs" jsonschema:"minimum=0,default=2"`
	UnpinnedTabs int `mapstructure:"unpinned_tabs" json:"unpinned_tabs" jsonschema:"minimum=0,default=3"`
}
