package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) (configDir string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	return filepath.Join(root, "config", appName)
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, dirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), filePerm))
}

func TestManager_LoadCreatesDefaults(t *testing.T) {
	dir := isolateXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, SchemaFileName))

	cfg := mgr.Get()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:7373", cfg.Bridge.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.Bridge.WriteTimeout)
	assert.Equal(t, 2, cfg.Simulator.PinnedTabs)
	assert.Equal(t, 1000, cfg.Database.KeepEntries)
	assert.Equal(t, filepath.Join(filepath.Dir(filepath.Dir(dir)), "data", appName, "tabmover.db"), cfg.Database.Path)
	assert.NotEmpty(t, cfg.Logging.LogDir)
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	dir := isolateXDG(t)
	writeConfig(t, dir, `
[logging]
level = "DEBUG"
format = "json"

[bridge]
listen_addr = "127.0.0.1:9000"
allowed_origins = ["moz-extension://abc"]
write_timeout = "2s"
`)
	t.Setenv("TABMOVER_SIMULATOR_PINNED_TABS", "4")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Bridge.ListenAddr)
	assert.Equal(t, []string{"moz-extension://abc"}, cfg.Bridge.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.Bridge.WriteTimeout)
	assert.Equal(t, "/ws", cfg.Bridge.Path)
	assert.Equal(t, 4, cfg.Simulator.PinnedTabs)
}

func TestManager_LogLevelEnvAlias(t *testing.T) {
	isolateXDG(t)
	t.Setenv("TABMOVER_LOG_LEVEL", "warn")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())
	assert.Equal(t, "warn", mgr.Get().Logging.Level)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	dir := isolateXDG(t)
	writeConfig(t, dir, `
[logging]
level = "loud"

[bridge]
listen_addr = "nope"
`)

	mgr, err := NewManager()
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "bridge.listen_addr")
}

func TestManager_GetReturnsCopy(t *testing.T) {
	dir := isolateXDG(t)
	writeConfig(t, dir, `
[bridge]
allowed_origins = ["moz-extension://abc"]
`)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Bridge.AllowedOrigins[0] = "mutated"
	cfg.Logging.Level = "trace"

	fresh := mgr.Get()
	assert.Equal(t, "moz-extension://abc", fresh.Bridge.AllowedOrigins[0])
	assert.Equal(t, "info", fresh.Logging.Level)
}

func TestManager_WatchReloadsOnChange(t *testing.T) {
	dir := isolateXDG(t)
	writeConfig(t, dir, "[logging]\nlevel = \"info\"\n")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	changed := make(chan *Config, 4)
	mgr.OnConfigChange(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch())

	writeConfig(t, dir, "[logging]\nlevel = \"debug\"\n")

	assert.Eventually(t, func() bool {
		return mgr.Get().Logging.Level == "debug"
	}, 3*time.Second, 20*time.Millisecond)
	select {
	case cfg := <-changed:
		assert.NotNil(t, cfg)
	case <-time.After(3 * time.Second):
		t.Fatal("change callback never fired")
	}
}

func TestValidateConfig_Defaults(t *testing.T) {
	assert.NoError(t, validateConfig(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.Bridge.Path = "ws"
	cfg.Simulator.Windows = 0
	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bridge.path")
	assert.Contains(t, err.Error(), "simulator.windows")
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "tabmover configuration", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "logging")
	assert.Contains(t, props, "bridge")
	assert.Contains(t, props, "simulator")
}
