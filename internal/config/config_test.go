package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
app:
  frontend: terminal
game:
  start_fen: "1r5k/P7/8/8/8/8/8/K7 w - - 0 1"
theme:
  light: "#eeeed2"
spectator:
  enabled: true
  port: 9000
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, FrontendTerminal, cfg.App.Frontend)
	assert.Equal(t, "Schack", cfg.App.Title)
	assert.Equal(t, "1r5k/P7/8/8/8/8/8/K7 w - - 0 1", cfg.Game.StartFEN)
	assert.Equal(t, "#eeeed2", cfg.Theme.Light)
	assert.Empty(t, cfg.Theme.Dark)
	assert.True(t, cfg.Spectator.Enabled)
	assert.Equal(t, "localhost", cfg.Spectator.Host)
	assert.Equal(t, 9000, cfg.Spectator.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "spectator:\n  port: 9000\n")
	t.Setenv("SCHACK_SPECTATOR_PORT", "9100")
	t.Setenv("SCHACK_APP_TITLE", "Hot seat")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Spectator.Port)
	assert.Equal(t, "Hot seat", cfg.App.Title)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"terminal", func(c *Config) { c.App.Frontend = FrontendTerminal }, false},
		{"unknown frontend", func(c *Config) { c.App.Frontend = "web" }, true},
		{"bad fen", func(c *Config) { c.Game.StartFEN = "not a position" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad port", func(c *Config) { c.Spectator.Enabled = true; c.Spectator.Port = 70000 }, true},
		{"bad port ignored when disabled", func(c *Config) { c.Spectator.Port = 70000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
