package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Engine.TickIntervalSec)
	assert.Equal(t, 60, cfg.Engine.GraceWindowSec)
	assert.True(t, cfg.Alert.Notify)
	assert.True(t, cfg.Alert.Sound)
	assert.Equal(t, "glass", cfg.Display.WidgetTheme)
}

func TestLoadConfigReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
db_path: /tmp/test.db
engine:
  tick_interval_sec: 5
  grace_window_sec: 120
alert:
  notify: false
  default_sound: /usr/share/sounds/chime.ogg
display:
  widget_theme: cyber
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.Engine.TickIntervalSec)
	assert.Equal(t, 120, cfg.Engine.GraceWindowSec)
	assert.False(t, cfg.Alert.Notify)
	assert.Equal(t, "/usr/share/sounds/chime.ogg", cfg.Alert.DefaultSound)
	assert.Equal(t, "cyber", cfg.Display.WidgetTheme)
}

func TestLoadConfigClampsBadCadence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
engine:
  tick_interval_sec: -3
  grace_window_sec: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Engine.TickIntervalSec)
	assert.Equal(t, 60, cfg.Engine.GraceWindowSec)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := defaultAppConfig()
	cfg.Display.WidgetTheme = "sakura"
	cfg.Engine.GraceWindowSec = 90

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sakura", loaded.Display.WidgetTheme)
	assert.Equal(t, 90, loaded.Engine.GraceWindowSec)
}
