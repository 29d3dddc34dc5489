package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomoku-local/engine"
	"gomoku-local/types"
)

// isolate points the XDG config and state directories at temporary dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	return home
}

func writeConfig(t *testing.T, home string, v interface{}) {
	t.Helper()
	path := filepath.Join(home, cfgFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestInitConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, *cfg)
	assert.Equal(t, 3, cfg.Game.SearchDepth)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
}

func TestInitConfigFile(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, map[string]interface{}{
		"game": map[string]interface{}{"search_depth": 2, "player_name": "Ada"},
	})

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.SearchDepth)
	assert.Equal(t, "Ada", cfg.Game.PlayerName)
	assert.Equal(t, ModeAI, cfg.Game.Mode, "fields missing from the file keep their defaults")
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestInitConfigEnvOverrides(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, map[string]interface{}{
		"game": map[string]interface{}{"search_depth": 2},
	})
	t.Setenv("GOMOKU_DEPTH", "1")
	t.Setenv("GOMOKU_MODE", "human")
	t.Setenv("GOMOKU_LOG_LEVEL", "debug")

	cfg, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Game.SearchDepth)
	assert.Equal(t, ModeHuman, cfg.Game.Mode)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
}

func TestInitConfigRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("GOMOKU_DEPTH", "9")

	_, err := InitConfig()
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "search depth")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"control character symbol", func(c *Config) { c.Theme.Symbols.BlackStone = '\x07' }, false},
		{"depth too low", func(c *Config) { c.Game.SearchDepth = 0 }, false},
		{"unknown mode", func(c *Config) { c.Game.Mode = "online" }, false},
		{"white player", func(c *Config) { c.Game.PlayerColor = "White" }, true},
		{"unknown color", func(c *Config) { c.Game.PlayerColor = "red" }, false},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.modify(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)

	c := DefaultConfig
	c.Game.PlayerName = "Grace"
	c.Theme.Colors.BoardColor = 222
	require.NoError(t, c.Save())

	loaded, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, c, *loaded)
}

func TestLogPath(t *testing.T) {
	isolate(t)

	c := DefaultConfig
	path, err := c.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "debug.log", filepath.Base(path))

	c.Log.File = "/tmp/gomoku.log"
	path, err = c.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gomoku.log", path)
}

func TestGameConfig(t *testing.T) {
	c := DefaultConfig
	gc := c.GameConfig()
	assert.Equal(t, engine.ModeVsComputer, gc.Mode)
	assert.Equal(t, types.Black, gc.PlayerColor)
	assert.Equal(t, "Player", gc.PlayerName)
	assert.Equal(t, engine.ComputerName, gc.OpponentName)
	assert.Equal(t, 3, gc.SearchDepth)

	c.Game = GameDefaults{Mode: ModeHuman, PlayerName: "Ada", PlayerColor: "White", SearchDepth: 2}
	gc = c.GameConfig()
	assert.Equal(t, engine.ModeVsHuman, gc.Mode)
	assert.Equal(t, types.White, gc.PlayerColor)
	assert.Empty(t, gc.OpponentName)
	assert.Equal(t, 2, gc.SearchDepth)
}

func TestSetGameDefaults(t *testing.T) {
	c := DefaultConfig
	c.SetGameDefaults(engine.GameConfig{
		Mode:        engine.ModeVsHuman,
		PlayerColor: types.White,
		PlayerName:  "Lin",
		SearchDepth: 4,
	})
	assert.Equal(t, GameDefaults{Mode: ModeHuman, PlayerName: "Lin", PlayerColor: "white", SearchDepth: 4}, c.Game)
	require.NoError(t, c.Validate())
}
