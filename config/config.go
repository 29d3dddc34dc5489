package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"gomoku-local/engine"
	"gomoku-local/search"
	"gomoku-local/types"
)

var (
	cfgFile = "gomoku-local/config.json"
	logFile = "gomoku-local/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
	WinColorBG        int `json:"win_bg"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black"`
	WhiteStone  rune `json:"white"`
	BoardSquare rune `json:"board"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	UseGridLines             bool          `json:"use_grid_lines"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// GameDefaults pre-fill the setup screen and the -play quick start.
type GameDefaults struct {
	Mode        string `json:"mode" env:"GOMOKU_MODE"` // "ai" or "human"
	PlayerName  string `json:"player_name" env:"GOMOKU_PLAYER_NAME"`
	PlayerColor string `json:"player_color" env:"GOMOKU_PLAYER_COLOR"` // "black" or "white"
	SearchDepth int    `json:"search_depth" env:"GOMOKU_DEPTH"`
}

// LogConfig controls the debug log. The terminal belongs to the UI, so
// logs always go to a file.
type LogConfig struct {
	Level string `json:"level" env:"GOMOKU_LOG_LEVEL"`
	File  string `json:"file" env:"GOMOKU_LOG_FILE"`
}

type Config struct {
	Theme Theme        `json:"theme"`
	Game  GameDefaults `json:"game"`
	Log   LogConfig    `json:"log"`
}

// InitConfig starts from DefaultConfig, overlays the user's config file when
// one exists and then the GOMOKU_* environment variables.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		err = cleanenv.ReadConfig(absPath, &config)
	} else {
		err = cleanenv.ReadEnv(&config)
	}
	if err != nil {
		return nil, &InvalidConfig{err.Error()}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Game.SearchDepth < 1 || c.Game.SearchDepth > search.MaxDepth {
		return &InvalidConfig{fmt.Sprintf("search depth must be between 1 and %d", search.MaxDepth)}
	}
	switch c.Game.Mode {
	case ModeAI, ModeHuman:
	default:
		return &InvalidConfig{fmt.Sprintf("unknown game mode %q", c.Game.Mode)}
	}
	switch strings.ToLower(c.Game.PlayerColor) {
	case "black", "white":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown player color %q", c.Game.PlayerColor)}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// LogLevel returns the configured level. Validate has already checked it.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// LogPath returns the debug log location, creating its directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(logFile)
}

// GameConfig turns the saved defaults into a game configuration.
// Validate has already checked the fields.
func (c *Config) GameConfig() engine.GameConfig {
	gc := engine.DefaultConfig()
	if c.Game.Mode == ModeHuman {
		gc.Mode = engine.ModeVsHuman
		gc.OpponentName = ""
	}
	gc.PlayerName = c.Game.PlayerName
	if color, err := types.ParseColor(c.Game.PlayerColor); err == nil {
		gc.PlayerColor = color
	}
	gc.SearchDepth = c.Game.SearchDepth
	return gc
}

// SetGameDefaults stores gc as the defaults for the next game.
func (c *Config) SetGameDefaults(gc engine.GameConfig) {
	c.Game.Mode = ModeAI
	if gc.Mode == engine.ModeVsHuman {
		c.Game.Mode = ModeHuman
	}
	c.Game.PlayerName = gc.PlayerName
	c.Game.PlayerColor = strings.ToLower(gc.PlayerColor.Name())
	c.Game.SearchDepth = gc.SearchDepth
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
