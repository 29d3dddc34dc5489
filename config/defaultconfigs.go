package config

import "gomoku-local/search"

const (
	ModeAI    = "ai"
	ModeHuman = "human"
)

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		UseGridLines:             true,
		Colors: ConfigColors{
			BoardColor:        180,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         94,
			CursorColorBG:     4,
			LastPlayedColorBG: 2,
			WinColorBG:        1,
		},
		Symbols: ConfigSymbols{
			BlackStone:  '●',
			WhiteStone:  '●',
			BoardSquare: '┼',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			Mode:        ModeAI,
			PlayerName:  "Player",
			PlayerColor: "black",
			SearchDepth: search.DefaultDepth,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
