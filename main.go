// gomoku-local is a terminal application to play five-in-a-row on a 9x9 board,
// against a friend or against the computer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gomoku-local/config"
	"gomoku-local/console"
	"gomoku-local/engine"
	"gomoku-local/engine/local"
	"gomoku-local/search"
	"gomoku-local/types"
	"gomoku-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagMode       = flag.String("mode", "", "Game mode (ai or human)")
	flagColor      = flag.String("color", "", "Player color (black or white)")
	flagName       = flag.String("name", "", "Player name")
	flagDepth      = flag.Int("depth", 0, fmt.Sprintf("Computer search depth (1-%d)", search.MaxDepth))
	flagPlain      = flag.Bool("plain", false, "Play with line-based prompts instead of the board UI")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("gomoku-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %s\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	gameCfg, err := applyFlags(cfg.GameConfig(), *flagMode, *flagColor, *flagName, *flagDepth)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	// Check if quick start requested
	quickStart := *flagQuickStart || *flagMode != "" || *flagColor != "" || *flagName != "" || *flagDepth > 0 || *flagFocus

	if *flagPlain {
		if err := runPlain(gameCfg, quickStart); err != nil {
			log.Error().Err(err).Msg("console game ended")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● gomoku ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint)

	// Create game layout with centered board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			if gameBoard.IsFinished() {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
				return nil
			}
			selTile := gameBoard.SelectedTile()
			if selTile == nil {
				return nil
			}
			gameBoard.PlayMove(*selTile)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'f':
				gameBoard.ToggleFocusMode()
				applyLayout()
			}
		}
		return event
	})

	// Board color screen
	themePicker := ui.NewThemePicker(cfg, func(err error) {
		if err != nil {
			log.Error().Err(err).Msg("saving theme")
			showError(fmt.Sprintf("Failed to save colors:\n%s", err.Error()))
			return
		}
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	themePicker.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			themePicker.Reset()
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			themePicker.NextTarget()
			return nil
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(
		gameCfg,
		startGame,
		func() {
			app.Stop()
		},
		saveDefaults,
		func() {
			rootPage.SwitchToPage("colors")
		},
	)
	setupUI.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlS {
			saveDefaults(setupUI.GameConfig())
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", themePicker.Flex(), true, false)

	if quickStart {
		startGame(gameCfg)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			applyLayout()
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()

	eng := local.NewEngine(gameCfg)
	if err := gameBoard.ConnectEngine(eng, eng.Config()); err != nil {
		showError(fmt.Sprintf("Failed to start game:\n%s", err.Error()))
		return
	}
	rootPage.SwitchToPage("gameview")
}

// applyLayout arranges the game view for the board's focus mode.
func applyLayout() {
	if gameBoard.IsFocusMode() {
		ui.BuildFocusLayout(gameFrame, gameBoard)
		return
	}
	ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
}

// saveDefaults writes the setup form's choices to the config file.
func saveDefaults(gameCfg engine.GameConfig) {
	cfg.SetGameDefaults(gameCfg)
	if err := cfg.Save(); err != nil {
		log.Error().Err(err).Msg("saving config")
		showError(fmt.Sprintf("Failed to save defaults:\n%s", err.Error()))
		return
	}
	log.Info().Str("mode", cfg.Game.Mode).Int("depth", cfg.Game.SearchDepth).Msg("defaults saved")
}

func showError(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// runPlain plays one game on stdin and stdout. Without quick start the
// players are chosen through prompts.
func runPlain(gameCfg engine.GameConfig, quickStart bool) error {
	session := console.NewSession(os.Stdin, os.Stdout, gameCfg.SearchDepth)
	var err error
	if quickStart {
		err = session.Play(gameCfg)
	} else {
		err = session.Run()
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		log.Info().Msg("input closed before the game ended")
		return nil
	}
	return err
}

// setupLogging sends the global logger to the debug log file. The terminal
// is taken by the game, so nothing is logged to it.
func setupLogging(c *config.Config) (io.Closer, error) {
	path, err := c.LogPath()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(c.LogLevel())
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	log.Info().Str("version", Version).Msg("starting")
	return f, nil
}

// applyFlags overrides the configured defaults with command-line values.
// Empty strings and a zero depth leave the default alone.
func applyFlags(gameCfg engine.GameConfig, mode, color, name string, depth int) (engine.GameConfig, error) {
	switch mode {
	case "":
	case config.ModeAI:
		gameCfg.Mode = engine.ModeVsComputer
		gameCfg.OpponentName = engine.ComputerName
	case config.ModeHuman:
		gameCfg.Mode = engine.ModeVsHuman
		gameCfg.OpponentName = ""
	default:
		return gameCfg, fmt.Errorf("unknown mode %q, want %q or %q", mode, config.ModeAI, config.ModeHuman)
	}

	if color != "" {
		c, err := types.ParseColor(color)
		if err != nil {
			return gameCfg, err
		}
		gameCfg.PlayerColor = c
	}

	if name != "" {
		gameCfg.PlayerName = name
	}

	if depth != 0 {
		if depth < 1 || depth > search.MaxDepth {
			return gameCfg, fmt.Errorf("depth must be between 1 and %d", search.MaxDepth)
		}
		gameCfg.SearchDepth = depth
	}
	return gameCfg, nil
}
