package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gomoku-local/engine"
	"gomoku-local/search"
	"gomoku-local/types"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex
	cfg  engine.GameConfig
}

// NewGameSetup creates a new game setup form pre-filled from defaults.
// onSave and onColors may be nil, which leaves out their buttons.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onSave func(engine.GameConfig), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{cfg: defaults}

	modes := []string{engine.ModeVsComputer.String(), engine.ModeVsHuman.String()}
	colors := []string{"Black (play first)", "White (play second)"}
	depths := make([]string, search.MaxDepth)
	for i := range depths {
		depths[i] = strconv.Itoa(i + 1)
	}
	depths[0] += " (fastest)"
	depths[search.DefaultDepth-1] += " (default)"

	colorIndex := 0
	if defaults.PlayerColor == types.White {
		colorIndex = 1
	}
	depthIndex := search.DefaultDepth - 1
	if defaults.SearchDepth >= 1 && defaults.SearchDepth <= search.MaxDepth {
		depthIndex = defaults.SearchDepth - 1
	}

	form := tview.NewForm()

	form.AddDropDown("Mode", modes, int(defaults.Mode), func(option string, index int) {
		setup.cfg.Mode = engine.Mode(index)
	})

	form.AddInputField("Your Name", defaults.PlayerName, 20, nil, func(text string) {
		setup.cfg.PlayerName = strings.TrimSpace(text)
	})

	form.AddDropDown("Your Color", colors, colorIndex, func(option string, index int) {
		setup.cfg.PlayerColor = types.Black
		if index == 1 {
			setup.cfg.PlayerColor = types.White
		}
	})

	form.AddDropDown("AI Depth", depths, depthIndex, func(option string, index int) {
		setup.cfg.SearchDepth = index + 1
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig())
	})

	if onSave != nil {
		form.AddButton("Save Defaults", func() {
			onSave(setup.GameConfig())
		})
	}

	if onColors != nil {
		form.AddButton("Board Colors", onColors)
	}

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate  |  Arrows: change dropdown  |  Enter: confirm  |  Ctrl+S: save defaults").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig returns the configuration currently selected in the form.
// The second player's name is left for the engine to fill in.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	cfg := s.cfg
	cfg.OpponentName = ""
	return cfg
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
