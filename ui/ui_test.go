package ui

import (
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomoku-local/config"
	"gomoku-local/engine"
	"gomoku-local/engine/local"
	"gomoku-local/search"
	"gomoku-local/types"
)

func newTestBoard(t *testing.T) (*BoardUI, *tview.TextView) {
	t.Helper()
	cfg := config.DefaultConfig
	hint := tview.NewTextView()
	board := NewBoard(tview.NewApplication(), &cfg, hint)
	CreateGameLayout(board, hint)
	return board, hint
}

func TestMoveSelection(t *testing.T) {
	board, _ := newTestBoard(t)
	require.Nil(t, board.SelectedTile())

	board.MoveSelection(1, 0)
	require.NotNil(t, board.SelectedTile())
	assert.Equal(t, types.Move{Row: 4, Col: 4}, *board.SelectedTile(), "first key press shows the cursor at the center")

	board.MoveSelection(-1, 0)
	board.MoveSelection(0, 1)
	assert.Equal(t, types.Move{Row: 5, Col: 3}, *board.SelectedTile())

	for i := 0; i < 10; i++ {
		board.MoveSelection(0, -1)
	}
	assert.Equal(t, types.Move{Row: 0, Col: 3}, *board.SelectedTile(), "cursor stops at the edge")

	board.ResetSelection()
	board.State.LastMove = types.Move{Row: 7, Col: 2}
	board.MoveSelection(0, 1)
	assert.Equal(t, types.Move{Row: 7, Col: 2}, *board.SelectedTile(), "cursor reappears on the last move")
}

func TestDraw(t *testing.T) {
	board, _ := newTestBoard(t)
	board.State.Board.Set(types.Move{Row: 0, Col: 0}, types.Black)
	board.State.Board.Set(types.Move{Row: 8, Col: 8}, types.White)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	board.draw(screen, 0, 0, 40, 20)

	cell := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}
	theme := config.DefaultTheme
	assert.Equal(t, theme.Symbols.BlackStone, cell(4, 0))
	assert.Equal(t, '┬', cell(6, 0))
	assert.Equal(t, '─', cell(7, 0))
	assert.Equal(t, '◦', cell(4+4*2, 4))
	assert.Equal(t, '├', cell(4, 4))
	assert.Equal(t, theme.Symbols.WhiteStone, cell(4+8*2, 8))
	assert.Equal(t, ' ', cell(4+7*2+1, 8), "no line runs into a stone")
	assert.Equal(t, '1', cell(2, 0))
	assert.Equal(t, '9', cell(2, 8))
	assert.Equal(t, '5', cell(4+4*2, types.Size+1))
}

func TestPlayMoveOccupied(t *testing.T) {
	board, hint := newTestBoard(t)
	cfg := engine.GameConfig{Mode: engine.ModeVsHuman, PlayerColor: types.Black, PlayerName: "Ana", OpponentName: "Ben"}
	eng := local.NewEngine(cfg, local.WithInlineReplies())
	require.NoError(t, board.ConnectEngine(eng, cfg))
	assert.Contains(t, hint.GetText(false), "Ana to move (Black)")

	board.PlayMove(types.Move{Row: 2, Col: 2})
	board.PlayMove(types.Move{Row: 2, Col: 2})

	assert.Contains(t, hint.GetText(false), "That position is already occupied.")
	state := eng.GetGameState()
	assert.Equal(t, 1, state.MoveNumber)
	assert.Equal(t, types.White, state.PlayerToMove)
	board.Close()
}

func TestHintWhileComputerSearches(t *testing.T) {
	board, hint := newTestBoard(t)
	cfg := engine.GameConfig{Mode: engine.ModeVsComputer, PlayerColor: types.Black, PlayerName: "Ana", OpponentName: "AI", SearchDepth: search.MaxDepth}
	eng := local.NewEngine(cfg)
	require.NoError(t, board.ConnectEngine(eng, cfg))

	thinking := make(chan struct{}, 1)
	eng.OnThinking(func(types.Cell) { thinking <- struct{}{} })
	board.PlayMove(types.Move{Row: 4, Col: 4})
	<-thinking

	// What the queued move update does on the event loop.
	start := time.Now()
	board.State = eng.GetGameState()
	board.refreshHint()
	assert.Less(t, time.Since(start), 100*time.Millisecond, "the event loop waits for the search")
	if board.State.MoveNumber == 1 {
		assert.Contains(t, hint.GetText(false), "AI is thinking...")
		board.PlayMove(types.Move{Row: 0, Col: 0})
		assert.NotContains(t, hint.GetText(false), "!", "an early key press is ignored")
	}
	board.Close()
}

func TestFinishedBoard(t *testing.T) {
	board, hint := newTestBoard(t)
	cfg := engine.GameConfig{Mode: engine.ModeVsHuman, PlayerColor: types.Black, PlayerName: "Ana", OpponentName: "Ben"}
	eng := local.NewEngine(cfg, local.WithInlineReplies())
	require.NoError(t, board.ConnectEngine(eng, cfg))
	assert.False(t, board.IsFinished())

	board.finished = true
	board.refreshHint()
	assert.True(t, board.IsFinished())
	assert.Contains(t, hint.GetText(false), "return to menu")
	board.PlayMove(types.Move{Row: 0, Col: 0})
	assert.Equal(t, 0, eng.GetGameState().MoveNumber)
	board.Close()
}

func TestFocusModeHint(t *testing.T) {
	board, hint := newTestBoard(t)
	assert.True(t, board.ToggleFocusMode())
	assert.True(t, board.IsFocusMode())
	assert.Equal(t, "  f to toggle", hint.GetText(false))
	assert.False(t, board.ToggleFocusMode())
	assert.False(t, board.IsFocusMode())
	assert.Contains(t, hint.GetText(false), "f focus")
}

func TestInfoPanel(t *testing.T) {
	cfg := engine.GameConfig{Mode: engine.ModeVsComputer, PlayerColor: types.White, PlayerName: "Ana", SearchDepth: 2}
	eng := local.NewEngine(cfg, local.WithInlineReplies())

	panel := NewInfoPanel()
	panel.SetGame(eng, cfg)
	state := types.NewGameState()
	state.History = []types.Move{{Row: 4, Col: 4}, {Row: 0, Col: 8}}
	state.MoveNumber = 2
	panel.SetState(state)

	text := panel.Box().GetText(true)
	assert.Contains(t, text, "Mode: Human vs AI")
	assert.Contains(t, text, "Depth: 2")
	assert.Contains(t, text, "B: AI")
	assert.Contains(t, text, "W: Ana")
	assert.Contains(t, text, "B (5, 5)")
	assert.Contains(t, text, "W (1, 9)")
}

func TestGameSetupDefaults(t *testing.T) {
	defaults := engine.GameConfig{
		Mode:         engine.ModeVsHuman,
		PlayerColor:  types.White,
		PlayerName:   "Ana",
		OpponentName: "stale",
		SearchDepth:  2,
	}
	setup := NewGameSetup(defaults, func(engine.GameConfig) {}, func() {}, nil, nil)

	got := setup.GameConfig()
	defaults.OpponentName = ""
	assert.Equal(t, defaults, got)
}

func TestGridRune(t *testing.T) {
	assert.Equal(t, '┌', gridRune(0, 0, types.Size))
	assert.Equal(t, '┘', gridRune(8, 8, types.Size))
	assert.Equal(t, '┤', gridRune(3, 8, types.Size))
	assert.Equal(t, '┼', gridRune(3, 3, types.Size))
	assert.Equal(t, '┘', gridRune(6, 6, 7))
}

func TestThemePicker(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	cfg := config.DefaultConfig
	var saved []error
	tp := NewThemePicker(&cfg, func(err error) { saved = append(saved, err) })

	tp.NextTarget()
	tp.list.SetCurrentItem(2)
	assert.Equal(t, config.DefaultTheme.Colors.LineColor, cfg.Theme.Colors.LineColor, "edits wait for Apply")

	require.NoError(t, tp.Apply())
	assert.Equal(t, linePalette[2].code, cfg.Theme.Colors.LineColor)
	assert.Equal(t, config.DefaultTheme.Colors.BoardColor, cfg.Theme.Colors.BoardColor)

	loaded, err := config.InitConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.Theme.Colors, loaded.Theme.Colors)

	tp.colors.WinColorBG = 5
	tp.Reset()
	assert.Equal(t, cfg.Theme.Colors, tp.colors)
	assert.Empty(t, saved)
}
