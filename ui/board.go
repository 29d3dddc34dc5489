// Package ui specifies custom controls for tview to play five-in-a-row in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"gomoku-local/config"
	"gomoku-local/engine"
	"gomoku-local/rules"
	"gomoku-local/types"
)

// Indexes into BoardUI.styles.
const (
	styleBoard = iota
	styleBlack
	styleWhite
	styleLine
	styleCursor
	styleLastPlayed
	styleWin
)

type BoardUI struct {
	Box       *tview.Box
	State     *types.GameState
	hint      *tview.TextView
	cfg       *config.Config
	finished  bool
	thinking  bool
	notice    string
	sel       types.Move
	winLine   map[types.Move]bool
	app       *tview.Application
	eng       engine.GameEngine
	game      engine.GameConfig
	styles    []tcell.Color
	infoPanel *InfoPanel
	focusMode bool
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *BoardUI) SelectedTile() *types.Move {
	if !g.sel.InBounds() {
		return nil
	}
	m := g.sel
	return &m
}

// MoveSelection moves the cursor by dc columns and dr rows. The first call
// only shows the cursor, on the last move or the center of the board.
func (g *BoardUI) MoveSelection(dc, dr int) {
	if g.finished {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		g.sel = g.State.LastMove
		if g.SelectedTile() == nil {
			g.sel = types.Move{Row: types.Size / 2, Col: types.Size / 2}
		}
		return
	}
	next := types.Move{Row: g.sel.Row + dr, Col: g.sel.Col + dc}
	if !next.InBounds() {
		return
	}
	g.sel = next
}

func (g *BoardUI) ResetSelection() {
	g.sel = types.Move{Row: -1, Col: -1}
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:   tview.NewBox(),
		State: types.NewGameState(),
		hint:  hint,
		app:   app,
		sel:   types.Move{Row: -1, Col: -1},
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	theme := g.cfg.Theme
	state := g.State
	// 2 characters per cell for square appearance
	boardW, boardH := types.Size*2, types.Size

	for row := 0; row < types.Size; row++ {
		for col := 0; col < types.Size; col++ {
			m := types.Move{Row: row, Col: col}
			stone := state.Board.At(m)

			bg := g.styles[styleBoard]
			fg := g.styles[styleLine]
			drawRune := theme.Symbols.BoardSquare
			if theme.UseGridLines {
				drawRune = gridRune(row, col, types.Size)
				if row == types.Size/2 && col == types.Size/2 {
					drawRune = '◦' // center point
				}
			}
			switch stone {
			case types.Black:
				drawRune = theme.Symbols.BlackStone
				fg = g.styles[styleBlack]
			case types.White:
				drawRune = theme.Symbols.WhiteStone
				fg = g.styles[styleWhite]
			}

			switch {
			case m == g.sel && theme.DrawCursorBackground:
				bg = g.styles[styleCursor]
			case g.winLine[m]:
				bg = g.styles[styleWin]
			case m == state.LastMove && theme.DrawLastPlayedBackground:
				bg = g.styles[styleLastPlayed]
			}

			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			right := ' '
			if theme.UseGridLines && stone == types.Empty && col < types.Size-1 && state.Board[row][col+1] == types.Empty {
				right = '─'
			}
			screen.SetContent(x+4+col*2, y+row, drawRune, nil, style)
			screen.SetContent(x+4+col*2+1, y+row, right, nil, style)
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, boardW + 4, boardH + 2
}

// drawCoordinates labels rows and columns 1 to 9 from the top-left corner,
// the numbering players type in the console.
func (g *BoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[styleCursor])
	lpHighlight := tcell.StyleDefault.Background(g.styles[styleLastPlayed])

	pick := func(i, sel, last int) tcell.Style {
		switch i {
		case sel:
			return highlight
		case last:
			return lpHighlight
		}
		return style
	}

	for col := 0; col < types.Size; col++ {
		st := pick(col, g.sel.Col, g.State.LastMove.Col)
		s.SetContent(x+4+col*2, y+types.Size+1, rune('1'+col), nil, st)
		s.SetContent(x+4+col*2+1, y+types.Size+1, ' ', nil, st)
	}
	for row := 0; row < types.Size; row++ {
		st := pick(row, g.sel.Row, g.State.LastMove.Row)
		s.SetContent(x+1, y+row, ' ', nil, st)
		s.SetContent(x+2, y+row, rune('1'+row), nil, st)
	}
}

// ConnectEngine connects the board to a game engine and starts the game.
// cfg is what e was created with.
func (g *BoardUI) ConnectEngine(e engine.GameEngine, cfg engine.GameConfig) error {
	g.finished = false
	g.thinking = false
	g.notice = ""
	g.winLine = nil
	g.eng = e
	g.game = cfg
	g.State = e.GetGameState()
	g.ResetSelection()
	if g.infoPanel != nil {
		g.infoPanel.SetGame(e, cfg)
	}

	e.OnThinking(func(color types.Cell) {
		g.queue(e, func() {
			g.thinking = true
			g.refreshHint()
		})
	})

	e.OnMove(func(m types.Move, color types.Cell, state *types.GameState) {
		g.queue(e, func() {
			// Updates may arrive out of order.
			if state.MoveNumber < g.State.MoveNumber {
				return
			}
			g.thinking = false
			g.State = state
			g.refreshHint()
		})
	})

	e.OnGameEnd(func(outcome string) {
		g.queue(e, func() {
			g.finished = true
			g.thinking = false
			g.State = e.GetGameState()
			if line := rules.WinningLine(&g.State.Board, g.State.Winner); line != nil {
				g.winLine = make(map[types.Move]bool, len(line))
				for _, m := range line {
					g.winLine[m] = true
				}
			}
			g.ResetSelection()
			g.refreshHint()
		})
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.refreshHint()
	return nil
}

// queue runs f on the application's event loop unless the board has moved
// on to another game. Engine callbacks can fire from inside the event loop,
// so the caller never waits.
func (g *BoardUI) queue(e engine.GameEngine, f func()) {
	go g.app.QueueUpdateDraw(func() {
		if g.eng == e {
			f()
		}
	})
}

// PlayMove plays a move at the selected cell.
func (g *BoardUI) PlayMove(m types.Move) {
	if g.finished || g.eng == nil || g.computerToMove() {
		return
	}
	g.notice = ""
	if err := g.eng.PlayMove(m); err != nil {
		log.Debug().Err(err).Stringer("move", m).Msg("move rejected")
		switch {
		case errors.Is(err, engine.ErrNotYourTurn):
			// The computer's reply has not reached the board yet.
			return
		case errors.Is(err, engine.ErrCellOccupied):
			g.notice = "That position is already occupied."
		default:
			g.notice = err.Error()
		}
		g.refreshHint()
	}
}

// computerToMove reports whether the shown position waits on the computer.
// It reads only the board's own state, never the engine.
func (g *BoardUI) computerToMove() bool {
	return g.eng != nil && g.game.Mode == engine.ModeVsComputer && g.State.PlayerToMove != g.game.PlayerColor
}

// Close stops the engine.
func (g *BoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),
		tcell.PaletteColor(c.Theme.Colors.BlackColor),
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),
		tcell.PaletteColor(c.Theme.Colors.LineColor),
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG),
		tcell.PaletteColor(c.Theme.Colors.WinColorBG),
	}
	g.cfg = c
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetState(g.State)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.State.Outcome)
		controlsLine = "\n  ⏎/q · return to menu"
	} else {
		if g.notice != "" {
			statusLine = fmt.Sprintf("  ! %s\n\n", g.notice)
		}

		toMove := g.State.PlayerToMove
		name := toMove.Name()
		if g.eng != nil {
			name = g.eng.PlayerName(toMove)
		}
		switch {
		case g.thinking || g.computerToMove():
			turnLine = fmt.Sprintf("  ◌ %s is thinking...\n", name)
		default:
			turnLine = fmt.Sprintf("  ● %s to move (%s)\n", name, toMove.Name())
		}

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ play
         f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.finished
}

// gridRune returns the box-drawing character for an empty intersection
// on a size x size grid.
func gridRune(row, col, size int) rune {
	last := size - 1
	isTop, isBottom := row == 0, row == last
	isLeft, isRight := col == 0, col == last

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}
