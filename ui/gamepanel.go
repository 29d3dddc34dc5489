package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"gomoku-local/engine"
	"gomoku-local/types"
)

// InfoPanel displays game information and move history alongside the board.
type InfoPanel struct {
	box     *tview.TextView
	state   *types.GameState
	players map[types.Cell]string
	mode    engine.Mode
	depth   int
}

// NewInfoPanel creates a new game info panel.
func NewInfoPanel() *InfoPanel {
	panel := &InfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *InfoPanel) Box() *tview.TextView {
	return p.box
}

// SetGame records who is playing. Called once per game.
func (p *InfoPanel) SetGame(e engine.GameEngine, cfg engine.GameConfig) {
	p.mode = cfg.Mode
	p.depth = cfg.SearchDepth
	p.players = map[types.Cell]string{
		types.Black: e.PlayerName(types.Black),
		types.White: e.PlayerName(types.White),
	}
	p.refresh()
}

// SetState updates the panel with the current game.
func (p *InfoPanel) SetState(state *types.GameState) {
	p.state = state
	p.refresh()
}

func (p *InfoPanel) refresh() {
	if p.state == nil {
		p.box.SetText("")
		return
	}

	var text strings.Builder

	text.WriteString("[white::b]Game Info[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Mode:[-:-:-] %s\n", p.mode)
	if p.mode == engine.ModeVsComputer {
		fmt.Fprintf(&text, "[white]Depth:[-:-:-] %d\n", p.depth)
	}
	if p.players != nil {
		fmt.Fprintf(&text, "[white]B:[-:-:-] %s\n", tview.Escape(p.players[types.Black]))
		fmt.Fprintf(&text, "[white]W:[-:-:-] %s\n", tview.Escape(p.players[types.White]))
	}
	fmt.Fprintf(&text, "[white]Move:[-:-:-] %d\n", p.state.MoveNumber)
	if !p.state.Finished() {
		fmt.Fprintf(&text, "[white]To move:[-:-:-] %s\n", p.state.PlayerToMove.Name())
	}

	moves := p.state.History
	if len(moves) > 0 {
		text.WriteString("\n[white::b]Moves[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		// Show last N moves that fit
		maxVisible := 12
		start := 0
		if len(moves) > maxVisible {
			start = len(moves) - maxVisible
		}

		for i := start; i < len(moves); i++ {
			// Black plays the odd moves.
			colorStr := "[white]B[-]"
			if i%2 == 1 {
				colorStr = "[dimgray]W[-]"
			}

			marker := " "
			if i == len(moves)-1 {
				marker = "[white]>[-]"
			}

			fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, moves[i])
		}

		if start > 0 {
			fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text.String())
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	if board.infoPanel == nil {
		board.infoPanel = NewInfoPanel()
	}
	board.infoPanel.SetState(board.State)

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(board.infoPanel.Box(), 26, 0, false)

	// Main vertical flex: board area on top, status box at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 7, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth := types.Size*2 + 4 // 2 chars per cell + coordinates
	boardHeight := types.Size + 2

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
