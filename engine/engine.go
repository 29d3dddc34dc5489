// Package engine defines the interface the user interfaces use to run a game.
package engine

import (
	"errors"

	"gomoku-local/search"
	"gomoku-local/types"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrCellOccupied = errors.New("that position is already occupied")
	ErrOutOfRange   = errors.New("position is off the board")
)

// GameEngine defines the interface for playing a game of five-in-a-row.
// Callbacks may be registered at any time and are never called while the
// engine holds its lock, so they may call back into the engine.
type GameEngine interface {
	// Connect initializes the game. If the computer moves first it starts thinking.
	Connect() error

	// GetGameState returns a snapshot of the current game.
	GetGameState() *types.GameState

	// PlayMove places the stone of the player to move at m.
	// Returns an error if the move is illegal.
	PlayMove(m types.Move) error

	// IsMyTurn returns true if a human may play now.
	IsMyTurn() bool

	// GetPlayerColor returns the first human player's color.
	GetPlayerColor() types.Cell

	// PlayerName returns the name of whoever plays color.
	PlayerName(color types.Cell) string

	// OnMove registers a callback for when a move is played (by either player).
	// state is a copy taken when the move was played.
	OnMove(func(m types.Move, color types.Cell, state *types.GameState))

	// OnThinking registers a callback for when the computer starts searching.
	OnThinking(func(color types.Cell))

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close ends the game and waits for a pending computer move. The state
	// reports the game as finished afterwards.
	Close()
}

// Mode selects who sits on the other side of the board.
type Mode int

const (
	ModeVsComputer Mode = iota
	ModeVsHuman
)

func (m Mode) String() string {
	if m == ModeVsHuman {
		return "Human vs Human"
	}
	return "Human vs AI"
}

// ComputerName is the opponent name used when none is given in computer mode.
const ComputerName = "AI"

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Mode         Mode
	PlayerColor  types.Cell // color of the first player
	PlayerName   string
	OpponentName string // second human, or the computer
	SearchDepth  int    // plies searched by the computer
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Mode:         ModeVsComputer,
		PlayerColor:  types.Black, // Human plays black
		PlayerName:   "Player",
		OpponentName: ComputerName,
		SearchDepth:  search.DefaultDepth,
	}
}
