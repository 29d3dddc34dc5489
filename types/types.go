// Package types contains shared data structures for gomoku-local.
package types

// Size is the width and height of the board.
const Size = 9

// Cell is the content of a single intersection.
type Cell int

const (
	Empty Cell = iota
	Black
	White
)

// Valid reports whether c is a player symbol.
func (c Cell) Valid() bool {
	return c == Black || c == White
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "?"
}

// Name returns the color name used in prompts and banners.
func (c Cell) Name() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "Empty"
}

// Opponent returns the other player symbol, or Empty if c is not a symbol.
func Opponent(c Cell) Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Move is a board position, 0-indexed from the top-left corner.
type Move struct {
	Row int
	Col int
}

// InBounds reports whether the move lies on the board.
func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// Board is indexed as Board[row][col].
// The zero value is an empty board.
type Board [Size][Size]Cell

// At returns the cell at m. m must be in bounds.
func (b *Board) At(m Move) Cell {
	return b[m.Row][m.Col]
}

// Set writes c at m. m must be in bounds.
func (b *Board) Set(m Move, c Cell) {
	b[m.Row][m.Col] = c
}

// IsEmpty reports whether m is on the board and unoccupied.
func (b *Board) IsEmpty(m Move) bool {
	return m.InBounds() && b[m.Row][m.Col] == Empty
}

// Count returns the number of cells holding c.
func (b *Board) Count(c Cell) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == c {
				n++
			}
		}
	}
	return n
}

// Phase of a game as seen by the shells.
const (
	PhasePlaying  = "playing"
	PhaseFinished = "finished"
)

// GameState is a snapshot of a game handed to the user interface.
// Board is a copy; mutating it does not affect the game.
type GameState struct {
	MoveNumber   int
	PlayerToMove Cell
	Phase        string
	Board        Board
	Outcome      string
	Winner       Cell
	LastMove     Move
	History      []Move
}

// Finished returns true if the game is over.
func (s *GameState) Finished() bool {
	return s.Phase == PhaseFinished
}

// NewGameState creates the state of a game that has not started yet.
func NewGameState() *GameState {
	return &GameState{
		PlayerToMove: Black, // Black plays first
		Phase:        PhasePlaying,
		LastMove:     Move{Row: -1, Col: -1},
	}
}

// Copy returns a deep copy of the state.
func (s *GameState) Copy() *GameState {
	c := *s
	c.History = append([]Move(nil), s.History...)
	return &c
}
