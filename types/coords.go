package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadCoordinate is returned when a move cannot be parsed.
	ErrBadCoordinate = errors.New("bad coordinate")
	// ErrOffBoard is a number outside 1..Size. It matches ErrBadCoordinate.
	ErrOffBoard = fmt.Errorf("%w: off the board", ErrBadCoordinate)
)

// Coordinates are shown to players 1-indexed, rows counted from the top:
// Move{0, 0} is "(1, 1)" and Move{8, 4} is "(9, 5)".

// String formats the move the way players type it.
func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row+1, m.Col+1)
}

// ParseMove reads a 1-indexed "row col" pair. Commas, parentheses and extra
// spaces are accepted, so "5 5", "5,5" and "(5, 5)" are the same move.
func ParseMove(s string) (Move, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("%w: %q: want row and column", ErrBadCoordinate, s)
	}
	row, err := ParseIndex(fields[0])
	if err != nil {
		return Move{}, err
	}
	col, err := ParseIndex(fields[1])
	if err != nil {
		return Move{}, err
	}
	return Move{Row: row, Col: col}, nil
}

// ParseIndex converts a 1-indexed row or column number to a board index.
func ParseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadCoordinate, s)
	}
	if n < 1 || n > Size {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", ErrOffBoard, n, Size)
	}
	return n - 1, nil
}

// ParseColor reads a player symbol: "b", "black", "w" or "white".
func ParseColor(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("unknown color %q", s)
}
