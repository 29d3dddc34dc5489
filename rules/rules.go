// Package rules decides when a game of five-in-a-row is over.
package rules

import "gomoku-local/types"

// WinLength is the number of contiguous stones that wins the game.
const WinLength = 5

// directions are right, down, down-right and down-left. The reverse
// directions cover the same lines and are not scanned.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasFiveInRow reports whether symbol owns five contiguous cells in a row,
// column or diagonal. It never modifies the board.
func HasFiveInRow(b *types.Board, symbol types.Cell) bool {
	return WinningLine(b, symbol) != nil
}

// WinningLine returns the first five contiguous cells owned by symbol in
// row-major order of their first cell, or nil if there are none.
func WinningLine(b *types.Board, symbol types.Cell) []types.Move {
	if !symbol.Valid() {
		return nil
	}
	for row := 0; row < types.Size; row++ {
		for col := 0; col < types.Size; col++ {
			if b[row][col] != symbol {
				continue
			}
			for _, d := range directions {
				if !lineFrom(b, symbol, row, col, d[0], d[1]) {
					continue
				}
				line := make([]types.Move, WinLength)
				for k := range line {
					line[k] = types.Move{Row: row + k*d[0], Col: col + k*d[1]}
				}
				return line
			}
		}
	}
	return nil
}

// lineFrom checks the WinLength cells starting at (row, col) along (dr, dc).
func lineFrom(b *types.Board, symbol types.Cell, row, col, dr, dc int) bool {
	for k := 0; k < WinLength; k++ {
		r, c := row+k*dr, col+k*dc
		if r < 0 || r >= types.Size || c < 0 || c >= types.Size || b[r][c] != symbol {
			return false
		}
	}
	return true
}

// IsFull reports whether no empty cell is left.
func IsFull(b *types.Board) bool {
	for row := range b {
		for col := range b[row] {
			if b[row][col] == types.Empty {
				return false
			}
		}
	}
	return true
}

// Outcome reports whether the game on b is over and who won.
// A full board without five in a row is a draw and returns types.Empty.
func Outcome(b *types.Board) (winner types.Cell, over bool) {
	switch {
	case HasFiveInRow(b, types.Black):
		return types.Black, true
	case HasFiveInRow(b, types.White):
		return types.White, true
	case IsFull(b):
		return types.Empty, true
	}
	return types.Empty, false
}
