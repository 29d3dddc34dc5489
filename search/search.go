// Package search chooses moves for the computer player.
//
// A move is picked in three steps: complete five in a row if possible,
// otherwise block the opponent's five, otherwise run a depth-limited minimax
// search with alpha-beta pruning. The search places and retracts stones on
// the caller's board and always leaves it as it found it.
package search

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"gomoku-local/rules"
	"gomoku-local/types"
)

const (
	// DefaultDepth is the search horizon in plies.
	DefaultDepth = 3
	// MaxDepth is the deepest horizon accepted by WithDepth.
	MaxDepth = 4
	// WinScore is the score of a win found at the root.
	// A win found at depth d scores WinScore-d, a loss d-WinScore.
	WinScore = 10
)

var (
	ErrInvalidSymbol = errors.New("symbol must be black or white")
	ErrNoLegalMove   = errors.New("no empty cell left on the board")
)

// Phase tells which step of the move selection produced the move.
type Phase string

const (
	PhaseWin    Phase = "win"
	PhaseBlock  Phase = "block"
	PhaseSearch Phase = "search"
)

// Stats describes the last call to BestMove.
type Stats struct {
	Phase    Phase
	Move     types.Move
	Score    int // only meaningful for PhaseSearch
	Nodes    int
	Cutoffs  int
	Duration time.Duration
}

type Option func(e *Engine)

// WithDepth sets the search horizon. Values outside 1..MaxDepth are ignored.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 && depth <= MaxDepth {
			e.depth = depth
		}
	}
}

// Engine selects moves. It is not safe for concurrent use.
type Engine struct {
	depth int
	last  Stats
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{depth: DefaultDepth}
	for _, option := range options {
		option(e)
	}
	return e
}

// Depth returns the search horizon in plies.
func (e *Engine) Depth() int {
	return e.depth
}

// LastStats returns statistics for the most recent successful BestMove call.
func (e *Engine) LastStats() Stats {
	return e.last
}

// BestMove returns the cell toMove should play on b.
// The board is modified during the call but restored before it returns;
// the caller applies the returned move.
func (e *Engine) BestMove(b *types.Board, toMove types.Cell) (types.Move, error) {
	if !toMove.Valid() {
		return types.Move{}, fmt.Errorf("%w: got %d", ErrInvalidSymbol, int(toMove))
	}
	if rules.IsFull(b) {
		return types.Move{}, ErrNoLegalMove
	}

	start := time.Now()
	s := &searcher{
		board:    b,
		symbol:   toMove,
		opponent: types.Opponent(toMove),
		horizon:  e.depth,
	}
	stats := s.choose()
	stats.Nodes = s.nodes
	stats.Cutoffs = s.cutoffs
	stats.Duration = time.Since(start)
	e.last = stats

	log.Debug().
		Str("symbol", toMove.Name()).
		Str("phase", string(stats.Phase)).
		Stringer("move", stats.Move).
		Int("score", stats.Score).
		Int("nodes", stats.Nodes).
		Int("cutoffs", stats.Cutoffs).
		Dur("took", stats.Duration).
		Msg("search complete")

	return stats.Move, nil
}

type searcher struct {
	board    *types.Board
	symbol   types.Cell
	opponent types.Cell
	horizon  int
	nodes    int
	cutoffs  int
}

// choose runs the three selection steps. The board has at least one empty cell.
func (s *searcher) choose() Stats {
	if m, ok := s.completesFive(s.symbol); ok {
		return Stats{Phase: PhaseWin, Move: m}
	}
	if m, ok := s.completesFive(s.opponent); ok {
		return Stats{Phase: PhaseBlock, Move: m}
	}

	best := Stats{Phase: PhaseSearch, Score: math.MinInt}
	found := false
	s.eachEmpty(func(m types.Move) bool {
		score := place(s.board, m, s.symbol, func() int {
			return s.minimax(0, false, math.MinInt, math.MaxInt)
		})
		if !found || score > best.Score {
			best.Score = score
			best.Move = m
			found = true
		}
		return true
	})
	return best
}

// completesFive returns the first empty cell, in row-major order, where c
// would make five in a row.
func (s *searcher) completesFive(c types.Cell) (types.Move, bool) {
	var win types.Move
	found := false
	s.eachEmpty(func(m types.Move) bool {
		found = place(s.board, m, c, func() bool {
			return rules.HasFiveInRow(s.board, c)
		})
		if found {
			win = m
		}
		return !found
	})
	return win, found
}

// minimax scores the board from the point of view of s.symbol.
func (s *searcher) minimax(depth int, maximizing bool, alpha, beta int) int {
	s.nodes++
	if rules.HasFiveInRow(s.board, s.symbol) {
		return WinScore - depth
	}
	if rules.HasFiveInRow(s.board, s.opponent) {
		return depth - WinScore
	}
	if rules.IsFull(s.board) || depth >= s.horizon {
		return 0
	}

	mover, best := s.opponent, math.MaxInt
	if maximizing {
		mover, best = s.symbol, math.MinInt
	}
	s.eachEmpty(func(m types.Move) bool {
		score := place(s.board, m, mover, func() int {
			return s.minimax(depth+1, !maximizing, alpha, beta)
		})
		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if beta <= alpha {
			s.cutoffs++
			return false
		}
		return true
	})
	return best
}

// eachEmpty calls fn for every empty cell in row-major order until fn
// returns false.
func (s *searcher) eachEmpty(fn func(m types.Move) bool) {
	for row := 0; row < types.Size; row++ {
		for col := 0; col < types.Size; col++ {
			if s.board[row][col] != types.Empty {
				continue
			}
			if !fn(types.Move{Row: row, Col: col}) {
				return
			}
		}
	}
}

// place puts c on the empty cell m for the duration of fn.
func place[T any](b *types.Board, m types.Move, c types.Cell, fn func() T) T {
	b.Set(m, c)
	defer b.Set(m, types.Empty)
	return fn()
}
