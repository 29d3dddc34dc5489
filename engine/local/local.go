// Package local implements engine.GameEngine in process, with the computer
// player driven by the search package.
package local

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"gomoku-local/engine"
	"gomoku-local/rules"
	"gomoku-local/search"
	"gomoku-local/types"
)

type Option func(e *Engine)

// WithInlineReplies makes the computer reply before PlayMove and Connect
// return, instead of on its own goroutine.
func WithInlineReplies() Option {
	return func(e *Engine) {
		e.dispatch = func(f func()) { f() }
	}
}

// Engine plays a game on a board it owns. Human moves come in through
// PlayMove; computer moves are chosen by a search.Engine.
type Engine struct {
	config   engine.GameConfig
	searcher *search.Engine
	state    *types.GameState
	gameOver bool

	dispatch func(func())
	pending  sync.WaitGroup

	moveCallback     func(m types.Move, color types.Cell, state *types.GameState)
	thinkingCallback func(color types.Cell)
	endCallback      func(outcome string)

	mu sync.Mutex
}

// NewEngine creates a game with the given configuration.
func NewEngine(cfg engine.GameConfig, options ...Option) *Engine {
	if cfg.PlayerName == "" {
		cfg.PlayerName = "Player 1"
	}
	if cfg.OpponentName == "" {
		cfg.OpponentName = "Player 2"
		if cfg.Mode == engine.ModeVsComputer {
			cfg.OpponentName = engine.ComputerName
		}
	}
	g := &Engine{
		config:   cfg,
		searcher: search.NewEngine(search.WithDepth(cfg.SearchDepth)),
		state:    types.NewGameState(),
		dispatch: func(f func()) { go f() },
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// Connect starts the game. If the computer plays black it moves right away.
func (g *Engine) Connect() error {
	if !g.config.PlayerColor.Valid() {
		return fmt.Errorf("player color: %w", search.ErrInvalidSymbol)
	}

	// A reply still searching belongs to the previous game.
	g.Close()

	g.mu.Lock()
	g.state = types.NewGameState()
	g.gameOver = false
	computerFirst := g.isComputer(g.state.PlayerToMove)
	g.mu.Unlock()

	log.Info().
		Stringer("mode", g.config.Mode).
		Str("black", g.PlayerName(types.Black)).
		Str("white", g.PlayerName(types.White)).
		Int("depth", g.searcher.Depth()).
		Msg("game started")

	if computerFirst {
		g.startComputerMove()
	}
	return nil
}

// GetGameState returns a snapshot of the current game.
func (g *Engine) GetGameState() *types.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Copy()
}

// PlayMove plays a move for the side to move.
func (g *Engine) PlayMove(m types.Move) error {
	g.mu.Lock()

	if g.gameOver {
		g.mu.Unlock()
		return engine.ErrGameOver
	}

	if g.isComputer(g.state.PlayerToMove) {
		g.mu.Unlock()
		return engine.ErrNotYourTurn
	}

	if !m.InBounds() {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", engine.ErrOutOfRange, m)
	}

	if g.state.Board.At(m) != types.Empty {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", engine.ErrCellOccupied, m)
	}

	color := g.state.PlayerToMove
	outcome, over := g.apply(m, color)
	computerNext := !over && g.isComputer(g.state.PlayerToMove)
	stateCopy := g.state.Copy()
	g.mu.Unlock()

	log.Debug().Str("color", color.Name()).Stringer("move", m).Msg("human move")

	// Notify callbacks (outside lock to prevent deadlock)
	g.notify(m, color, stateCopy, outcome, over)

	if computerNext {
		g.startComputerMove()
	}
	return nil
}

func (g *Engine) startComputerMove() {
	g.pending.Add(1)
	g.dispatch(func() {
		defer g.pending.Done()
		g.triggerComputerMove()
	})
}

// triggerComputerMove asks the searcher for a move and plays it. The search
// runs on a copy of the board, so the game stays readable meanwhile.
func (g *Engine) triggerComputerMove() {
	g.mu.Lock()
	if g.gameOver {
		g.mu.Unlock()
		return
	}
	color := g.state.PlayerToMove
	thinking := g.thinkingCallback
	g.mu.Unlock()

	if thinking != nil {
		thinking(color)
	}

	g.mu.Lock()
	// The game may have been closed while the callback ran.
	if g.gameOver || g.state.PlayerToMove != color {
		g.mu.Unlock()
		return
	}
	board := g.state.Board
	moveNumber := g.state.MoveNumber
	g.mu.Unlock()

	m, err := g.searcher.BestMove(&board, color)

	g.mu.Lock()
	if g.gameOver || g.state.MoveNumber != moveNumber {
		g.mu.Unlock()
		log.Debug().Str("color", color.Name()).Msg("game moved on during search, reply dropped")
		return
	}
	if err != nil {
		g.gameOver = true
		g.state.Phase = types.PhaseFinished
		g.state.Outcome = fmt.Sprintf("%s could not move: %v", g.PlayerName(color), err)
		outcome := g.state.Outcome
		end := g.endCallback
		g.mu.Unlock()

		log.Error().Err(err).Str("color", color.Name()).Msg("computer move failed")
		if end != nil {
			end(outcome)
		}
		return
	}

	outcome, over := g.apply(m, color)
	stateCopy := g.state.Copy()
	g.mu.Unlock()

	log.Debug().Str("color", color.Name()).Stringer("move", m).Msg("computer move")
	g.notify(m, color, stateCopy, outcome, over)
}

// apply places color at m and updates the game phase.
// Must be called while holding the lock.
func (g *Engine) apply(m types.Move, color types.Cell) (outcome string, over bool) {
	g.state.Board.Set(m, color)
	g.state.LastMove = m
	g.state.History = append(g.state.History, m)
	g.state.MoveNumber++
	g.state.PlayerToMove = types.Opponent(color)

	winner, over := rules.Outcome(&g.state.Board)
	if !over {
		return "", false
	}

	g.gameOver = true
	g.state.Phase = types.PhaseFinished
	g.state.Winner = winner
	if winner == types.Empty {
		g.state.Outcome = "The game is a draw!"
	} else {
		g.state.Outcome = fmt.Sprintf("%s wins!", g.PlayerName(winner))
	}
	return g.state.Outcome, true
}

// notify runs the move and game end callbacks. Must be called without the lock.
func (g *Engine) notify(m types.Move, color types.Cell, stateCopy *types.GameState, outcome string, over bool) {
	g.mu.Lock()
	move, end := g.moveCallback, g.endCallback
	g.mu.Unlock()

	if move != nil {
		move(m, color, stateCopy)
	}
	if !over {
		return
	}
	log.Info().Str("outcome", outcome).Int("moves", stateCopy.MoveNumber).Msg("game over")
	if end != nil {
		end(outcome)
	}
}

// isComputer reports whether color is played by the computer.
func (g *Engine) isComputer(color types.Cell) bool {
	return g.config.Mode == engine.ModeVsComputer && color != g.config.PlayerColor
}

// IsMyTurn returns true if a human may play now.
func (g *Engine) IsMyTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.gameOver && !g.isComputer(g.state.PlayerToMove)
}

// GetPlayerColor returns the first human player's color.
func (g *Engine) GetPlayerColor() types.Cell {
	return g.config.PlayerColor
}

// PlayerName returns the name of whoever plays color.
func (g *Engine) PlayerName(color types.Cell) string {
	if color == g.config.PlayerColor {
		return g.config.PlayerName
	}
	return g.config.OpponentName
}

// Config returns the configuration the game was created with.
func (g *Engine) Config() engine.GameConfig {
	return g.config
}

// OnMove registers a callback for when a move is played.
func (g *Engine) OnMove(callback func(m types.Move, color types.Cell, state *types.GameState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.moveCallback = callback
}

// OnThinking registers a callback for when the computer starts searching.
func (g *Engine) OnThinking(callback func(color types.Cell)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.thinkingCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (g *Engine) OnGameEnd(callback func(outcome string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endCallback = callback
}

// Close stops the game and waits for a computer move in progress.
func (g *Engine) Close() {
	g.mu.Lock()
	g.gameOver = true
	g.state.Phase = types.PhaseFinished
	g.mu.Unlock()
	g.pending.Wait()
}
