// Package console plays a game over a plain line-based terminal: prompts
// are written to an io.Writer and answers read one line at a time.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"gomoku-local/engine"
	"gomoku-local/engine/local"
	"gomoku-local/types"
)

// Session is one run of the console game.
type Session struct {
	in    *bufio.Scanner
	out   io.Writer
	depth int
}

// NewSession reads answers from in and writes the game to out. depth is the
// search depth used when playing against the computer.
func NewSession(in io.Reader, out io.Writer, depth int) *Session {
	return &Session{
		in:    bufio.NewScanner(in),
		out:   out,
		depth: depth,
	}
}

// Run asks for the game mode and the players, then plays one game.
func (s *Session) Run() error {
	s.println("Welcome to Gomoku (Five in a Row)!")
	s.println("Select game mode:")
	s.println("1. 1 Player (Human vs AI)")
	s.println("2. 2 Players (Human vs Human)")

	choice, err := s.readNumber(1, 2)
	if err != nil {
		return err
	}

	cfg := engine.GameConfig{SearchDepth: s.depth}
	if choice == 1 {
		cfg.Mode = engine.ModeVsComputer
		s.printf("Enter your name: ")
	} else {
		cfg.Mode = engine.ModeVsHuman
		s.printf("Player 1, enter your name: ")
	}
	if cfg.PlayerName, err = s.readLine(); err != nil {
		return err
	}

	s.printf("%s, choose your symbol (B for Black, W for White):\n", cfg.PlayerName)
	if cfg.PlayerColor, err = s.readSymbol(); err != nil {
		return err
	}

	if cfg.Mode == engine.ModeVsComputer {
		cfg.OpponentName = engine.ComputerName
	} else {
		s.printf("Player 2, enter your name: ")
		if cfg.OpponentName, err = s.readLine(); err != nil {
			return err
		}
	}

	return s.Play(cfg)
}

// Play runs a game with players already chosen.
func (s *Session) Play(cfg engine.GameConfig) error {
	if cfg.SearchDepth == 0 {
		cfg.SearchDepth = s.depth
	}
	if !cfg.PlayerColor.Valid() {
		return fmt.Errorf("player color %d is not black or white", cfg.PlayerColor)
	}
	g := local.NewEngine(cfg, local.WithInlineReplies())
	defer g.Close()

	for _, color := range []types.Cell{cfg.PlayerColor, types.Opponent(cfg.PlayerColor)} {
		s.printf("%s will play as '%s'\n", g.PlayerName(color), color)
	}

	computer := func(color types.Cell) bool {
		return cfg.Mode == engine.ModeVsComputer && color != cfg.PlayerColor
	}
	g.OnThinking(func(color types.Cell) {
		s.printf("%s's turn (%s)\n", g.PlayerName(color), color)
		s.printf("%s is thinking...\n", g.PlayerName(color))
	})
	g.OnMove(func(m types.Move, color types.Cell, state *types.GameState) {
		if computer(color) {
			s.printf("%s places %s at position %s\n", g.PlayerName(color), color, m)
		}
		s.printBoard(&state.Board)
	})
	g.OnGameEnd(func(outcome string) {
		s.println(outcome)
	})

	s.printBoard(&types.Board{})
	if err := g.Connect(); err != nil {
		return err
	}

	for {
		state := g.GetGameState()
		if state.Finished() {
			return nil
		}
		if !g.IsMyTurn() {
			return fmt.Errorf("%s cannot move", g.PlayerName(state.PlayerToMove))
		}
		color := state.PlayerToMove
		s.printf("%s's turn (%s)\n", g.PlayerName(color), color)
		if err := s.playerMove(g); err != nil {
			return err
		}
	}
}

// playerMove asks for a row and a column until an empty cell is given.
func (s *Session) playerMove(g engine.GameEngine) error {
	for {
		m, err := s.readMove()
		if err != nil {
			return err
		}
		err = g.PlayMove(m)
		if errors.Is(err, engine.ErrCellOccupied) {
			s.println("That position is already occupied. Try again.")
			continue
		}
		return err
	}
}

// readMove reads a row and then a column. Both can also be typed at the
// row prompt, as "5 5" or "5,5".
func (s *Session) readMove() (types.Move, error) {
	s.printf("Enter row (1-%d): ", types.Size)
	var row int
	for {
		line, err := s.readLine()
		if err != nil {
			return types.Move{}, err
		}
		if strings.ContainsAny(line, " ,") {
			m, err := types.ParseMove(line)
			if err == nil {
				return m, nil
			}
			s.coordinateError(err)
			continue
		}
		if row, err = types.ParseIndex(line); err == nil {
			break
		}
		s.coordinateError(err)
	}

	s.printf("Enter column (1-%d): ", types.Size)
	for {
		line, err := s.readLine()
		if err != nil {
			return types.Move{}, err
		}
		col, err := types.ParseIndex(line)
		if err == nil {
			return types.Move{Row: row, Col: col}, nil
		}
		s.coordinateError(err)
	}
}

func (s *Session) coordinateError(err error) {
	log.Debug().Err(err).Msg("coordinate rejected")
	if errors.Is(err, types.ErrOffBoard) {
		s.printf("Please enter a number between 1 and %d:\n", types.Size)
		return
	}
	s.println("Invalid input. Please enter a number:")
}

func (s *Session) printBoard(b *types.Board) {
	var sb strings.Builder
	sb.WriteString("\n   ")
	for col := 0; col < types.Size; col++ {
		fmt.Fprintf(&sb, "%2d ", col+1)
	}
	border := "  " + strings.Repeat("---", types.Size) + "-\n"
	sb.WriteString("\n" + border)
	for row := 0; row < types.Size; row++ {
		fmt.Fprintf(&sb, "%2d|", row+1)
		for col := 0; col < types.Size; col++ {
			fmt.Fprintf(&sb, " %s ", b[row][col])
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	s.printf("%s", sb.String())
}

// readLine returns the next input line. Running out of input in the middle
// of a game is an error.
func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		log.Debug().Msg("console input closed")
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) readNumber(min, max int) (int, error) {
	for {
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			s.println("Invalid input. Please enter a number:")
			continue
		}
		if n < min || n > max {
			s.printf("Please enter a number between %d and %d:\n", min, max)
			continue
		}
		return n, nil
	}
}

func (s *Session) readSymbol() (types.Cell, error) {
	for {
		line, err := s.readLine()
		if err != nil {
			return types.Empty, err
		}
		switch strings.ToUpper(line) {
		case "B":
			return types.Black, nil
		case "W":
			return types.White, nil
		}
		s.println("Invalid input. Please enter 'B' or 'W':")
	}
}

func (s *Session) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
