// Package game keeps live games: a board, its SAN history and a lock that
// makes each game single-writer. A Registry indexes games by ID.
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
	"github.com/QuadDarv1ne/chess-rules-go/internal/san"
)

// Game is one logical game. All methods are safe for concurrent use.
type Game struct {
	ID      string
	Created time.Time

	mu      sync.Mutex
	board   *chess.Board
	history []string
	strict  bool
	initial bool
}

// State is a snapshot of a game for reporting.
type State struct {
	ID         string            `json:"id"`
	Grid       []string          `json:"grid"`
	FEN        string            `json:"fen"`
	ToMove     string            `json:"toMove"`
	Status     engine.GameStatus `json:"status"`
	InCheck    bool              `json:"inCheck"`
	History    []string          `json:"history"`
	LegalMoves []string          `json:"legalMoves"`
}

// Event describes one applied move.
type Event struct {
	GameID string            `json:"gameId"`
	Ply    int               `json:"ply"`
	SAN    string            `json:"san"`
	Move   string            `json:"move"`
	FEN    string            `json:"fen"`
	Status engine.GameStatus `json:"status"`
}

// Suggestion is a randomly chosen legal move.
type Suggestion struct {
	SAN  string `json:"san"`
	Move string `json:"move"`
}

// New creates a game over board. With strict set, moves that leave the
// mover's king in check are rejected; otherwise only pseudo-legal checks
// apply. The board must hold exactly one king per side.
func New(id string, board *chess.Board, strict bool) (*Game, error) {
	initial := board == nil
	if initial {
		board = chess.NewInitialBoard()
	}
	if err := engine.ValidatePosition(board); err != nil {
		return nil, err
	}
	return &Game{
		ID:      id,
		Created: time.Now(),
		board:   board.Copy(),
		strict:  strict,
		initial: initial,
	}, nil
}

// Move validates and applies a coordinate move for the side to move.
// A king stepping two files from its home square is read as castling.
func (g *Game) Move(m chess.Move) (Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.apply(castleFromKingStep(g.board, m))
}

// MoveSAN parses s for the side to move and applies it.
func (g *Game) MoveSAN(s string) (Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, err := san.ParseMove(s, g.board, g.board.ToMove)
	if err != nil {
		return Event{}, err
	}
	return g.apply(m)
}

// apply runs with g.mu held.
func (g *Game) apply(m chess.Move) (Event, error) {
	status, err := engine.Status(g.board)
	if err != nil {
		return Event{}, err
	}
	if status.IsTerminal() {
		return Event{}, fmt.Errorf("game is over (%s): %w", status, errors.ErrIllegalMove)
	}
	// Without the king-safety filter a king could be left en prise.
	if g.board.At(m.To).Kind == chess.King {
		return Event{}, fmt.Errorf("%s: kings are never captured: %w", m, errors.ErrIllegalMove)
	}

	if g.strict {
		if err := engine.MoveError(g.board, m); err != nil {
			return Event{}, err
		}
	} else if !engine.MakeMove(g.board.Copy(), m) {
		return Event{}, engine.MoveError(g.board, m)
	}

	text := san.Encode(g.board, m)
	engine.MakeMove(g.board, m)
	g.history = append(g.history, text)

	after, err := engine.Status(g.board)
	if err != nil {
		return Event{}, err
	}
	return Event{
		GameID: g.ID,
		Ply:    len(g.history),
		SAN:    text,
		Move:   m.String(),
		FEN:    engine.BoardToFEN(g.board),
		Status: after,
	}, nil
}

// State returns a snapshot of the game.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	// New checked the kings and apply never lets one be captured, so the
	// precondition error cannot occur here.
	status, _ := engine.Status(g.board)
	moves := engine.LegalMoves(g.board, g.board.ToMove)
	legal := make([]string, 0, len(moves))
	for _, m := range moves {
		legal = append(legal, san.Encode(g.board, m))
	}

	return State{
		ID:         g.ID,
		Grid:       g.board.Grid(),
		FEN:        engine.BoardToFEN(g.board),
		ToMove:     g.board.ToMove.String(),
		Status:     status,
		InCheck:    engine.IsInCheck(g.board, g.board.ToMove),
		History:    append([]string(nil), g.history...),
		LegalMoves: legal,
	}
}

// FromInitialPosition reports whether the game was started without a
// board, from the standard initial position.
func (g *Game) FromInitialPosition() bool {
	return g.initial
}

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}

// Suggest picks a legal move uniformly at random without playing it.
func (g *Game) Suggest(rng *rand.Rand) (Suggestion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, ok := engine.RandomMove(g.board, rng)
	if !ok {
		return Suggestion{}, fmt.Errorf("%s has no legal move: %w", g.board.ToMove, errors.ErrNoCandidate)
	}
	return Suggestion{SAN: san.Encode(g.board, m), Move: m.String()}, nil
}

// castleFromKingStep flags a king move e1-g1, e1-c1, e8-g8 or e8-c8 as
// castling when the king stands on its home square.
func castleFromKingStep(board *chess.Board, m chess.Move) chess.Move {
	if m.Flag != chess.NoFlag {
		return m
	}
	piece := board.At(m.From)
	if piece.Kind != chess.King {
		return m
	}
	for _, kingside := range []bool{true, false} {
		castle := chess.CastleMove(piece.Colour, kingside)
		if m.From == castle.From && m.To == castle.To {
			return castle
		}
	}
	return m
}
