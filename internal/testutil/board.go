package testutil

import (
	"strings"
	"testing"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
)

// Positions used across the engine, SAN and game tests. Each is a boundary
// grid, row 0 being rank 8.
var (
	// BackRankMate: white rook on e1 about to play Re8# against a king on g8
	// boxed in by its own f7/g7/h7 pawns.
	BackRankMate = []string{
		"......k.",
		".....ppp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....R.K.",
	}

	// StalemateKQ: white king h6, queen g6, black king h8, black to move.
	StalemateKQ = []string{
		".......k",
		"........",
		"......QK",
		"........",
		"........",
		"........",
		"........",
		"........",
	}

	// TwoRooks: white king on e1 between rooks on a1 and h1, free to castle
	// either way.
	TwoRooks = []string{
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K..R",
	}
)

// MustBoard builds a board from a grid, failing the test on error.
func MustBoard(t testing.TB, rows []string, toMove chess.Colour) *chess.Board {
	t.Helper()
	board, err := chess.NewBoardFromGrid(rows, toMove)
	if err != nil {
		t.Fatalf("NewBoardFromGrid() error: %v", err)
	}
	return board
}

// MustMoves parses a space-separated list of coordinate moves such as
// "f2f3 e7e5 g2g4 d8h4", failing the test on a malformed entry.
func MustMoves(t testing.TB, list string) []chess.Move {
	t.Helper()
	var moves []chess.Move
	for _, field := range strings.Fields(list) {
		m, ok := chess.ParseCoordinate(field)
		if !ok {
			t.Fatalf("ParseCoordinate(%q) failed", field)
		}
		moves = append(moves, m)
	}
	return moves
}

// Sq parses an algebraic square, failing the test on error.
func Sq(t testing.TB, s string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(s)
	if !ok {
		t.Fatalf("ParseSquare(%q) failed", s)
	}
	return sq
}
