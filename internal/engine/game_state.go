package engine

import (
	"fmt"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// GameStatus labels a position from the point of view of the side to move.
type GameStatus int

const (
	Ongoing GameStatus = iota
	Check
	Checkmate
	Stalemate
)

// String returns the lower-case status name.
func (s GameStatus) String() string {
	switch s {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *GameStatus) UnmarshalText(text []byte) error {
	for _, st := range []GameStatus{Ongoing, Check, Checkmate, Stalemate} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown game status %q", text)
}

// IsTerminal reports whether no legal move remains.
func (s GameStatus) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// IsCheckmate returns true if colour is in check and has no legal moves.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if colour is not in check and has no legal moves.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// Status classifies the position for the side to move. The board must hold
// exactly one king of each colour.
func Status(board *chess.Board) (GameStatus, error) {
	if err := ValidatePosition(board); err != nil {
		return Ongoing, err
	}

	colour := board.ToMove
	inCheck := IsInCheck(board, colour)
	hasMoves := HasLegalMoves(board, colour)

	switch {
	case inCheck && !hasMoves:
		return Checkmate, nil
	case !hasMoves:
		return Stalemate, nil
	case inCheck:
		return Check, nil
	default:
		return Ongoing, nil
	}
}

// ValidatePosition checks the structural precondition of the check and
// terminal-state queries: exactly one king per side.
func ValidatePosition(board *chess.Board) error {
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := board.Count(colour, chess.King); n != 1 {
			return errors.Precondition("ValidatePosition", "%d %s kings on the board, want 1", n, colour)
		}
	}
	return nil
}
