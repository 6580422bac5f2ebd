// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// IsLegal reports whether the side to move may move the piece on from to to.
// The checks run in order and the first failure rejects the move:
// same square, board bounds, ownership, own-piece capture, piece geometry.
//
// IsLegal is pseudo-legal: it does not ask whether the mover's own king is
// left in check. Use IsFullyLegal for that.
func IsLegal(board *chess.Board, from, to chess.Square) bool {
	return pseudoLegalReason(board, board.ToMove, from, to) == ""
}

// MakeMove validates m for the side to move and applies it on success.
// Flags select castling and promotion; a pawn reaching the last rank without
// a promotion flag becomes a queen. Illegal moves return false and leave the
// board unchanged. Like IsLegal, MakeMove does not reject self-check.
func MakeMove(board *chess.Board, m chess.Move) bool {
	return moveReason(board, board.ToMove, m) == "" && applyValidated(board, m)
}

// IsFullyLegal reports whether m is pseudo-legal for the side to move and
// does not leave the mover's king in check. Castling additionally may not
// start from, pass through or land on an attacked square.
func IsFullyLegal(board *chess.Board, m chess.Move) bool {
	return MoveError(board, m) == nil
}

// MakeLegalMove applies m only if it is fully legal.
func MakeLegalMove(board *chess.Board, m chess.Move) bool {
	if !IsFullyLegal(board, m) {
		return false
	}
	return applyValidated(board, m)
}

// CanMove is IsLegal for an explicit colour rather than the side to move.
func CanMove(board *chess.Board, colour chess.Colour, from, to chess.Square) bool {
	return pseudoLegalReason(board, colour, from, to) == ""
}

// KeepsKingSafe reports whether colour's king is out of check after the
// pseudo-legal move m. The board is left as it was.
func KeepsKingSafe(board *chess.Board, colour chess.Colour, m chess.Move) bool {
	return leavesKingSafe(board, colour, m)
}

// MoveError explains why m is not fully legal, or returns nil. Errors wrap
// errors.ErrIllegalMove.
func MoveError(board *chess.Board, m chess.Move) error {
	colour := board.ToMove
	if reason := moveReason(board, colour, m); reason != "" {
		return fmt.Errorf("%s: %s: %w", m, reason, errors.ErrIllegalMove)
	}
	if m.Flag.IsCastle() && !castleIsSafe(board, colour, m.Flag == chess.CastleKingside) {
		return fmt.Errorf("%s: king may not castle out of, through or into check: %w", m, errors.ErrIllegalMove)
	}
	if !leavesKingSafe(board, colour, m) {
		return fmt.Errorf("%s: leaves the %s king in check: %w", m, colour, errors.ErrIllegalMove)
	}
	return nil
}

// moveReason returns why m is not pseudo-legal for colour, or "".
func moveReason(board *chess.Board, colour chess.Colour, m chess.Move) string {
	if m.Flag.IsCastle() {
		return castleReason(board, colour, m)
	}
	if reason := pseudoLegalReason(board, colour, m.From, m.To); reason != "" {
		return reason
	}
	if m.Flag.IsPromotion() {
		if board.At(m.From).Kind != chess.Pawn {
			return "only pawns promote"
		}
		if m.To.Row != chess.PromotionRow(colour) {
			return "promotion is only possible on the last rank"
		}
	} else if m.Flag != chess.NoFlag {
		return "unknown move flag"
	}
	return ""
}

// pseudoLegalReason applies the ordered checks of IsLegal for colour.
func pseudoLegalReason(board *chess.Board, colour chess.Colour, from, to chess.Square) string {
	if from == to {
		return "source and destination are the same square"
	}
	if !from.OnBoard() || !to.OnBoard() {
		return "square is off the board"
	}

	piece := board.At(from)
	if piece.IsEmpty() {
		return fmt.Sprintf("no piece on %s", from)
	}
	if piece.Colour != colour {
		return fmt.Sprintf("piece on %s does not belong to %s", from, colour)
	}

	target := board.At(to)
	if target.BelongsTo(colour) {
		return fmt.Sprintf("%s is occupied by an own piece", to)
	}

	if !CanReach(board, piece, from, to) {
		return fmt.Sprintf("%s cannot move from %s to %s", piece.Kind, from, to)
	}
	return ""
}

// applyValidated performs an already validated move.
func applyValidated(board *chess.Board, m chess.Move) bool {
	if m.Flag.IsCastle() {
		return applyCastle(board, m.Flag == chess.CastleKingside)
	}

	colour := board.ToMove
	piece := board.At(m.From)
	if err := board.ApplyMove(m.From, m.To); err != nil {
		return false
	}

	if piece.Kind == chess.Pawn && m.To.Row == chess.PromotionRow(colour) {
		promoted := m.Flag.PromotionKind()
		if promoted == chess.NoKind {
			promoted = chess.Queen // Default to queen
		}
		board.Set(m.To, chess.Piece{Colour: colour, Kind: promoted})
	}
	return true
}
