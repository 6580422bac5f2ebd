package engine

import "github.com/QuadDarv1ne/chess-rules-go/internal/chess"

// Castling uses fixed squares: the king on the e-file of its home rank and
// the rook in the corner. Castling rights are not tracked, so a king or rook
// that has moved away and back may still castle.

// castleSquares returns king from/to and rook from/to for a castle.
func castleSquares(colour chess.Colour, kingside bool) (kingFrom, kingTo, rookFrom, rookTo chess.Square) {
	row := chess.HomeRow(colour)
	kingFrom = chess.Sq(row, 4)
	if kingside {
		return kingFrom, chess.Sq(row, 6), chess.Sq(row, 7), chess.Sq(row, 5)
	}
	return kingFrom, chess.Sq(row, 2), chess.Sq(row, 0), chess.Sq(row, 3)
}

// castleReason returns why a castling move is not pseudo-legal, or "".
func castleReason(board *chess.Board, colour chess.Colour, m chess.Move) string {
	kingside := m.Flag == chess.CastleKingside
	kingFrom, kingTo, rookFrom, _ := castleSquares(colour, kingside)

	if m.From != kingFrom || m.To != kingTo {
		return "castling moves the king from the e-file to the c- or g-file"
	}
	if !board.At(kingFrom).Is(colour, chess.King) {
		return "king is not on its home square"
	}
	if !board.At(rookFrom).Is(colour, chess.Rook) {
		return "rook is not on its home square"
	}
	if !IsStraightPath(board, kingFrom, rookFrom) {
		return "squares between king and rook are occupied"
	}
	return ""
}

// castleIsSafe reports whether the king is not in check and does not pass
// through an attacked square. The landing square is covered by the general
// king-safety test.
func castleIsSafe(board *chess.Board, colour chess.Colour, kingside bool) bool {
	kingFrom, _, _, rookTo := castleSquares(colour, kingside)
	enemy := colour.Opposite()
	return !IsSquareAttacked(board, kingFrom, enemy) && !IsSquareAttacked(board, rookTo, enemy)
}

// applyCastle applies a castling move for the side to move.
func applyCastle(board *chess.Board, kingside bool) bool {
	colour := board.ToMove
	kingFrom, kingTo, rookFrom, rookTo := castleSquares(colour, kingside)

	// Move rook
	rook := board.At(rookFrom)
	board.Set(rookFrom, chess.Empty)
	board.Set(rookTo, rook)

	// Move king and pass the turn
	return board.ApplyMove(kingFrom, kingTo) == nil
}
