package engine

import "github.com/QuadDarv1ne/chess-rules-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked by any enemy
// piece. A board without a king of that colour is reported as not in check;
// use ValidatePosition to reject such boards.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingSq, ok := board.KingSquare(colour)
	if !ok {
		return false // No king found
	}
	return IsSquareAttacked(board, kingSq, colour.Opposite())
}

// IsSquareAttacked returns true if any piece of byColour could capture on sq,
// treating that piece as the moving side.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Cells[row][col]
			if !piece.BelongsTo(byColour) {
				continue
			}
			if canAttack(board, piece, chess.Sq(row, col), sq) {
				return true
			}
		}
	}
	return false
}

// Attackers lists the squares of byColour pieces attacking sq.
func Attackers(board *chess.Board, sq chess.Square, byColour chess.Colour) []chess.Square {
	var out []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Cells[row][col]
			if piece.BelongsTo(byColour) && canAttack(board, piece, chess.Sq(row, col), sq) {
				out = append(out, chess.Sq(row, col))
			}
		}
	}
	return out
}
