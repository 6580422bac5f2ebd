package engine

import "github.com/QuadDarv1ne/chess-rules-go/internal/chess"

// promotionFlags are generated, in this order, for every pawn move onto the
// last rank.
var promotionFlags = []chess.MoveFlag{
	chess.PromoteQueen, chess.PromoteRook, chess.PromoteBishop, chess.PromoteKnight,
}

// PseudoLegalMoves lists every move of colour that passes the validator's
// checks, without the king-safety filter. Castling moves are included when
// the king and rook stand on their home squares with nothing between them.
func PseudoLegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	forEachPseudoLegal(board, colour, func(m chess.Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// LegalMoves lists every fully legal move of colour: pseudo-legal and not
// leaving colour's king in check.
func LegalMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	forEachLegal(board, colour, func(m chess.Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	found := false
	forEachLegal(board, colour, func(chess.Move) bool {
		found = true
		return false
	})
	return found
}

// LegalMovesFrom lists the fully legal moves of the piece on from.
func LegalMovesFrom(board *chess.Board, from chess.Square) []chess.Move {
	piece := board.At(from)
	if piece.IsEmpty() {
		return nil
	}
	var moves []chess.Move
	forEachLegal(board, piece.Colour, func(m chess.Move) bool {
		if m.From == from {
			moves = append(moves, m)
		}
		return true
	})
	return moves
}

// forEachLegal calls fn for each fully legal move until fn returns false.
func forEachLegal(board *chess.Board, colour chess.Colour, fn func(chess.Move) bool) {
	forEachPseudoLegal(board, colour, func(m chess.Move) bool {
		if m.Flag.IsCastle() && !castleIsSafe(board, colour, m.Flag == chess.CastleKingside) {
			return true
		}
		if !leavesKingSafe(board, colour, m) {
			return true
		}
		return fn(m)
	})
}

// forEachPseudoLegal tries every destination square for every piece of
// colour and calls fn for each pseudo-legal move until fn returns false.
func forEachPseudoLegal(board *chess.Board, colour chess.Colour, fn func(chess.Move) bool) {
	for fromRow := 0; fromRow < chess.BoardSize; fromRow++ {
		for fromCol := 0; fromCol < chess.BoardSize; fromCol++ {
			from := chess.Sq(fromRow, fromCol)
			piece := board.At(from)
			if !piece.BelongsTo(colour) {
				continue
			}

			for toRow := 0; toRow < chess.BoardSize; toRow++ {
				for toCol := 0; toCol < chess.BoardSize; toCol++ {
					to := chess.Sq(toRow, toCol)
					if pseudoLegalReason(board, colour, from, to) != "" {
						continue
					}
					if piece.Kind == chess.Pawn && toRow == chess.PromotionRow(colour) {
						for _, flag := range promotionFlags {
							if !fn(chess.Move{From: from, To: to, Flag: flag}) {
								return
							}
						}
						continue
					}
					if !fn(chess.NewMove(from, to)) {
						return
					}
				}
			}
		}
	}

	for _, kingside := range []bool{true, false} {
		m := chess.CastleMove(colour, kingside)
		if castleReason(board, colour, m) == "" {
			if !fn(m) {
				return
			}
		}
	}
}

// leavesKingSafe plays a pseudo-legal move for colour on the board, tests
// whether colour's king is attacked, and restores the board.
func leavesKingSafe(board *chess.Board, colour chess.Colour, m chess.Move) bool {
	saved := board.SaveState()
	defer board.RestoreState(saved)

	board.ToMove = colour
	if !applyValidated(board, m) {
		return false
	}
	return !IsInCheck(board, colour)
}
