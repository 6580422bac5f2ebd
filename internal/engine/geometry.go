package engine

import "github.com/QuadDarv1ne/chess-rules-go/internal/chess"

// Geometry predicates answer "can a piece of this kind get from A to B given
// the occupancy of the board". They are pure: no board state is modified and
// side-to-move is not consulted. Callers exclude from == to.

// IsStraightPath reports whether from and to share a row or column and every
// square strictly between them is empty.
func IsStraightPath(board *chess.Board, from, to chess.Square) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return isLineClear(board, from, to)
}

// IsDiagonalPath reports whether from and to share a diagonal and every
// square strictly between them is empty.
func IsDiagonalPath(board *chess.Board, from, to chess.Square) bool {
	if rows, cols := distance(from, to); rows != cols {
		return false
	}
	return isLineClear(board, from, to)
}

// isLineClear walks from one square towards another along a rank, file or
// diagonal and reports whether the intervening squares are empty.
func isLineClear(board *chess.Board, from, to chess.Square) bool {
	rowDir, colDir := direction(from, to)

	sq := from.Offset(rowDir, colDir)
	for sq != to {
		if !board.At(sq).IsEmpty() {
			return false
		}
		sq = sq.Offset(rowDir, colDir)
	}
	return true
}

// PawnCanMove reports whether a pawn of the given colour can go from from to
// to. With isCapture false it may step one square forward onto an empty
// square, or two from its start rank when both squares are empty. With
// isCapture true it may only step one square diagonally forward; whether an
// enemy piece is actually there is the caller's decision.
func PawnCanMove(board *chess.Board, colour chess.Colour, from, to chess.Square, isCapture bool) bool {
	dir := chess.ColourOffset(colour)
	rowDiff := to.Row - from.Row
	_, colDiff := distance(from, to)

	if isCapture {
		return rowDiff == dir && colDiff == 1
	}

	if colDiff != 0 {
		return false
	}
	switch rowDiff {
	case dir:
		return board.At(to).IsEmpty()
	case 2 * dir:
		if from.Row != chess.PawnStartRow(colour) {
			return false
		}
		return board.At(from.Offset(dir, 0)).IsEmpty() && board.At(to).IsEmpty()
	}
	return false
}

// KnightCanMove reports whether from and to are a knight's jump apart.
func KnightCanMove(from, to chess.Square) bool {
	rowDiff, colDiff := distance(from, to)
	return (rowDiff == 1 && colDiff == 2) || (rowDiff == 2 && colDiff == 1)
}

// KingCanMove reports whether to is one step from from. Castling is not a
// king move here; it is handled from the move flag by the validator.
func KingCanMove(from, to chess.Square) bool {
	rowDiff, colDiff := distance(from, to)
	return rowDiff <= 1 && colDiff <= 1 && (rowDiff+colDiff) > 0
}

// CanReach dispatches to the geometry rule of piece. For pawns the capture
// branch is chosen by whether to is occupied.
func CanReach(board *chess.Board, piece chess.Piece, from, to chess.Square) bool {
	if from == to {
		return false
	}

	switch piece.Kind {
	case chess.Pawn:
		return PawnCanMove(board, piece.Colour, from, to, !board.At(to).IsEmpty())
	case chess.Knight:
		return KnightCanMove(from, to)
	case chess.Bishop:
		return IsDiagonalPath(board, from, to)
	case chess.Rook:
		return IsStraightPath(board, from, to)
	case chess.Queen:
		return IsStraightPath(board, from, to) || IsDiagonalPath(board, from, to)
	case chess.King:
		return KingCanMove(from, to)
	}
	return false
}

// canAttack reports whether piece on from could capture on target,
// regardless of what occupies target.
func canAttack(board *chess.Board, piece chess.Piece, from, target chess.Square) bool {
	if piece.Kind == chess.Pawn {
		return PawnCanMove(board, piece.Colour, from, target, true)
	}
	return CanReach(board, piece, from, target)
}
