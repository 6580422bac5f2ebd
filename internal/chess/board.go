package chess

import "github.com/QuadDarv1ne/chess-rules-go/internal/errors"

// Board holds piece placement and whose turn it is. It is plain data with
// mutation primitives; legality is the engine's concern.
type Board struct {
	// Cells[row][col], row 0 = rank 8.
	Cells [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour
}

// NewBoard creates an empty board with White to move.
func NewBoard() *Board {
	return &Board{ToMove: White}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Cells = [BoardSize][BoardSize]Piece{}

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Cells[0][col] = B(backRank[col])
		b.Cells[1][col] = B(Pawn)
		b.Cells[6][col] = W(Pawn)
		b.Cells[7][col] = W(backRank[col])
	}

	b.ToMove = White
}

// SetPosition replaces the whole board state. No legality check is made.
func (b *Board) SetPosition(cells [BoardSize][BoardSize]Piece, toMove Colour) {
	b.Cells = cells
	b.ToMove = toMove
}

// At returns the piece on sq, or Empty when sq is off the board.
func (b *Board) At(sq Square) Piece {
	if !sq.OnBoard() {
		return Empty
	}
	return b.Cells[sq.Row][sq.Col]
}

// PieceAt returns the piece on sq. Off-board squares are a precondition error.
func (b *Board) PieceAt(sq Square) (Piece, error) {
	if !sq.OnBoard() {
		return Empty, errors.Precondition("Board.PieceAt", "square %s is off the board", sq)
	}
	return b.Cells[sq.Row][sq.Col], nil
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if sq.OnBoard() {
		b.Cells[sq.Row][sq.Col] = p
	}
}

// ApplyMove relocates the piece on from to to, clears from and passes the
// turn. It does not check legality. Off-board squares leave the board
// untouched and return a PreconditionError.
func (b *Board) ApplyMove(from, to Square) error {
	if !from.OnBoard() {
		return errors.Precondition("Board.ApplyMove", "source %s is off the board", from)
	}
	if !to.OnBoard() {
		return errors.Precondition("Board.ApplyMove", "destination %s is off the board", to)
	}
	piece := b.Cells[from.Row][from.Col]
	b.Cells[from.Row][from.Col] = Empty
	b.Cells[to.Row][to.Col] = piece
	b.ToMove = b.ToMove.Opposite()
	return nil
}

// KingSquare returns the square of the first king of colour found, scanning
// from row 0.
func (b *Board) KingSquare(colour Colour) (Square, bool) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col].Is(colour, King) {
				return Sq(row, col), true
			}
		}
	}
	return Square{}, false
}

// Count returns how many pieces of colour and kind are on the board.
func (b *Board) Count(colour Colour, kind Kind) int {
	n := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col].Is(colour, kind) {
				n++
			}
		}
	}
	return n
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// BoardState captures all mutable board state for save/restore operations.
// This is cheaper than Copy() when a move is tried and then taken back.
type BoardState struct {
	Cells  [BoardSize][BoardSize]Piece
	ToMove Colour
}

// SaveState captures the current board state for later restoration.
func (b *Board) SaveState() BoardState {
	return BoardState{
		Cells:  b.Cells,
		ToMove: b.ToMove,
	}
}

// RestoreState restores the board to a previously saved state.
func (b *Board) RestoreState(s BoardState) {
	b.Cells = s.Cells
	b.ToMove = s.ToMove
}
