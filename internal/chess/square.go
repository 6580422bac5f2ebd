package chess

import "fmt"

// Square addresses a board cell. Row 0 is rank 8 (the top of the board as
// White sees it) and row 7 is rank 1; Col 0 is the a-file and col 7 the h-file.
// Every package uses this single convention; ranks and files only appear in
// algebraic strings.
type Square struct {
	Row int
	Col int
}

// Sq builds a Square from row and column indices.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard reports whether the square lies inside the 8x8 board.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// File returns the file letter 'a'..'h'.
func (s Square) File() byte {
	return byte(ColBase + s.Col)
}

// Rank returns the rank digit '1'..'8'.
func (s Square) Rank() byte {
	return byte(RankBase + BoardSize - 1 - s.Row)
}

// String returns algebraic form such as "e4", or "(r,c)" for off-board squares.
func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{s.File(), s.Rank()})
}

// Offset returns the square dr rows and dc columns away.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// ColFromFile converts a file letter to a column index, or -1.
func ColFromFile(file byte) int {
	if file < FirstCol || file > LastCol {
		return -1
	}
	return int(file - ColBase)
}

// RowFromRank converts a rank digit to a row index, or -1.
func RowFromRank(rank byte) int {
	if rank < FirstRank || rank > LastRank {
		return -1
	}
	return BoardSize - 1 - int(rank-RankBase)
}

// ParseSquare converts algebraic notation ("e4") to a Square.
func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 {
		return Square{}, false
	}
	col := ColFromFile(s[0])
	row := RowFromRank(s[1])
	if col < 0 || row < 0 {
		return Square{}, false
	}
	return Square{Row: row, Col: col}, true
}

// MustSquare is ParseSquare for literals known to be valid; it panics otherwise.
func MustSquare(s string) Square {
	sq, ok := ParseSquare(s)
	if !ok {
		panic("chess: invalid square " + s)
	}
	return sq
}
