package chess

import (
	"fmt"
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// ParseGrid converts the boundary grid format into cells. The grid is 8 rows
// of 8 characters, row 0 being rank 8: '.' is empty, uppercase letters are
// White pieces and lowercase letters Black pieces (KQRBNP).
func ParseGrid(rows []string) ([BoardSize][BoardSize]Piece, error) {
	var cells [BoardSize][BoardSize]Piece
	if len(rows) != BoardSize {
		return cells, fmt.Errorf("%d rows, want %d: %w", len(rows), BoardSize, errors.ErrInvalidGrid)
	}
	for row, line := range rows {
		if len(line) != BoardSize {
			return cells, fmt.Errorf("row %d has %d cells, want %d: %w", row, len(line), BoardSize, errors.ErrInvalidGrid)
		}
		for col := 0; col < BoardSize; col++ {
			p, ok := PieceFromLetter(line[col])
			if !ok {
				return cells, fmt.Errorf("row %d col %d: invalid piece character %q: %w", row, col, line[col], errors.ErrInvalidGrid)
			}
			cells[row][col] = p
		}
	}
	return cells, nil
}

// NewBoardFromGrid builds a board from the boundary grid format.
func NewBoardFromGrid(rows []string, toMove Colour) (*Board, error) {
	cells, err := ParseGrid(rows)
	if err != nil {
		return nil, err
	}
	b := NewBoard()
	b.SetPosition(cells, toMove)
	return b, nil
}

// Grid returns the board in the boundary grid format.
func (b *Board) Grid() []string {
	rows := make([]string, BoardSize)
	buf := make([]byte, BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			buf[col] = b.Cells[row][col].Letter()
		}
		rows[row] = string(buf)
	}
	return rows
}

// String renders the grid one row per line followed by the side to move.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Grid() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	sb.WriteString(b.ToMove.String())
	sb.WriteString(" to move\n")
	return sb.String()
}
