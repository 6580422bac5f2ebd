// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour accepts "w", "white", "b" or "black" in any case.
func ParseColour(s string) (Colour, bool) {
	switch s {
	case "w", "W", "white", "White", "WHITE":
		return White, true
	case "b", "B", "black", "Black", "BLACK":
		return Black, true
	}
	return White, false
}

// Kind represents a chess piece type without colour.
type Kind int

const (
	NoKind Kind = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter of a kind, or '.' for NoKind.
func (k Kind) Letter() byte {
	letters := []byte{'.', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter (either case) to a Kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return NoKind
	}
}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Colour Colour
	Kind   Kind
}

// Empty is the value held by unoccupied cells.
var Empty = Piece{}

// W creates a white piece.
func W(kind Kind) Piece {
	return Piece{Colour: White, Kind: kind}
}

// B creates a black piece.
func B(kind Kind) Piece {
	return Piece{Colour: Black, Kind: kind}
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Is reports whether p is a piece of the given colour and kind.
func (p Piece) Is(colour Colour, kind Kind) bool {
	return p.Kind == kind && p.Colour == colour && kind != NoKind
}

// BelongsTo reports whether p is a piece of the given colour.
func (p Piece) BelongsTo(colour Colour) bool {
	return p.Kind != NoKind && p.Colour == colour
}

// Letter returns the grid letter: uppercase for White, lowercase for Black, '.' when empty.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight" or "Empty".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// PieceFromLetter converts a grid letter to a Piece. '.' is Empty.
// The second result is false for unknown characters.
func PieceFromLetter(c byte) (Piece, bool) {
	if c == '.' {
		return Empty, true
	}
	kind := KindFromLetter(c)
	if kind == NoKind {
		return Empty, false
	}
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
	}
	return Piece{Colour: colour, Kind: kind}, true
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	RankBase  = '1'
	ColBase   = 'a'
	FirstRank = RankBase
	LastRank  = RankBase + BoardSize - 1
	FirstCol  = ColBase
	LastCol   = ColBase + BoardSize - 1
)

// ColourOffset returns the row delta of a pawn step: -1 for White (towards
// row 0, rank 8), +1 for Black.
func ColourOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// HomeRow returns the back rank row of a colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return 7
	}
	return 0
}

// PawnStartRow returns the row pawns of a colour start on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return 6
	}
	return 1
}

// PromotionRow returns the row on which a pawn of a colour promotes.
func PromotionRow(colour Colour) int {
	return HomeRow(colour.Opposite())
}
