package chess

import "strings"

// MoveFlag marks the special cases a Move may carry.
type MoveFlag int

const (
	NoFlag MoveFlag = iota
	PromoteQueen
	PromoteRook
	PromoteBishop
	PromoteKnight
	CastleKingside
	CastleQueenside
)

// String returns the flag name.
func (f MoveFlag) String() string {
	names := []string{"none", "promotion_q", "promotion_r", "promotion_b", "promotion_n", "castle_kingside", "castle_queenside"}
	if f >= 0 && int(f) < len(names) {
		return names[f]
	}
	return "unknown"
}

// IsPromotion reports whether the flag requests a promotion.
func (f MoveFlag) IsPromotion() bool {
	return f >= PromoteQueen && f <= PromoteKnight
}

// IsCastle reports whether the flag requests castling.
func (f MoveFlag) IsCastle() bool {
	return f == CastleKingside || f == CastleQueenside
}

// PromotionKind returns the piece kind a promotion flag produces, or NoKind.
func (f MoveFlag) PromotionKind() Kind {
	switch f {
	case PromoteQueen:
		return Queen
	case PromoteRook:
		return Rook
	case PromoteBishop:
		return Bishop
	case PromoteKnight:
		return Knight
	}
	return NoKind
}

// PromotionFlag returns the flag promoting to kind, or NoFlag for kinds a
// pawn cannot promote to.
func PromotionFlag(kind Kind) MoveFlag {
	switch kind {
	case Queen:
		return PromoteQueen
	case Rook:
		return PromoteRook
	case Bishop:
		return PromoteBishop
	case Knight:
		return PromoteKnight
	}
	return NoFlag
}

// Move is a proposed relocation of one piece. It is ephemeral: built by a
// caller or the SAN parser and consumed by the move validator.
type Move struct {
	From Square
	To   Square
	Flag MoveFlag
}

// NewMove creates an unflagged move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// CastleMove returns the fixed king move for a castle of the given colour.
func CastleMove(colour Colour, kingside bool) Move {
	row := HomeRow(colour)
	if kingside {
		return Move{From: Sq(row, 4), To: Sq(row, 6), Flag: CastleKingside}
	}
	return Move{From: Sq(row, 4), To: Sq(row, 2), Flag: CastleQueenside}
}

// String returns coordinate notation: "e2e4", "e7e8q".
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if k := m.Flag.PromotionKind(); k != NoKind {
		sb.WriteByte(k.Letter() + ('a' - 'A'))
	}
	return sb.String()
}

// ParseCoordinate parses coordinate notation "e2e4" or "e7e8q". A king
// moving two files from the e-file of its home rank is not flagged here;
// the move validator recognises castling from the flag only.
func ParseCoordinate(s string) (Move, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, false
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return Move{}, false
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return Move{}, false
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Flag = PromotionFlag(KindFromLetter(s[4]))
		if m.Flag == NoFlag {
			return Move{}, false
		}
	}
	return m, true
}
