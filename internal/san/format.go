package san

import (
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
)

// Castling literals.
const (
	KingsideCastle  = "O-O"
	QueensideCastle = "O-O-O"
)

// FormatMove renders the move of piece from from to to in SAN without a
// promotion suffix or check marker. Pawn captures carry the origin file;
// other pieces carry the shortest origin hint that singles them out among
// same-kind pieces able to reach to: the file, else the rank, else the full
// square. A king moving two files from the e-file is written as castling.
func FormatMove(from, to chess.Square, piece chess.Piece, board *chess.Board, isCapture bool) string {
	if piece.Kind == chess.King && isCastleShape(from, to, piece.Colour) {
		if to.Col > from.Col {
			return KingsideCastle
		}
		return QueensideCastle
	}

	var sb strings.Builder

	if piece.Kind == chess.Pawn {
		if isCapture {
			sb.WriteByte(from.File())
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		return sb.String()
	}

	sb.WriteByte(piece.Kind.Letter())
	sb.WriteString(disambiguation(board, from, to, piece))
	if isCapture {
		sb.WriteByte('x')
	}
	sb.WriteString(to.String())
	return sb.String()
}

// Encode renders a move for the side to move as full SAN: FormatMove plus
// "=X" for promotions and "+" or "#" when the move gives check or mate.
// A pawn reaching the last rank without a flag is written as promoting to a
// queen, matching what the validator does with it.
func Encode(board *chess.Board, m chess.Move) string {
	piece := board.At(m.From)

	var sb strings.Builder
	switch {
	case m.Flag == chess.CastleKingside:
		sb.WriteString(KingsideCastle)
	case m.Flag == chess.CastleQueenside:
		sb.WriteString(QueensideCastle)
	default:
		capture := !board.At(m.To).IsEmpty()
		sb.WriteString(FormatMove(m.From, m.To, piece, board, capture))
		if piece.Kind == chess.Pawn && m.To.Row == chess.PromotionRow(piece.Colour) {
			promoted := m.Flag.PromotionKind()
			if promoted == chess.NoKind {
				promoted = chess.Queen
			}
			sb.WriteByte('=')
			sb.WriteByte(promoted.Letter())
		}
	}

	sb.WriteString(checkSuffix(board, m, piece.Colour))
	return sb.String()
}

// checkSuffix plays m on a copy of board and reports "#", "+" or "".
func checkSuffix(board *chess.Board, m chess.Move, mover chess.Colour) string {
	after := board.Copy()
	after.ToMove = mover
	if !engine.MakeMove(after, m) {
		return ""
	}
	opponent := mover.Opposite()
	if !engine.IsInCheck(after, opponent) {
		return ""
	}
	if !engine.HasLegalMoves(after, opponent) {
		return "#"
	}
	return "+"
}

// isCastleShape reports whether a king move from to to is a castling move.
func isCastleShape(from, to chess.Square, colour chess.Colour) bool {
	home := chess.HomeRow(colour)
	return from.Row == home && to.Row == home && from.Col == 4 && (to.Col == 6 || to.Col == 2)
}

// disambiguation returns the origin hint needed for piece on from. Rivals
// are other pieces of the same colour and kind with a legal move to to.
func disambiguation(board *chess.Board, from, to chess.Square, piece chess.Piece) string {
	var rivals []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			sq := chess.Sq(row, col)
			if sq == from || board.At(sq) != piece {
				continue
			}
			if !engine.CanMove(board, piece.Colour, sq, to) {
				continue
			}
			if !engine.KeepsKingSafe(board, piece.Colour, chess.NewMove(sq, to)) {
				continue
			}
			rivals = append(rivals, sq)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.Col == from.Col {
			sameFile = true
		}
		if sq.Row == from.Row {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return string(from.File())
	case !sameRank:
		return string(from.Rank())
	default:
		return from.String()
	}
}
