// Package san converts between Standard Algebraic Notation and board moves.
//
// SAN squares name files a-h and ranks 1-8. Conversion to the board's
// row/column squares happens here through chess.ParseSquare and
// Square.String, so no other package needs to know about ranks.
package san

import (
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// hint restricts candidate origin squares. Zero fields match anything.
type hint struct {
	col, row int
	hasCol   bool
	hasRow   bool
}

func (h hint) matches(sq chess.Square) bool {
	if h.hasCol && sq.Col != h.col {
		return false
	}
	if h.hasRow && sq.Row != h.row {
		return false
	}
	return true
}

// isAnnotation returns true for trailing check and commentary characters.
func isAnnotation(c byte) bool {
	return c == '+' || c == '#' || c == '!' || c == '?'
}

// isCastling maps the castling literals to their side of the board.
func isCastling(text string) (kingside, ok bool) {
	switch text {
	case "O-O", "0-0":
		return true, true
	case "O-O-O", "0-0-0":
		return false, true
	}
	return false, false
}

// pieceKind returns the kind named by a leading uppercase piece letter.
func pieceKind(c byte) (chess.Kind, bool) {
	switch c {
	case 'K':
		return chess.King, true
	case 'Q':
		return chess.Queen, true
	case 'R':
		return chess.Rook, true
	case 'B':
		return chess.Bishop, true
	case 'N':
		return chess.Knight, true
	}
	return chess.NoKind, false
}

// parseHint decodes the disambiguation between piece letter and destination.
func parseHint(s string) (hint, bool) {
	var h hint
	switch len(s) {
	case 0:
		return h, true
	case 1:
		c := s[0]
		switch {
		case c >= chess.FirstCol && c <= chess.LastCol:
			h.col, h.hasCol = chess.ColFromFile(c), true
		case c >= chess.FirstRank && c <= chess.LastRank:
			h.row, h.hasRow = chess.RowFromRank(c), true
		default:
			return h, false
		}
		return h, true
	case 2:
		sq, ok := chess.ParseSquare(s)
		if !ok {
			return h, false
		}
		return hint{col: sq.Col, row: sq.Row, hasCol: true, hasRow: true}, true
	}
	return h, false
}

// ParseMove converts a SAN string such as "Nf3", "exd5", "e8=Q+", "R1e2" or
// "O-O" into a move for side on board. Exactly one piece of side must be
// able to make the move. When several pieces could reach the destination,
// those whose move would leave their own king in check are discarded first.
// An "x" needs a piece on the destination, and a pawn only captures with it.
//
// Errors wrap errors.ErrInvalidSAN for malformed input,
// errors.ErrNoCandidate when no piece fits, and errors.ErrAmbiguousMove when
// more than one does.
func ParseMove(s string, board *chess.Board, side chess.Colour) (chess.Move, error) {
	text := strings.TrimSpace(s)
	for len(text) > 0 && isAnnotation(text[len(text)-1]) {
		text = text[:len(text)-1]
	}
	if text == "" {
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q", s)
	}

	if kingside, ok := isCastling(text); ok {
		return chess.CastleMove(side, kingside), nil
	}

	flag := chess.NoFlag
	if idx := strings.IndexByte(text, '='); idx >= 0 {
		promo := text[idx+1:]
		kind, ok := chess.NoKind, false
		if len(promo) == 1 {
			kind, ok = pieceKind(promo[0])
		}
		flag = chess.PromotionFlag(kind)
		if !ok || flag == chess.NoFlag {
			return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q: bad promotion piece", s)
		}
		text = text[:idx]
	}

	isCapture := strings.Contains(text, "x")
	text = strings.ReplaceAll(text, "x", "")

	kind := chess.Pawn
	if len(text) > 0 {
		if k, ok := pieceKind(text[0]); ok {
			kind = k
			text = text[1:]
		}
	}
	if flag != chess.NoFlag && kind != chess.Pawn {
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q: only pawns promote", s)
	}

	if len(text) < 2 {
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q: missing destination", s)
	}
	to, ok := chess.ParseSquare(text[len(text)-2:])
	if !ok {
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q: bad destination", s)
	}
	h, ok := parseHint(text[:len(text)-2])
	if !ok {
		return chess.Move{}, errors.Wrapf(errors.ErrInvalidSAN, "%q: bad disambiguation", s)
	}

	if isCapture && board.At(to).IsEmpty() {
		return chess.Move{}, errors.Wrapf(errors.ErrNoCandidate, "%q: nothing to capture on %s", s, to)
	}

	candidates := findCandidates(board, side, kind, to, h, isCapture)
	if len(candidates) > 1 {
		candidates = keepKingSafe(board, side, to, candidates)
	}

	switch len(candidates) {
	case 0:
		return chess.Move{}, errors.Wrapf(errors.ErrNoCandidate, "%q", s)
	case 1:
		return chess.Move{From: candidates[0], To: to, Flag: flag}, nil
	default:
		return chess.Move{}, errors.Wrapf(errors.ErrAmbiguousMove, "%q: %d pieces can reach %s", s, len(candidates), to)
	}
}

// findCandidates lists squares holding a kind piece of side that matches h
// and can move to to. Pawns take the capture path only when isCapture is
// set, so "d5" never means exd5.
func findCandidates(board *chess.Board, side chess.Colour, kind chess.Kind, to chess.Square, h hint, isCapture bool) []chess.Square {
	var out []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			from := chess.Sq(row, col)
			if !board.At(from).Is(side, kind) || !h.matches(from) {
				continue
			}
			if kind == chess.Pawn && !engine.PawnCanMove(board, side, from, to, isCapture) {
				continue
			}
			if engine.CanMove(board, side, from, to) {
				out = append(out, from)
			}
		}
	}
	return out
}

// keepKingSafe drops candidates whose move would expose their own king.
func keepKingSafe(board *chess.Board, side chess.Colour, to chess.Square, candidates []chess.Square) []chess.Square {
	safe := candidates[:0:0]
	for _, from := range candidates {
		if engine.KeepsKingSafe(board, side, chess.NewMove(from, to)) {
			safe = append(safe, from)
		}
	}
	return safe
}
