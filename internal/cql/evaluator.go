package cql

import (
	"fmt"
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// pieceValues is the usual material count; kings are not counted.
var pieceValues = map[chess.Kind]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// Evaluator evaluates queries against one position.
type Evaluator struct {
	board *chess.Board
}

// NewEvaluator creates an evaluator for board. The board is read, never
// modified, and may change between calls to Evaluate.
func NewEvaluator(board *chess.Board) *Evaluator {
	return &Evaluator{board: board}
}

// Evaluate reports whether the position matches node.
func (e *Evaluator) Evaluate(node Node) bool {
	switch n := node.(type) {
	case *FilterNode:
		return e.evalFilter(n)
	case *LogicalNode:
		return e.evalLogical(n)
	case *ComparisonNode:
		return e.evalComparison(n)
	}
	return false
}

func (e *Evaluator) evalFilter(f *FilterNode) bool {
	b := e.board
	switch f.Name {
	case "check":
		return engine.IsInCheck(b, b.ToMove)
	case "mate":
		return engine.IsCheckmate(b, b.ToMove)
	case "stalemate":
		return engine.IsStalemate(b, b.ToMove)
	case "wtm":
		return b.ToMove == chess.White
	case "btm":
		return b.ToMove == chess.Black
	case "piece":
		return e.evalPiece(f.Args)
	case "attack":
		return e.evalAttack(f.Args)
	case "flipcolor":
		return e.Evaluate(f.Args[0]) || NewEvaluator(flipColour(b)).Evaluate(f.Args[0])
	}
	return false
}

func (e *Evaluator) evalLogical(l *LogicalNode) bool {
	switch l.Op {
	case "and":
		for _, child := range l.Children {
			if !e.Evaluate(child) {
				return false
			}
		}
		return true
	case "or":
		for _, child := range l.Children {
			if e.Evaluate(child) {
				return true
			}
		}
		return false
	case "not":
		return !e.Evaluate(l.Children[0])
	}
	return false
}

func (e *Evaluator) evalComparison(c *ComparisonNode) bool {
	left := e.evalNumeric(c.Left)
	right := e.evalNumeric(c.Right)

	switch c.Op {
	case "<":
		return left < right
	case ">":
		return left > right
	case "<=":
		return left <= right
	case ">=":
		return left >= right
	case "==":
		return left == right
	}
	return false
}

func (e *Evaluator) evalNumeric(node Node) int {
	switch n := node.(type) {
	case *NumberNode:
		return n.Value
	case *FilterNode:
		switch n.Name {
		case "count":
			return len(e.occupied(n.Args[0].String()))
		case "material":
			return e.material(n.Args[0].String())
		case "mobility":
			return len(engine.LegalMoves(e.board, e.board.ToMove))
		}
	}
	return 0
}

// evalPiece: piece <designator> <squares> holds when any of the squares
// holds a matching piece.
func (e *Evaluator) evalPiece(args []Node) bool {
	squares, err := parseSquareSet(args[1].String())
	if err != nil {
		return false
	}
	pieces := parsePieceDesignator(args[0].String())
	for _, sq := range squares {
		if pieces.matches(e.board.At(sq)) {
			return true
		}
	}
	return false
}

// evalAttack: attack <attacker> <target> holds when a matching piece
// attacks a target square, or a piece of the other colour matching the
// target designator.
func (e *Evaluator) evalAttack(args []Node) bool {
	attackers := parsePieceDesignator(args[0].String())

	var targets []chess.Square
	switch t := args[1].(type) {
	case *SquareNode:
		squares, err := parseSquareSet(t.Designator)
		if err != nil {
			return false
		}
		targets = squares
	case *PieceNode:
		targets = e.occupied(t.Designator)
	}

	for _, target := range targets {
		victim := e.board.At(target)
		for _, colour := range []chess.Colour{chess.White, chess.Black} {
			if !victim.IsEmpty() && victim.Colour == colour {
				continue
			}
			for _, from := range engine.Attackers(e.board, target, colour) {
				if attackers.matches(e.board.At(from)) {
					return true
				}
			}
		}
	}
	return false
}

// occupied lists the squares holding a piece matching designator.
func (e *Evaluator) occupied(designator string) []chess.Square {
	pieces := parsePieceDesignator(designator)
	var out []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := e.board.Cells[row][col]; !p.IsEmpty() && pieces.matches(p) {
				out = append(out, chess.Sq(row, col))
			}
		}
	}
	return out
}

func (e *Evaluator) material(side string) int {
	colour := chess.White
	if side == "black" {
		colour = chess.Black
	}
	total := 0
	for kind, value := range pieceValues {
		total += value * e.board.Count(colour, kind)
	}
	return total
}

// flipColour mirrors the board top to bottom and swaps the colours and
// the side to move.
func flipColour(board *chess.Board) *chess.Board {
	flipped := chess.NewBoard()
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := board.Cells[row][col]
			if !p.IsEmpty() {
				p.Colour = p.Colour.Opposite()
			}
			flipped.Cells[chess.BoardSize-1-row][col] = p
		}
	}
	flipped.ToMove = board.ToMove.Opposite()
	return flipped
}

// pieceSet is a parsed piece designator.
type pieceSet []byte

func parsePieceDesignator(designator string) pieceSet {
	return pieceSet(strings.Trim(designator, "[]"))
}

func (s pieceSet) matches(p chess.Piece) bool {
	for _, c := range s {
		switch c {
		case '?':
			return true
		case '_':
			if p.IsEmpty() {
				return true
			}
		case 'A':
			if p.BelongsTo(chess.White) {
				return true
			}
		case 'a':
			if p.BelongsTo(chess.Black) {
				return true
			}
		default:
			if !p.IsEmpty() && p.Letter() == c {
				return true
			}
		}
	}
	return false
}

// parseSquareSet expands a square designator: "." is every square,
// otherwise a file part and a rank part, each a single character or a
// bracketed list of characters and ranges such as [a-c] or [1357].
func parseSquareSet(designator string) ([]chess.Square, error) {
	bad := func() error {
		return fmt.Errorf("bad square designator %q: %w", designator, errors.ErrCQLSyntax)
	}

	if designator == "." {
		squares := make([]chess.Square, 0, chess.BoardSize*chess.BoardSize)
		for row := 0; row < chess.BoardSize; row++ {
			for col := 0; col < chess.BoardSize; col++ {
				squares = append(squares, chess.Sq(row, col))
			}
		}
		return squares, nil
	}

	files, rest, ok := splitPart(designator)
	if !ok {
		return nil, bad()
	}
	ranks, rest, ok := splitPart(rest)
	if !ok || rest != "" {
		return nil, bad()
	}

	var squares []chess.Square
	for _, f := range files {
		for _, r := range ranks {
			sq, ok := chess.ParseSquare(string([]byte{f, r}))
			if !ok {
				return nil, bad()
			}
			squares = append(squares, sq)
		}
	}
	return squares, nil
}

// splitPart takes one file or rank part off the front of s and expands it.
func splitPart(s string) (chars []byte, rest string, ok bool) {
	if s == "" {
		return nil, "", false
	}
	if s[0] != '[' {
		return []byte{s[0]}, s[1:], true
	}
	end := strings.IndexByte(s, ']')
	if end < 2 {
		return nil, "", false
	}
	body := s[1:end]
	for i := 0; i < len(body); i++ {
		if i+2 < len(body) && body[i+1] == '-' {
			if body[i] > body[i+2] {
				return nil, "", false
			}
			for c := body[i]; c <= body[i+2]; c++ {
				chars = append(chars, c)
			}
			i += 2
			continue
		}
		chars = append(chars, body[i])
	}
	return chars, s[end+1:], true
}
