package cql

import (
	"fmt"
	"strconv"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// argKind constrains a filter argument.
type argKind int

const (
	argPiece  argKind = iota // piece designator
	argSquare                // square designator
	argTarget                // piece or square designator
	argSide                  // white or black
	argExpr                  // any query
)

// filterSpec describes a filter's arguments and whether it yields a number.
type filterSpec struct {
	args    []argKind
	numeric bool
}

var filters = map[string]filterSpec{
	"check":     {},
	"mate":      {},
	"stalemate": {},
	"wtm":       {},
	"btm":       {},
	"piece":     {args: []argKind{argPiece, argSquare}},
	"attack":    {args: []argKind{argPiece, argTarget}},
	"flipcolor": {args: []argKind{argExpr}},
	"count":     {args: []argKind{argPiece}, numeric: true},
	"material":  {args: []argKind{argSide}, numeric: true},
	"mobility":  {numeric: true},
}

// Parser builds an AST from tokens.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse parses a query. Several top-level expressions are joined by "and".
func Parse(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}

	var nodes []Node
	for p.current().Type != EOF {
		node, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("empty expression: %w", errors.ErrCQLSyntax)
	case 1:
		return nodes[0], nil
	}
	return &LogicalNode{Op: "and", Children: nodes}, nil
}

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	tok := p.current()
	return fmt.Errorf("offset %d: %s: %w", tok.Pos, fmt.Sprintf(format, args...), errors.ErrCQLSyntax)
}

func (p *Parser) expect(t TokenType) error {
	if p.current().Type != t {
		return p.errorf("expected %v, got %v %q", t, p.current().Type, p.current().Literal)
	}
	p.advance()
	return nil
}

// parseQuery parses something that evaluates to true or false.
func (p *Parser) parseQuery() (Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if isNumeric(node) {
		return nil, p.errorf("%s is a number, not a condition", node)
	}
	return node, nil
}

// parseTerm parses a filter, logical form or comparison, bare or in
// parentheses.
func (p *Parser) parseTerm() (Node, error) {
	switch tok := p.current(); tok.Type {
	case LPAREN:
		return p.parseParen()
	case IDENT:
		return p.parseFilter()
	case NUMBER:
		p.advance()
		v, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", tok.Literal, errors.ErrCQLSyntax)
		}
		return &NumberNode{Value: v}, nil
	default:
		return nil, p.errorf("unexpected %v %q", tok.Type, tok.Literal)
	}
}

func (p *Parser) parseParen() (Node, error) {
	p.advance() // (

	var node Node
	var err error
	tok := p.current()
	switch {
	case tok.Type == IDENT && (tok.Literal == "and" || tok.Literal == "or" || tok.Literal == "not"):
		node, err = p.parseLogical()
	case tok.Type >= LT && tok.Type <= EQ:
		node, err = p.parseComparison()
	case tok.Type == IDENT:
		node, err = p.parseFilter()
	default:
		return nil, p.errorf("unexpected %v %q after '('", tok.Type, tok.Literal)
	}
	if err != nil {
		return nil, err
	}
	if err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseLogical() (Node, error) {
	op := p.advance().Literal

	var children []Node
	for p.current().Type != RPAREN && p.current().Type != EOF {
		child, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if len(children) == 0 {
		return nil, p.errorf("%q requires at least one operand", op)
	}
	if op == "not" && len(children) != 1 {
		return nil, p.errorf("\"not\" takes one operand, got %d", len(children))
	}
	return &LogicalNode{Op: op, Children: children}, nil
}

func (p *Parser) parseComparison() (Node, error) {
	op := p.advance().Literal

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if !isNumeric(left) || !isNumeric(right) {
		return nil, p.errorf("%q compares numbers", op)
	}
	return &ComparisonNode{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseFilter() (Node, error) {
	name := p.current().Literal
	spec, ok := filters[name]
	if !ok {
		return nil, p.errorf("unknown filter %q", name)
	}
	p.advance()

	f := &FilterNode{Name: name}
	for _, kind := range spec.args {
		arg, err := p.parseArg(name, kind)
		if err != nil {
			return nil, err
		}
		f.Args = append(f.Args, arg)
	}
	return f, nil
}

func (p *Parser) parseArg(filter string, kind argKind) (Node, error) {
	tok := p.current()
	isPiece := tok.Type == PIECE || tok.Type == PIECESET
	isSquare := tok.Type == SQUARE || tok.Type == SQUARESET

	switch {
	case kind == argExpr:
		return p.parseQuery()
	case kind == argSide && tok.Type == IDENT && (tok.Literal == "white" || tok.Literal == "black"):
		p.advance()
		return &FilterNode{Name: tok.Literal}, nil
	case (kind == argPiece || kind == argTarget) && isPiece:
		p.advance()
		return &PieceNode{Designator: tok.Literal}, nil
	case (kind == argSquare || kind == argTarget) && isSquare:
		if _, err := parseSquareSet(tok.Literal); err != nil {
			return nil, err
		}
		p.advance()
		return &SquareNode{Designator: tok.Literal}, nil
	}
	return nil, p.errorf("bad argument %q to %s", tok.Literal, filter)
}

// isNumeric reports whether node yields a number rather than a condition.
func isNumeric(node Node) bool {
	switch n := node.(type) {
	case *NumberNode:
		return true
	case *FilterNode:
		return filters[n.Name].numeric
	}
	return false
}
