// Package cql implements a small Chess Query Language for matching
// positions: piece placement, attacks, check and mate, and material.
package cql

import (
	"fmt"
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOF TokenType = iota

	LPAREN // (
	RPAREN // )

	IDENT     // and, piece, mate, white
	NUMBER    // 0, 42
	PIECE     // K, q, A, a, _, ?
	PIECESET  // [RQ]
	SQUARE    // e4, .
	SQUARESET // [a-h]1, a[1-8], [a-d][1-4]

	LT // <
	GT // >
	LE // <=
	GE // >=
	EQ // ==
)

var tokenNames = [...]string{
	EOF:       "EOF",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	PIECE:     "PIECE",
	PIECESET:  "PIECESET",
	SQUARE:    "SQUARE",
	SQUARESET: "SQUARESET",
	LT:        "LT",
	GT:        "GT",
	LE:        "LE",
	GE:        "GE",
	EQ:        "EQ",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "UNKNOWN"
}

// Token is one lexical token and its byte offset in the input.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

const pieceChars = "KQRBNPkqrbnpAa_?"

var operators = map[string]TokenType{
	"<":  LT,
	">":  GT,
	"<=": LE,
	">=": GE,
	"==": EQ,
}

// Tokenize splits input into tokens. The result always ends with EOF.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case isSpace(ch):
			i++
		case ch == '(':
			tokens = append(tokens, Token{Type: LPAREN, Literal: "(", Pos: i})
			i++
		case ch == ')':
			tokens = append(tokens, Token{Type: RPAREN, Literal: ")", Pos: i})
			i++
		default:
			start := i
			for i < len(input) && !isSpace(input[i]) && input[i] != '(' && input[i] != ')' {
				i++
			}
			tok, err := classify(input[start:i], start)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		}
	}
	return append(tokens, Token{Type: EOF, Pos: len(input)}), nil
}

// classify decides what a whitespace-delimited word is.
func classify(word string, pos int) (Token, error) {
	tok := Token{Literal: word, Pos: pos}

	if op, ok := operators[word]; ok {
		tok.Type = op
		return tok, nil
	}

	switch {
	case isNumber(word):
		tok.Type = NUMBER
	case word == "." || (len(word) == 2 && isFile(word[0]) && isRank(word[1])):
		tok.Type = SQUARE
	case strings.HasPrefix(word, "[") && strings.HasSuffix(word, "]") && isPieceSet(word[1:len(word)-1]):
		tok.Type = PIECESET
	case strings.Contains(word, "["):
		tok.Type = SQUARESET
	case len(word) == 1 && strings.IndexByte(pieceChars, word[0]) >= 0:
		tok.Type = PIECE
	case isIdent(word):
		tok.Type = IDENT
	default:
		return tok, fmt.Errorf("unexpected %q at offset %d: %w", word, pos, errors.ErrCQLSyntax)
	}
	return tok, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isFile(ch byte) bool {
	return ch >= 'a' && ch <= 'h'
}

func isRank(ch byte) bool {
	return ch >= '1' && ch <= '8'
}

func isNumber(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return s != ""
}

// isPieceSet reports whether s holds only piece letters, as in [RQ].
// Square ranges such as [a-h] contain a dash or a digit.
func isPieceSet(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte("KQRBNPkqrbnpAa", s[i]) < 0 {
			return false
		}
	}
	return true
}
