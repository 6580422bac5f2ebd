// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrPrecondition indicates a structural precondition was violated,
	// such as an off-board square or a position without exactly one king per side.
	ErrPrecondition = errors.New("precondition violated")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSAN indicates a move string that is not well-formed SAN.
	ErrInvalidSAN = errors.New("invalid SAN")

	// ErrNoCandidate indicates well-formed SAN that no piece on the board can play.
	ErrNoCandidate = errors.New("no piece can make this move")

	// ErrAmbiguousMove indicates SAN that more than one piece could play.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrInvalidGrid indicates a malformed 8x8 board grid.
	ErrInvalidGrid = errors.New("invalid board grid")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game identifier.
	ErrGameNotFound = errors.New("game not found")

	// ErrTooManyGames indicates the game registry is full.
	ErrTooManyGames = errors.New("too many games")

	// ErrCQLSyntax indicates a malformed position query.
	ErrCQLSyntax = errors.New("CQL syntax error")
)

// PreconditionError reports a structural precondition violation detected at
// the boundary of the core. It unwraps to ErrPrecondition.
type PreconditionError struct {
	Op     string // Operation that detected the violation, e.g. "Board.ApplyMove"
	Reason string // Human readable description
}

// Error returns the operation and reason.
func (e *PreconditionError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%v: %s", ErrPrecondition, e.Reason)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrPrecondition, e.Reason)
}

// Unwrap returns ErrPrecondition so errors.Is(err, ErrPrecondition) holds.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// Precondition builds a PreconditionError with a formatted reason.
func Precondition(op, format string, args ...interface{}) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// GameError wraps errors with game context, including the game number,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the input
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	File     string // Source file name (if known)
	Line     int    // Line number in source file (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.File != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			parts = append(parts, e.File)
		}
	}

	parts = append(parts, fmt.Sprintf("game %d", e.GameNum))

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Is reports whether err matches target. It is a re-export of the standard
// library function so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a re-export of the standard library errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
