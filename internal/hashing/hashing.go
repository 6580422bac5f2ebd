// Package hashing provides position hashes and duplicate detection for
// replayed games.
package hashing

import (
	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
)

// Keys are fixed at start-up so hashes are stable across runs.
var (
	pieceKeys [2][7][chess.BoardSize * chess.BoardSize]uint64
	whiteKey  uint64
)

func init() {
	state := uint64(0x9E3779B97F4A7C15)
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = splitmix64(&state)
			}
		}
	}
	whiteKey = splitmix64(&state)
}

// splitmix64 advances state and returns the next pseudo-random value.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// GenerateZobristHash returns the Zobrist hash of the placement and the
// side to move.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := board.Cells[row][col]
			if p.IsEmpty() {
				continue
			}
			hash ^= pieceKeys[p.Colour][p.Kind][row*chess.BoardSize+col]
		}
	}
	if board.ToMove == chess.White {
		hash ^= whiteKey
	}
	return hash
}

// WeakHash is a cheap order-sensitive checksum of the placement, used to
// confirm a Zobrist match.
func WeakHash(board *chess.Board) uint32 {
	var hash uint32
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			hash = hash*31 + uint32(board.Cells[row][col].Letter())
		}
	}
	return hash
}
