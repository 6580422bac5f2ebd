package engine

import (
	"math/rand"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
)

// RandomMove picks a fully legal move for the side to move uniformly at
// random. The caller owns rng and its seed, so a fixed seed replays the same
// choice. ok is false when the side to move has no legal move.
//
// This is move selection, not evaluation: every legal move is equally likely.
func RandomMove(board *chess.Board, rng *rand.Rand) (m chess.Move, ok bool) {
	moves := LegalMoves(board, board.ToMove)
	if len(moves) == 0 {
		return chess.Move{}, false
	}
	return moves[rng.Intn(len(moves))], true
}
