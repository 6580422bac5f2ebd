package cql

import (
	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

// MatchGame replays history from start (nil for the initial position) and
// returns the first ply whose position matches node, where ply 0 is the
// starting position. Replay stops quietly at the first bad move.
func MatchGame(node Node, start *chess.Board, history []string) (int, bool) {
	g, err := game.New("cql", start, false)
	if err != nil {
		return 0, false
	}

	board := g.Board()
	if NewEvaluator(board).Evaluate(node) {
		return 0, true
	}

	for ply, san := range history {
		if _, err := g.Play(san); err != nil {
			return 0, false
		}
		if NewEvaluator(g.Board()).Evaluate(node) {
			return ply + 1, true
		}
	}
	return 0, false
}
