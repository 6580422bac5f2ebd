package worker

import (
	"fmt"
	"sort"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

// ReplayFunc returns a ProcessFunc that replays each line from start, or
// from the initial position when start is nil. Every item gets its own
// copy of the board.
func ReplayFunc(start *chess.Board, strict bool) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		var board *chess.Board
		if start != nil {
			board = start.Copy()
		}

		result := ProcessResult{Index: item.Index, Line: item.Line}
		g, err := game.Replay(fmt.Sprintf("line-%d", item.Index+1), board, item.Line, strict)
		if g != nil {
			state := g.State()
			result.State = &state
			result.Board = g.Board()
		}
		result.Err = err
		return result
	}
}

// RunBatch replays every line on a pool sized from cfg and returns the
// results in input order.
func RunBatch(lines []string, cfg *config.BatchConfig, processFunc ProcessFunc) []ProcessResult {
	pool := NewPoolFromConfig(cfg, processFunc)
	pool.Start()

	go func() {
		for i, line := range lines {
			pool.Submit(WorkItem{Line: line, Index: i})
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(lines))
	for r := range pool.Results() {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}
