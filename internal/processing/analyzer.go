// Package processing analyses replayed games and selects them by the
// features found.
package processing

import (
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
	"github.com/QuadDarv1ne/chess-rules-go/internal/hashing"
)

// GameAnalysis holds what was found while replaying a game.
type GameAnalysis struct {
	Plies    int
	Captures int
	Checks   int

	HasFiftyMoveRule        bool
	Has75MoveRule           bool
	HasRepetition           bool
	Has5FoldRepetition      bool
	HasUnderpromotion       bool
	HasInsufficientMaterial bool

	FinalStatus engine.GameStatus
	Positions   []uint64 // Zobrist hashes, starting position first
}

// FiftyMoveTriggered returns true if 100 plies passed without a capture or
// pawn move.
func (ga *GameAnalysis) FiftyMoveTriggered() bool {
	return ga.HasFiftyMoveRule
}

// RepetitionDetected returns true if a position occurred three times.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// UnderpromotionFound returns true if any pawn promoted to a non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// Notes lists the draw conditions and rarities found, strongest first.
func (ga *GameAnalysis) Notes() []string {
	var notes []string
	switch {
	case ga.Has5FoldRepetition:
		notes = append(notes, "fivefold repetition")
	case ga.HasRepetition:
		notes = append(notes, "threefold repetition")
	}
	switch {
	case ga.Has75MoveRule:
		notes = append(notes, "seventy-five-move rule")
	case ga.HasFiftyMoveRule:
		notes = append(notes, "fifty-move rule")
	}
	if ga.HasInsufficientMaterial {
		notes = append(notes, "insufficient material")
	}
	if ga.HasUnderpromotion {
		notes = append(notes, "underpromotion")
	}
	return notes
}

// AnalyzeGame replays history from start (nil for the initial position)
// without the king-safety check and analyses every position reached. On a
// bad move the analysis covers the moves before it and the error is
// returned with it.
func AnalyzeGame(start *chess.Board, history []string) (*GameAnalysis, error) {
	g, err := game.New("analysis", start, false)
	if err != nil {
		return nil, err
	}
	analysis := &GameAnalysis{}

	posHash := hashing.GenerateZobristHash(g.Board())
	analysis.Positions = append(analysis.Positions, posHash)
	positionCount := map[uint64]int{posHash: 1}
	halfmoveClock := 0

	err = g.PlayLine(strings.Join(history, " "), func(ev game.Event) {
		analysis.Plies++

		capture := strings.Contains(ev.SAN, "x")
		if capture {
			analysis.Captures++
		}
		if capture || isPawnMove(ev.SAN) {
			halfmoveClock = 0
		} else {
			halfmoveClock++
		}
		if strings.HasSuffix(ev.SAN, "+") || strings.HasSuffix(ev.SAN, "#") {
			analysis.Checks++
		}
		if i := strings.IndexByte(ev.SAN, '='); i >= 0 && i+1 < len(ev.SAN) && ev.SAN[i+1] != 'Q' {
			analysis.HasUnderpromotion = true
		}

		// 50-move rule (100 half-moves), 75-move rule (150 half-moves)
		if halfmoveClock >= 100 {
			analysis.HasFiftyMoveRule = true
		}
		if halfmoveClock >= 150 {
			analysis.Has75MoveRule = true
		}

		posHash = hashing.GenerateZobristHash(g.Board())
		analysis.Positions = append(analysis.Positions, posHash)
		positionCount[posHash]++
		if positionCount[posHash] >= 3 {
			analysis.HasRepetition = true
		}
		if positionCount[posHash] >= 5 {
			analysis.Has5FoldRepetition = true
		}
	})

	final := g.Board()
	analysis.HasInsufficientMaterial = HasInsufficientMaterial(final)
	analysis.FinalStatus, _ = engine.Status(final)
	return analysis, err
}

// isPawnMove reports whether san moves a pawn: pawn moves start with a
// file letter.
func isPawnMove(san string) bool {
	return len(san) > 0 && san[0] >= 'a' && san[0] <= 'h'
}

// HasInsufficientMaterial reports whether no sequence of moves can mate:
// bare kings, a single knight, or bishops that all stand on squares of one
// colour. Anything else, K+N vs K+B or opposite-coloured bishops included,
// can still end in mate.
func HasInsufficientMaterial(board *chess.Board) bool {
	knights := 0
	bishopShades := [2]int{}
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			switch board.Cells[row][col].Kind {
			case chess.Pawn, chess.Rook, chess.Queen:
				return false
			case chess.Knight:
				knights++
			case chess.Bishop:
				bishopShades[(row+col)%2]++
			}
		}
	}

	bishops := bishopShades[0] + bishopShades[1]
	if knights > 0 {
		return knights == 1 && bishops == 0
	}
	return bishopShades[0] == 0 || bishopShades[1] == 0
}
