package game

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
)

// moveNumberRegex matches a leading move number such as "12." or "3...".
var moveNumberRegex = regexp.MustCompile(`^\d+\.+`)

var results = map[string]bool{
	"1-0":     true,
	"0-1":     true,
	"1/2-1/2": true,
	"*":       true,
}

// Play applies a move written either in coordinate form ("e2e4", "e7e8q")
// or in SAN.
func (g *Game) Play(text string) (Event, error) {
	if m, ok := chess.ParseCoordinate(text); ok {
		return g.Move(m)
	}
	return g.MoveSAN(text)
}

// Replay starts a game on board (nil for the initial position) and plays
// line on it with PlayLine. On a bad token the game is returned together
// with the error, holding every move played before it.
func Replay(id string, board *chess.Board, line string, strict bool) (*Game, error) {
	g, err := New(id, board, strict)
	if err != nil {
		return nil, err
	}
	return g, g.PlayLine(line, nil)
}

// PlayLine plays every whitespace-separated token of line through Play,
// stopping at the first failure. Move numbers ("1.", "1.e4") and game
// results are skipped. onMove, when non-nil, sees each applied move.
func (g *Game) PlayLine(line string, onMove func(Event)) error {
	for i, tok := range strings.Fields(line) {
		tok = moveNumberRegex.ReplaceAllString(tok, "")
		if tok == "" || results[tok] {
			continue
		}
		ev, err := g.Play(tok)
		if err != nil {
			return fmt.Errorf("token %d (%s): %w", i+1, tok, err)
		}
		if onMove != nil {
			onMove(ev)
		}
	}
	return nil
}

// Plies returns the number of moves played.
func (g *Game) Plies() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history)
}
