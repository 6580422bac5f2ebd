// Package eco classifies replayed games by opening. A book maps the
// position reached by a known opening line to its ECO code and name.
package eco

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
	"github.com/QuadDarv1ne/chess-rules-go/internal/hashing"
)

// HalfMoveLimit is how far a game may stray in ply count from a book line
// and still match on position alone.
const HalfMoveLimit = 6

//go:embed book.tsv
var builtinBook string

// Entry is one book line.
type Entry struct {
	Code           string `json:"code"`
	Opening        string `json:"opening"`
	Moves          string `json:"moves"`
	HalfMoves      int    `json:"halfMoves"`
	RequiredHash   uint64 `json:"-"`
	CumulativeHash uint64 `json:"-"`
}

// String returns "B20 Sicilian Defence".
func (e *Entry) String() string {
	return e.Code + " " + e.Opening
}

// Classifier looks up openings. It is read-only once loaded and safe for
// concurrent use from then on.
type Classifier struct {
	table        map[uint64][]*Entry
	maxHalfMoves int
	entries      int
}

// NewClassifier returns an empty classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		table:        make(map[uint64][]*Entry),
		maxHalfMoves: HalfMoveLimit,
	}
}

// NewBuiltinClassifier returns a classifier loaded with the built-in book.
func NewBuiltinClassifier() *Classifier {
	c := NewClassifier()
	if err := c.LoadFromReader(strings.NewReader(builtinBook)); err != nil {
		panic(fmt.Sprintf("eco: built-in book: %v", err))
	}
	return c
}

// LoadFromFile adds the lines of a book file.
func (c *Classifier) LoadFromFile(filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: book path comes from the command line
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return c.LoadFromReader(file)
}

// LoadFromReader adds book lines of the form "code<TAB>opening<TAB>moves".
// Blank lines and lines starting with '#' are skipped.
func (c *Classifier) LoadFromReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return fmt.Errorf("ECO line %d: want 3 tab-separated fields, got %d", lineNo, len(fields))
		}
		if err := c.add(strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1]), fields[2]); err != nil {
			return fmt.Errorf("ECO line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func (c *Classifier) add(code, opening, moves string) error {
	var pos, cumulative uint64
	plies := 0
	err := walk(moves, func(board *chess.Board) {
		pos = hashing.GenerateZobristHash(board)
		cumulative ^= pos
		plies++
	})
	if err != nil {
		return err
	}
	if plies == 0 {
		return nil
	}

	for _, existing := range c.table[pos] {
		if existing.HalfMoves == plies && existing.CumulativeHash == cumulative {
			return nil
		}
	}

	c.table[pos] = append(c.table[pos], &Entry{
		Code:           code,
		Opening:        opening,
		Moves:          strings.Join(strings.Fields(moves), " "),
		HalfMoves:      plies,
		RequiredHash:   pos,
		CumulativeHash: cumulative,
	})
	c.entries++
	if plies+HalfMoveLimit > c.maxHalfMoves {
		c.maxHalfMoves = plies + HalfMoveLimit
	}
	return nil
}

// Classify replays history from the initial position and returns the
// deepest book match, or nil.
func (c *Classifier) Classify(history []string) *Entry {
	if c.entries == 0 || len(history) == 0 {
		return nil
	}

	if len(history) > c.maxHalfMoves {
		history = history[:c.maxHalfMoves]
	}

	var best *Entry
	var cumulative uint64
	plies := 0
	_ = walk(strings.Join(history, " "), func(board *chess.Board) {
		plies++
		pos := hashing.GenerateZobristHash(board)
		cumulative ^= pos
		if match := c.findMatch(pos, cumulative, plies); match != nil {
			best = match
		}
	})
	return best
}

func (c *Classifier) findMatch(pos, cumulative uint64, plies int) *Entry {
	var possible *Entry
	for _, entry := range c.table[pos] {
		if entry.HalfMoves == plies && entry.CumulativeHash == cumulative {
			return entry
		}
		if abs(plies-entry.HalfMoves) <= HalfMoveLimit {
			possible = entry
		}
	}
	return possible
}

// EntriesLoaded returns the number of book lines.
func (c *Classifier) EntriesLoaded() int {
	return c.entries
}

// walk plays moves from the initial position and hands each resulting
// board to visit.
func walk(moves string, visit func(*chess.Board)) error {
	g, err := game.New("eco", nil, true)
	if err != nil {
		return err
	}
	return g.PlayLine(moves, func(game.Event) {
		visit(g.Board())
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
