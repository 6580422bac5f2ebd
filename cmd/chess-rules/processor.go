package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/cql"
	"github.com/QuadDarv1ne/chess-rules-go/internal/eco"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
	"github.com/QuadDarv1ne/chess-rules-go/internal/hashing"
	"github.com/QuadDarv1ne/chess-rules-go/internal/output"
	"github.com/QuadDarv1ne/chess-rules-go/internal/processing"
	"github.com/QuadDarv1ne/chess-rules-go/internal/worker"
)

// loadStartBoard returns the position named by gridPath or fen, or nil for
// the initial position.
func loadStartBoard(gridPath, fen, side string) (*chess.Board, error) {
	if gridPath != "" && fen != "" {
		return nil, fmt.Errorf("-grid and -fen are mutually exclusive: %w", errors.ErrInvalidConfig)
	}

	colour := chess.White
	if side != "" {
		c, ok := chess.ParseColour(side)
		if !ok {
			return nil, fmt.Errorf("side %q: %w", side, errors.ErrInvalidConfig)
		}
		colour = c
	}

	switch {
	case fen != "":
		board, err := engine.NewBoardFromFEN(fen)
		if err != nil {
			return nil, err
		}
		if side != "" {
			board.ToMove = colour
		}
		return board, nil
	case gridPath != "":
		file, err := os.Open(gridPath) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return readGrid(file, colour)
	case side != "":
		board := chess.NewInitialBoard()
		board.ToMove = colour
		return board, nil
	}
	return nil, nil
}

// readGrid reads a board in the grid format from r.
func readGrid(r io.Reader, toMove chess.Colour) (*chess.Board, error) {
	rows, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return chess.NewBoardFromGrid(rows, toMove)
}

// readLines returns the non-blank lines of r with surrounding space
// trimmed. Lines starting with '#' are comments.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// movesLine joins the -moves and -san inputs into one line. Every -moves
// token must be in coordinate form.
func movesLine(coord, san string) (string, error) {
	if coord != "" && san != "" {
		return "", fmt.Errorf("-moves and -san are mutually exclusive: %w", errors.ErrInvalidConfig)
	}
	for _, tok := range strings.Fields(coord) {
		if _, ok := chess.ParseCoordinate(tok); !ok {
			return "", fmt.Errorf("%q is not a coordinate move: %w", tok, errors.ErrInvalidSAN)
		}
	}
	if coord != "" {
		return coord, nil
	}
	return san, nil
}

// playRandom plays up to n random legal moves, stopping early when the
// game is over.
func playRandom(g *game.Game, n int, rng *rand.Rand, onMove func(game.Event)) error {
	for i := 0; i < n; i++ {
		s, err := g.Suggest(rng)
		if errors.Is(err, errors.ErrNoCandidate) {
			return nil
		}
		if err != nil {
			return err
		}
		ev, err := g.Play(s.Move)
		if err != nil {
			return err
		}
		if onMove != nil {
			onMove(ev)
		}
	}
	return nil
}

// moveLogger returns a callback that logs each move at debug level.
func moveLogger(log zerolog.Logger) func(game.Event) {
	return func(ev game.Event) {
		log.Debug().Str("game", ev.GameID).Int("ply", ev.Ply).Str("san", ev.SAN).Str("move", ev.Move).Stringer("status", ev.Status).Msg("move")
	}
}

// loadBook returns the opening classifier asked for by cfg, or nil when
// openings are not classified.
func loadBook(cfg *config.OutputConfig) (*eco.Classifier, error) {
	if !cfg.AddECO {
		return nil, nil
	}
	if cfg.ECOFile == "" {
		return eco.NewBuiltinClassifier(), nil
	}
	book := eco.NewClassifier()
	if err := book.LoadFromFile(cfg.ECOFile); err != nil {
		return nil, err
	}
	return book, nil
}

// openingOf names the opening of a game played from the initial position.
func openingOf(book *eco.Classifier, start *chess.Board, state *game.State) string {
	if book == nil || start != nil || state == nil {
		return ""
	}
	if entry := book.Classify(state.History); entry != nil {
		return entry.String()
	}
	return ""
}

// notesOf analyses a replayed game. A nil analysis means the game could
// not be started.
func notesOf(start *chess.Board, state *game.State) (*processing.GameAnalysis, []string) {
	if state == nil {
		return nil, nil
	}
	analysis, _ := processing.AnalyzeGame(start, state.History)
	if analysis == nil {
		return nil, nil
	}
	return analysis, analysis.Notes()
}

// matchesQuery reports whether any position of the game matches query. A
// nil query matches everything.
func matchesQuery(query cql.Node, start *chess.Board, state *game.State) bool {
	if query == nil {
		return true
	}
	if state == nil {
		return false
	}
	_, ok := cql.MatchGame(query, start, state.History)
	return ok
}

// runSingle replays one game, optionally extends it with random moves and
// writes its report. It returns false when a move was rejected.
func runSingle(cfg *config.Config, log zerolog.Logger, start *chess.Board, line string, random int, w output.ReportWriter) (bool, error) {
	book, err := loadBook(cfg.Output)
	if err != nil {
		return false, err
	}
	g, err := game.New("game", start, cfg.Rules.StrictLegality)
	if err != nil {
		return false, err
	}

	onMove := moveLogger(log)
	err = g.PlayLine(line, onMove)
	if err == nil && random > 0 {
		err = playRandom(g, random, cfg.Rules.NewRand(), onMove)
	}
	if err != nil {
		log.Warn().Err(err).Msg("move rejected")
	}

	state := g.State()
	_, notes := notesOf(start, &state)
	report := output.Report{State: &state, Opening: openingOf(book, start, &state), Notes: notes, Err: err}
	if werr := w.WriteReport(report); werr != nil {
		return false, werr
	}
	return err == nil, nil
}

// runBatch replays every line on the worker pool and writes the reports in
// input order, skipping games the filters or the duplicate check reject.
// It returns the number of lines with a rejected move.
func runBatch(cfg *config.Config, log zerolog.Logger, start *chess.Board, lines []string, w output.ReportWriter) (int, error) {
	book, err := loadBook(cfg.Output)
	if err != nil {
		return 0, err
	}
	var query cql.Node
	if cfg.Filter.CQLQuery != "" {
		if query, err = cql.Parse(cfg.Filter.CQLQuery); err != nil {
			return 0, err
		}
	}
	results := worker.RunBatch(lines, cfg.Batch, worker.ReplayFunc(start, cfg.Rules.StrictLegality))

	var detector *hashing.DuplicateDetector
	if cfg.Batch.SuppressDuplicates {
		detector = hashing.NewDuplicateDetector(false, cfg.Batch.DuplicateCapacity)
	}

	failures, filtered, written := 0, 0, uint(0)
	for _, r := range results {
		if !r.OK() {
			failures++
			log.Debug().Int("line", r.Index+1).Err(r.Err).Msg("line rejected")
		}
		if cfg.Filter.MaxMatches > 0 && written >= cfg.Filter.MaxMatches {
			continue
		}

		analysis, notes := notesOf(start, r.State)
		if !processing.Matches(analysis, cfg.Filter) || !matchesQuery(query, start, r.State) {
			filtered++
			continue
		}
		if detector != nil && r.Board != nil && detector.CheckAndAdd(r.Board, len(r.State.History)) {
			log.Debug().Int("line", r.Index+1).Msg("duplicate final position")
			continue
		}

		report := output.Report{
			Name:    fmt.Sprintf("line %d", r.Index+1),
			State:   r.State,
			Opening: openingOf(book, start, r.State),
			Notes:   notes,
			Err:     r.Err,
		}
		if err := w.WriteReport(report); err != nil {
			return failures, err
		}
		written++
	}

	event := log.Info().Int("games", len(lines)).Int("rejected", failures).Uint("written", written).Int("workers", cfg.Batch.WorkerCount())
	if cfg.Filter.Active() {
		event = event.Int("filtered", filtered)
	}
	if detector != nil {
		event = event.Int("duplicates", detector.DuplicateCount())
	}
	event.Msg("batch done")
	return failures, nil
}
