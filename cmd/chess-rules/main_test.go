package main

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
	"github.com/QuadDarv1ne/chess-rules-go/internal/output"
	"github.com/QuadDarv1ne/chess-rules-go/internal/testutil"
)

func TestReadLines(t *testing.T) {
	in := "# games\ne4 e5\n\n   d4 d5  \n#skip\nc4\n"
	lines, err := readLines(strings.NewReader(in))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, lines, []string{"e4 e5", "d4 d5", "c4"})
}

func TestReadGrid(t *testing.T) {
	in := "# stalemate\n" + strings.Join(testutil.StalemateKQ, "\n") + "\n"
	board, err := readGrid(strings.NewReader(in), chess.Black)
	testutil.AssertNoError(t, err)
	testutil.AssertGrid(t, board, testutil.StalemateKQ)
	testutil.AssertEqual(t, board.ToMove, chess.Black)

	_, err = readGrid(strings.NewReader("k.......\n"), chess.White)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidGrid)
}

func TestLoadStartBoard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.txt")
	if err := os.WriteFile(path, []byte(strings.Join(testutil.BackRankMate, "\n")), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("initial", func(t *testing.T) {
		board, err := loadStartBoard("", "", "")
		testutil.AssertNoError(t, err)
		if board != nil {
			t.Error("expected nil board for the initial position")
		}
	})

	t.Run("initial with black to move", func(t *testing.T) {
		board, err := loadStartBoard("", "", "black")
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, board.ToMove, chess.Black)
	})

	t.Run("grid file", func(t *testing.T) {
		board, err := loadStartBoard(path, "", "w")
		testutil.AssertNoError(t, err)
		testutil.AssertGrid(t, board, testutil.BackRankMate)
	})

	t.Run("fen", func(t *testing.T) {
		board, err := loadStartBoard("", "6k1/5ppp/8/8/8/8/8/4R1K1 b - - 0 1", "")
		testutil.AssertNoError(t, err)
		testutil.AssertGrid(t, board, testutil.BackRankMate)
		testutil.AssertEqual(t, board.ToMove, chess.Black)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := loadStartBoard(path, "8/8/8/8/8/8/8/8 w - - 0 1", "")
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
		_, err = loadStartBoard("", "", "purple")
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
		_, err = loadStartBoard(filepath.Join(dir, "missing.txt"), "", "")
		if err == nil {
			t.Error("expected an error for a missing grid file")
		}
	})
}

func TestMovesLine(t *testing.T) {
	line, err := movesLine("e2e4 e7e5", "")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, line, "e2e4 e7e5")

	line, err = movesLine("", "e4 e5")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, line, "e4 e5")

	_, err = movesLine("e2e4 Nf3", "")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidSAN)

	_, err = movesLine("e2e4", "e4")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestPlayRandom(t *testing.T) {
	play := func(seed int64) []string {
		g, err := game.New("r", nil, true)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, playRandom(g, 30, rand.New(rand.NewSource(seed)), nil))
		return g.State().History
	}

	a := play(11)
	testutil.AssertEqual(t, a, play(11))
	testutil.AssertTrue(t, len(a) > 0 && len(a) <= 30)

	// A finished game ends random play without error.
	g, err := game.New("r", testutil.MustBoard(t, testutil.StalemateKQ, chess.Black), true)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, playRandom(g, 5, rand.New(rand.NewSource(1)), nil))
	testutil.AssertEqual(t, g.Plies(), 0)
}

func TestRunSingle(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Output.JSONFormat = true

	var buf bytes.Buffer
	w := output.NewReportWriter(&buf, cfg.Output)
	ok, err := runSingle(cfg, zerolog.Nop(), nil, "f2f3 e7e5 g2g4 d8h4", 0, w)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertNoError(t, w.Close())

	var out output.JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 1)
	testutil.AssertEqual(t, out.Games[0].Status, engine.Checkmate.String())
	testutil.AssertEqual(t, out.Games[0].History, []string{"f3", "e5", "g4", "Qh4#"})
}

func TestRunSingle_RejectedMove(t *testing.T) {
	cfg := config.NewConfig()

	var buf bytes.Buffer
	ok, err := runSingle(cfg, zerolog.Nop(), nil, "e4 e5 Ke3", 0, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, ok)
	testutil.AssertContains(t, buf.String(), "error: token 3 (Ke3)")
}

func TestRunSingle_RandomAndLogging(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Rules.Seed = 5

	var logs bytes.Buffer
	log := zerolog.New(&logs).Level(zerolog.DebugLevel)

	var buf bytes.Buffer
	ok, err := runSingle(cfg, log, nil, "e4", 3, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)

	testutil.AssertEqual(t, strings.Count(logs.String(), `"message":"move"`), 4)
	testutil.AssertContains(t, buf.String(), "1. e4")
}

func TestRunBatch(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Batch.Workers = 3
	cfg.Output.ShowGrid = false

	lines := []string{
		"e4 e5 Bc4 Nc6 Qh5 Nf6 Qxf7",
		"d4 d5 Bf4 Bf5 Ke3",
		"c4",
	}

	var buf bytes.Buffer
	failures, err := runBatch(cfg, zerolog.Nop(), nil, lines, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, failures, 1)

	out := buf.String()
	first := strings.Index(out, "[line 1]")
	second := strings.Index(out, "[line 2]")
	third := strings.Index(out, "[line 3]")
	testutil.AssertTrue(t, first >= 0 && first < second && second < third, "reports out of order:\n"+out)
	testutil.AssertContains(t, out, "Black to move: checkmate")
	testutil.AssertContains(t, out, "error: token 5 (Ke3)")
}

func TestRunBatch_SuppressDuplicates(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Batch.Workers = 2
	cfg.Batch.SuppressDuplicates = true
	cfg.Output.ShowGrid = false

	lines := []string{
		"Nf3 Nf6 Nc3 Nc6",
		"e4",
		"Nc3 Nc6 Nf3 Nf6",
		"e2e4",
	}

	var logs bytes.Buffer
	log := zerolog.New(&logs)

	var buf bytes.Buffer
	failures, err := runBatch(cfg, log, nil, lines, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, failures, 0)

	out := buf.String()
	testutil.AssertContains(t, out, "[line 1]")
	testutil.AssertContains(t, out, "[line 2]")
	testutil.AssertFalse(t, strings.Contains(out, "[line 3]"), "transposition not suppressed")
	testutil.AssertFalse(t, strings.Contains(out, "[line 4]"), "repeated line not suppressed")
	testutil.AssertContains(t, logs.String(), `"duplicates":2`)
}

func TestRunSingle_Opening(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Output.AddECO = true
	cfg.Output.ShowGrid = false

	var buf bytes.Buffer
	ok, err := runSingle(cfg, zerolog.Nop(), nil, "e4 e5 Nf3 Nc6 Bb5 a6", 0, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertContains(t, buf.String(), "opening: C60 Ruy Lopez")

	// Games from a set-up position are not classified.
	buf.Reset()
	start := testutil.MustBoard(t, testutil.BackRankMate, chess.White)
	_, err = runSingle(cfg, zerolog.Nop(), start, "e1e8", 0, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, strings.Contains(buf.String(), "opening:"))
}

func TestRunBatch_OpeningBookFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.tsv")
	if err := os.WriteFile(path, []byte("Z99\tTest Line\td4 d5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.Output.AddECO = true
	cfg.Output.ECOFile = path
	cfg.Output.JSONFormat = true

	var buf bytes.Buffer
	w := output.NewReportWriter(&buf, cfg.Output)
	_, err := runBatch(cfg, zerolog.Nop(), nil, []string{"d4 d5 c4", "e4"}, w)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, w.Close())

	var out output.JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 2)
	testutil.AssertEqual(t, out.Games[0].Opening, "Z99 Test Line")
	testutil.AssertEqual(t, out.Games[1].Opening, "")

	cfg.Output.ECOFile = filepath.Join(t.TempDir(), "missing.tsv")
	_, err = runBatch(cfg, zerolog.Nop(), nil, []string{"e4"}, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertContains(t, err.Error(), "cannot open ECO file")
}

func TestRunBatch_Filters(t *testing.T) {
	lines := []string{
		"f3 e5 g4 Qh4#",
		"Nf3 Nf6 Ng1 Ng8 Nf3 Nf6 Ng1 Ng8",
		"e4 e5 Bc4 Nc6 Qh5 Nf6 Qxf7#",
		"d4",
	}

	tests := []struct {
		name   string
		mutate func(*config.FilterConfig)
		want   []string
	}{
		{"checkmate", func(f *config.FilterConfig) { f.MatchCheckmate = true }, []string{"[line 1]", "[line 3]"}},
		{"repetition", func(f *config.FilterConfig) { f.CheckRepetition = true }, []string{"[line 2]"}},
		{"stop after", func(f *config.FilterConfig) { f.MaxMatches = 2 }, []string{"[line 1]", "[line 2]"}},
		{"move bounds", func(f *config.FilterConfig) {
			f.CheckMoveBounds = true
			f.LowerMoveBound = 1
			f.UpperMoveBound = 2
		}, []string{"[line 1]", "[line 4]"}},
		{"cql", func(f *config.FilterConfig) { f.CQLQuery = "(and mate (piece Q f7))" }, []string{"[line 3]"}},
		{"cql and checkmate", func(f *config.FilterConfig) {
			f.MatchCheckmate = true
			f.CQLQuery = "piece q h4"
		}, []string{"[line 1]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			cfg.Batch.Workers = 2
			cfg.Output.ShowGrid = false
			tt.mutate(cfg.Filter)

			var buf bytes.Buffer
			_, err := runBatch(cfg, zerolog.Nop(), nil, lines, output.NewTextWriter(&buf, cfg.Output))
			testutil.AssertNoError(t, err)

			out := buf.String()
			testutil.AssertEqual(t, strings.Count(out, "[line "), len(tt.want), out)
			for _, name := range tt.want {
				testutil.AssertContains(t, out, name)
			}
		})
	}
}

func TestRunSingle_Notes(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Output.ShowGrid = false

	var buf bytes.Buffer
	ok, err := runSingle(cfg, zerolog.Nop(), nil, "Nf3 Nf6 Ng1 Ng8 Nf3 Nf6 Ng1 Ng8", 0, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ok)
	testutil.AssertContains(t, buf.String(), "notes: threefold repetition")
}

func TestRunBatch_BadCQL(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Filter.CQLQuery = "(piece K"

	var buf bytes.Buffer
	_, err := runBatch(cfg, zerolog.Nop(), nil, []string{"e4"}, output.NewTextWriter(&buf, cfg.Output))
	testutil.AssertErrorIs(t, err, errors.ErrCQLSyntax)
}

func TestLoadCQLQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.cql")
	if err := os.WriteFile(path, []byte("  (and check\n  (attack N k))\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewFilterConfig()
	testutil.AssertNoError(t, loadCQLQuery(cfg, path))
	testutil.AssertEqual(t, cfg.CQLQuery, "(and check\n  (attack N k))")
	testutil.AssertTrue(t, cfg.Active())

	cfg = config.NewFilterConfig()
	testutil.AssertNoError(t, loadCQLQuery(cfg, ""))
	testutil.AssertFalse(t, cfg.Active())

	cfg.CQLQuery = "bogus"
	testutil.AssertErrorIs(t, loadCQLQuery(cfg, ""), errors.ErrCQLSyntax)

	err := loadCQLQuery(config.NewFilterConfig(), filepath.Join(t.TempDir(), "missing.cql"))
	testutil.AssertContains(t, err.Error(), "reading CQL file")
}

func TestApplyFlags_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	applyFlags(cfg)

	testutil.AssertTrue(t, cfg.Rules.StrictLegality)
	testutil.AssertTrue(t, cfg.Output.ShowGrid)
	testutil.AssertFalse(t, cfg.Output.JSONFormat)
	testutil.AssertFalse(t, cfg.Output.AddECO)
	testutil.AssertFalse(t, cfg.Filter.Active())
	testutil.AssertEqual(t, cfg.Log.Level, "warn")
	testutil.AssertEqual(t, cfg.Batch.BufferSize, 64)
	testutil.AssertNoError(t, cfg.Validate())
}
