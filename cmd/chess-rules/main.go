// chess-rules replays chess games and reports the resulting positions.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/chess"
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/cql"
	"github.com/QuadDarv1ne/chess-rules-go/internal/output"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-rules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := loadCQLQuery(cfg.Filter, *cqlFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := cfg.Log.NewLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupOutputFile(cfg)

	start, err := loadStartBoard(*gridFile, *fenString, *sideToMove)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading start position: %v\n", err)
		os.Exit(2)
	}

	os.Exit(run(cfg, log, start))
}

// run executes the single-game or batch mode and returns the exit code.
func run(cfg *config.Config, log zerolog.Logger, start *chess.Board) int {
	writer := output.NewReportWriter(cfg.OutputFile, cfg.Output)
	defer func() {
		if err := writer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		}
	}()

	if *batchFile != "" {
		lines, err := readBatchInput(*batchFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading batch file %s: %v\n", *batchFile, err)
			return 2
		}
		failures, err := runBatch(cfg, log, start, lines, writer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return 2
		}
		if failures > 0 {
			return 1
		}
		return 0
	}

	line, err := movesLine(*coordMoves, *sanMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	ok, err := runSingle(cfg, log, start, line, *randomPlies, writer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if !ok {
		return 1
	}
	return 0
}

// readBatchInput reads the game lines of path, or of stdin for "-".
func readBatchInput(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	return readLines(r)
}

// loadCQLQuery reads the query file, if any, into cfg and checks that the
// query parses.
func loadCQLQuery(cfg *config.FilterConfig, path string) error {
	if path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			return fmt.Errorf("reading CQL file %s: %w", path, err)
		}
		cfg.CQLQuery = strings.TrimSpace(string(content))
	}
	if cfg.CQLQuery == "" {
		return nil
	}
	if _, err := cql.Parse(cfg.CQLQuery); err != nil {
		return fmt.Errorf("parsing CQL query: %w", err)
	}
	return nil
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(2)
	}
	cfg.SetOutput(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-rules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Replays chess moves, rejecting illegal ones, and reports the final position.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -san \"e4 e5 Bc4 Nc6 Qh5 Nf6 Qxf7\"\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -moves \"f2f3 e7e5 g2g4 d8h4\" -json\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -random 40 -seed 7\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -batch games.txt -workers 4\n")
	fmt.Fprintf(os.Stderr, "  chess-rules -batch games.txt -cql \"(and mate (attack N k))\" -e\n")
	fmt.Fprintf(os.Stderr, "\nExit status: 0 all moves legal, 1 a move was rejected, 2 usage or I/O error.\n")
}
