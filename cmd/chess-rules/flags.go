// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
)

var (
	// Input options
	coordMoves = flag.String("moves", "", "Coordinate moves to replay (e.g. \"e2e4 e7e5\")")
	sanMoves   = flag.String("san", "", "SAN moves to replay (e.g. \"e4 e5 Nf3\")")
	gridFile   = flag.String("grid", "", "Start from a grid file: 8 lines of 8 cells, rank 8 first")
	fenString  = flag.String("fen", "", "Start from a FEN placement (castling and en passant fields are ignored)")
	sideToMove = flag.String("side", "", "Side to move for -grid: white or black")
	batchFile  = flag.String("batch", "", "Replay one game per line of this file (- for stdin)")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Batch: skip games whose final position was already reported")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum remembered positions for -D (0 = unlimited)")

	// Openings
	addECO  = flag.Bool("e", false, "Classify each game's opening (games from the initial position only)")
	ecoFile = flag.String("eco-file", "", "Opening book replacing the built-in one: code<TAB>name<TAB>moves per line")

	// Game filters (batch)
	checkmateFilter      = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	stalemateFilter      = flag.Bool("stalemate", false, "Only output games ending in stalemate")
	underpromotionFilter = flag.Bool("underpromotion", false, "Games with underpromotion")
	repetitionFilter     = flag.Bool("repetition", false, "Games with 3-fold repetition")
	fiftyMoveFilter      = flag.Bool("fifty", false, "Games with 50-move rule")
	insufficientFilter   = flag.Bool("insufficient", false, "Games ending with insufficient mating material")
	minMoves             = flag.Int("minmoves", 0, "Minimum number of moves")
	maxMoves             = flag.Int("maxmoves", 0, "Maximum number of moves (0 = no limit)")
	stopAfter            = flag.Int("stopafter", 0, "Stop after matching N games")

	// CQL filter
	cqlQuery = flag.String("cql", "", "CQL query to filter games by position patterns")
	cqlFile  = flag.String("cql-file", "", "File containing CQL query")

	// Random play
	randomPlies = flag.Int("random", 0, "Play N random legal plies after the given moves")
	seed        = flag.Int64("seed", 0, "Random seed (0 = time based)")

	// Rules
	pseudoLegal = flag.Bool("pseudo", false, "Accept moves that leave the mover's king in check")

	// Output options
	jsonOutput = flag.Bool("json", false, "Output in JSON format")
	noGrid     = flag.Bool("nogrid", false, "Don't print the final board")
	showLegal  = flag.Bool("legal", false, "List the legal moves of the final position")
	outputFile = flag.String("o", "", "Output file (default: stdout)")

	// Logging
	verbose   = flag.Bool("v", false, "Log every applied move")
	logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	logFormat = flag.String("log-format", config.LogFormatConsole, "Log format: console or json")

	// Performance options
	workers    = flag.Int("workers", 0, "Number of batch workers (0 = auto-detect based on CPU cores)")
	bufferSize = flag.Int("buffer", 64, "Batch channel buffer size")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyOutputFlags(cfg)
	applyLogFlags(cfg)
	applyFilterFlags(cfg)
	applyMoveBoundsFlags(cfg)

	cfg.Rules.StrictLegality = !*pseudoLegal
	cfg.Rules.Seed = *seed
	cfg.Batch.Workers = *workers
	cfg.Batch.BufferSize = *bufferSize
	cfg.Batch.SuppressDuplicates = *suppressDuplicates
	cfg.Batch.DuplicateCapacity = *duplicateCapacity
}

// applyOutputFlags configures report formatting.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	cfg.Output.ShowGrid = !*noGrid
	cfg.Output.ShowLegalMoves = *showLegal
	cfg.Output.Verbose = *verbose
	cfg.Output.AddECO = *addECO || *ecoFile != ""
	cfg.Output.ECOFile = *ecoFile
}

// applyFilterFlags configures game filter settings.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.MatchCheckmate = *checkmateFilter
	cfg.Filter.MatchStalemate = *stalemateFilter
	cfg.Filter.MatchUnderpromotion = *underpromotionFilter
	cfg.Filter.CheckRepetition = *repetitionFilter
	cfg.Filter.CheckFiftyMoveRule = *fiftyMoveFilter
	cfg.Filter.CheckInsufficientMaterial = *insufficientFilter
	cfg.Filter.CQLQuery = *cqlQuery
	if *stopAfter > 0 {
		cfg.Filter.MaxMatches = uint(*stopAfter)
	}
}

// applyMoveBoundsFlags configures move bounds.
func applyMoveBoundsFlags(cfg *config.Config) {
	if *minMoves <= 0 && *maxMoves <= 0 {
		return
	}

	cfg.Filter.CheckMoveBounds = true
	cfg.Filter.UpperMoveBound = ^uint(0)
	if *minMoves > 0 {
		cfg.Filter.LowerMoveBound = uint(*minMoves)
	}
	if *maxMoves > 0 {
		cfg.Filter.UpperMoveBound = uint(*maxMoves)
	}
}

// applyLogFlags configures logging; -v raises the level to debug.
func applyLogFlags(cfg *config.Config) {
	cfg.Log.Level = *logLevel
	cfg.Log.Format = *logFormat
	if *verbose {
		cfg.Log.Level = "debug"
	}
}
