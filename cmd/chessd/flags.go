// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
)

var (
	// Server options
	listenAddr      = flag.String("addr", ":8080", "Address to listen on")
	maxGames        = flag.Int("max-games", 1000, "Maximum number of live games")
	shutdownTimeout = flag.Duration("shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")

	// Rules
	pseudoLegal = flag.Bool("pseudo", false, "Accept moves that leave the mover's king in check")
	seed        = flag.Int64("seed", 0, "Seed for move suggestions (0 = time based)")

	// Logging
	logLevel  = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat = flag.String("log-format", config.LogFormatConsole, "Log format: console or json")

	version = flag.Bool("version", false, "Show version")
)

// buildConfig turns the parsed flags into a configuration.
func buildConfig() *config.Config {
	return config.NewConfigBuilder().
		WithListenAddr(*listenAddr).
		WithMaxGames(*maxGames).
		WithShutdownTimeout(*shutdownTimeout).
		WithStrictLegality(!*pseudoLegal).
		WithSeed(*seed).
		WithLogLevel(*logLevel).
		WithLogFormat(*logFormat).
		Build()
}
