// chessd serves live chess games over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
	"github.com/QuadDarv1ne/chess-rules-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("chessd version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := buildConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := cfg.Log.NewLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := game.NewRegistry(cfg.Server.MaxGames, cfg.Rules.StrictLegality)
	srv := server.New(cfg, registry, log)

	log.Info().
		Int("max_games", cfg.Server.MaxGames).
		Bool("strict", cfg.Rules.StrictLegality).
		Msg("starting chessd")

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
