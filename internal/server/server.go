// Package server exposes live games over HTTP and streams their moves over
// websockets.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/eco"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

// Server routes API requests to a game registry.
type Server struct {
	cfg      *config.Config
	games    *game.Registry
	book     *eco.Classifier
	hub      *Hub
	log      zerolog.Logger
	router   *mux.Router
	upgrader websocket.Upgrader
}

// New creates a server over games.
func New(cfg *config.Config, games *game.Registry, log zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		games:  games,
		book:   eco.NewBuiltinClassifier(),
		hub:    NewHub(log),
		log:    log,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	s.router.NotFoundHandler = http.HandlerFunc(notFound)
	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", s.createGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", s.getGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", s.deleteGame).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", s.postMove).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/suggest", s.suggest).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/opening", s.opening).Methods(http.MethodGet)

	s.router.HandleFunc("/ws/games/{id}", s.watchGame).Methods(http.MethodGet)
	return s
}

// Handler returns the router wrapped with access logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.log}),
		handlers.PrintRecoveryStack(false),
	)
	return handlers.LoggingHandler(s.log, recovery(s.router))
}

// Hub returns the websocket hub that receives move events.
func (s *Server) Hub() *Hub {
	return s.hub
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info().Dur("timeout", s.cfg.Server.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	s.hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// recoveryLogger adapts zerolog to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	log zerolog.Logger
}

func (r recoveryLogger) Println(v ...interface{}) {
	r.log.Error().Msg(fmt.Sprint(v...))
}
