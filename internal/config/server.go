package config

import (
	"fmt"
	"time"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// ListenAddr is the host:port the server binds to
	ListenAddr string

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers
	ReadHeaderTimeout time.Duration

	// MaxGames caps the number of live games in the registry
	MaxGames int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:        ":8080",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxGames:          1000,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.MaxGames < 1 {
		return fmt.Errorf("max games (%d) must be positive: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	if s.ShutdownTimeout < 0 || s.ReadHeaderTimeout < 0 {
		return fmt.Errorf("negative timeout: %w", errors.ErrInvalidConfig)
	}
	return nil
}
