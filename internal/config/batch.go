package config

import (
	"fmt"
	"runtime"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// BatchConfig holds settings for parallel batch validation.
type BatchConfig struct {
	// Workers is the number of worker goroutines; 0 means GOMAXPROCS
	Workers int

	// BufferSize is the capacity of the work and result channels
	BufferSize int

	// SuppressDuplicates drops games whose final position was already
	// reported
	SuppressDuplicates bool

	// DuplicateCapacity caps the remembered positions; 0 means unlimited
	DuplicateCapacity int
}

// NewBatchConfig creates a BatchConfig with default values.
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{
		BufferSize: 64,
	}
}

// WorkerCount returns the effective number of workers.
func (b *BatchConfig) WorkerCount() int {
	if b.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return b.Workers
}

// Validate checks that the batch configuration is valid.
func (b *BatchConfig) Validate() error {
	if b.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative: %w", b.Workers, errors.ErrInvalidConfig)
	}
	if b.BufferSize < 0 {
		return fmt.Errorf("buffer size (%d) must not be negative: %w", b.BufferSize, errors.ErrInvalidConfig)
	}
	if b.DuplicateCapacity < 0 {
		return fmt.Errorf("duplicate capacity (%d) must not be negative: %w", b.DuplicateCapacity, errors.ErrInvalidConfig)
	}
	return nil
}
