package config

import (
	"math/rand"
	"time"
)

// RulesConfig holds settings for how moves are judged.
type RulesConfig struct {
	// StrictLegality rejects moves that leave the mover's king in check.
	// When false only the pseudo-legal checks apply.
	StrictLegality bool

	// Seed seeds random move selection; 0 picks a time-based seed
	Seed int64
}

// NewRulesConfig creates a RulesConfig with default values.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{
		StrictLegality: true,
	}
}

// NewRand returns a generator seeded from Seed.
func (r *RulesConfig) NewRand() *rand.Rand {
	seed := r.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
