package config

import (
	"fmt"

	"github.com/QuadDarv1ne/chess-rules-go/internal/errors"
)

// FilterConfig selects which batch games are reported. All conditions are
// off by default.
type FilterConfig struct {
	// Move bounds, in full moves
	CheckMoveBounds bool
	LowerMoveBound  uint
	UpperMoveBound  uint

	// Match conditions
	MatchCheckmate            bool
	MatchStalemate            bool
	MatchUnderpromotion       bool
	CheckRepetition           bool
	CheckFiftyMoveRule        bool
	CheckInsufficientMaterial bool

	// CQLQuery keeps games reaching a position that matches the query
	CQLQuery string

	// MaxMatches stops reporting after this many games; 0 means no limit
	MaxMatches uint
}

// NewFilterConfig creates a FilterConfig with every filter disabled.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Active reports whether any condition is enabled.
func (f *FilterConfig) Active() bool {
	return f.CheckMoveBounds || f.MatchCheckmate || f.MatchStalemate ||
		f.MatchUnderpromotion || f.CheckRepetition || f.CheckFiftyMoveRule ||
		f.CheckInsufficientMaterial || f.CQLQuery != ""
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if f.CheckMoveBounds && f.LowerMoveBound > f.UpperMoveBound {
		return fmt.Errorf("lower move bound (%d) > upper move bound (%d): %w",
			f.LowerMoveBound, f.UpperMoveBound, errors.ErrInvalidConfig)
	}
	if f.MatchCheckmate && f.MatchStalemate {
		return fmt.Errorf("checkmate and stalemate filters exclude each other: %w", errors.ErrInvalidConfig)
	}
	return nil
}
