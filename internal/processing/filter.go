package processing

import (
	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/engine"
)

// Matches reports whether a satisfies every condition enabled in cfg.
func Matches(a *GameAnalysis, cfg *config.FilterConfig) bool {
	if a == nil {
		return !cfg.Active()
	}
	if cfg.CheckMoveBounds {
		moves := uint((a.Plies + 1) / 2)
		if moves < cfg.LowerMoveBound || moves > cfg.UpperMoveBound {
			return false
		}
	}
	if cfg.MatchCheckmate && a.FinalStatus != engine.Checkmate {
		return false
	}
	if cfg.MatchStalemate && a.FinalStatus != engine.Stalemate {
		return false
	}
	if cfg.MatchUnderpromotion && !a.HasUnderpromotion {
		return false
	}
	if cfg.CheckRepetition && !a.HasRepetition {
		return false
	}
	if cfg.CheckFiftyMoveRule && !a.HasFiftyMoveRule {
		return false
	}
	if cfg.CheckInsufficientMaterial && !a.HasInsufficientMaterial {
		return false
	}
	return true
}
