package config

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("config: invalid value")

const (
	TieBreakStable = "stable"
	TieBreakRandom = "random"
)

// StrategyConfig holds the tuning constants of the stage-two planner.
// The defaults are hand-tuned heuristics and have no derivation beyond play testing.
type StrategyConfig struct {
	ScoreBlend       float64 `yaml:"score_blend"`       // weight of the carried score when entering a neutral cell
	MaxStrength      int     `yaml:"max_strength"`      // per-cell capacity cap
	StrongMultiplier int     `yaml:"strong_multiplier"` // move once strength >= multiplier*production
	EndgameThreshold int     `yaml:"endgame_threshold"` // turns left below which endgame scoring applies
	EndgameFactor    float64 `yaml:"endgame_factor"`
	TurnHorizon      int     `yaml:"turn_horizon"`
	TieBreak         string  `yaml:"tie_break"`
	Seed             int64   `yaml:"seed"`
}

func DefaultStrategy() StrategyConfig {
	return StrategyConfig{
		ScoreBlend:       0.5,
		MaxStrength:      255,
		StrongMultiplier: 6,
		EndgameThreshold: 100,
		EndgameFactor:    0.5,
		TurnHorizon:      400,
		TieBreak:         TieBreakStable,
	}
}

func (c StrategyConfig) Validate() error {
	switch {
	case c.ScoreBlend < 0 || c.ScoreBlend > 1:
		return fmt.Errorf("%w: score_blend %v not in [0,1]", ErrInvalid, c.ScoreBlend)
	case c.MaxStrength <= 0:
		return fmt.Errorf("%w: max_strength %d", ErrInvalid, c.MaxStrength)
	case c.StrongMultiplier < 0:
		return fmt.Errorf("%w: strong_multiplier %d", ErrInvalid, c.StrongMultiplier)
	case c.EndgameThreshold < 0:
		return fmt.Errorf("%w: endgame_threshold %d", ErrInvalid, c.EndgameThreshold)
	case c.EndgameFactor < 0:
		return fmt.Errorf("%w: endgame_factor %v", ErrInvalid, c.EndgameFactor)
	case c.TurnHorizon <= 0:
		return fmt.Errorf("%w: turn_horizon %d", ErrInvalid, c.TurnHorizon)
	}
	if c.TieBreak != TieBreakStable && c.TieBreak != TieBreakRandom {
		return fmt.Errorf("%w: tie_break %q", ErrInvalid, c.TieBreak)
	}
	return nil
}

// MatchConfig describes one offline run of the planner.
type MatchConfig struct {
	PlayerID  int    `yaml:"player_id"`
	TurnsLeft int    `yaml:"turns_left"`
	Snapshot  string `yaml:"snapshot"`
	ReplayDir string `yaml:"replay_dir"`
}
