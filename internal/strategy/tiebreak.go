package strategy

import (
	"math/rand"

	"conquest_ai/internal/config"
	"conquest_ai/internal/util"
)

// TieBreaker decides between two candidates whose scores are equal.
type TieBreaker interface {
	Before(a, b MoveCandidate) bool
}

// StableTieBreak prefers the destination that comes first in row-major order,
// then the earlier cardinal direction.
type StableTieBreak struct{}

func (StableTieBreak) Before(a, b MoveCandidate) bool {
	if a.Dest.Y != b.Dest.Y {
		return a.Dest.Y < b.Dest.Y
	}
	if a.Dest.X != b.Dest.X {
		return a.Dest.X < b.Dest.X
	}
	return a.Dir < b.Dir
}

// RandomTieBreak flips a coin from a seeded source, so runs are reproducible per seed.
type RandomTieBreak struct {
	Rng *rand.Rand
}

func (r RandomTieBreak) Before(a, b MoveCandidate) bool { return r.Rng.Intn(2) == 0 }

func NewTieBreaker(cfg config.StrategyConfig) TieBreaker {
	if cfg.TieBreak == config.TieBreakRandom {
		return RandomTieBreak{Rng: util.New(cfg.Seed)}
	}
	return StableTieBreak{}
}
