package strategy

import (
	"fmt"

	"conquest_ai/internal/config"
	"conquest_ai/internal/grid"
)

// Turn is everything one planning pass reads and writes. Nothing in it survives the turn.
type Turn struct {
	Grid      *grid.Grid
	Self      int
	TurnsLeft int
	Config    config.StrategyConfig
	Scores    *ScoreMap
	Ledger    *Ledger
	TieBreak  TieBreaker
	Emit      func(Event)
}

// NewTurn scores the snapshot and prepares an empty ledger.
func NewTurn(g *grid.Grid, self, turnsLeft int, cfg config.StrategyConfig, tb TieBreaker) (*Turn, error) {
	scores, err := ScoreTerritory(g, self, cfg.ScoreBlend)
	if err != nil {
		return nil, fmt.Errorf("score territory: %w", err)
	}
	if tb == nil {
		tb = StableTieBreak{}
	}
	return &Turn{
		Grid:      g,
		Self:      self,
		TurnsLeft: turnsLeft,
		Config:    cfg,
		Scores:    scores,
		Ledger:    NewLedger(),
		TieBreak:  tb,
	}, nil
}

func (t *Turn) Endgame() bool { return t.TurnsLeft < t.Config.EndgameThreshold }

func (t *Turn) emit(typ string, payload map[string]any) {
	if t.Emit == nil {
		return
	}
	t.Emit(Event{TurnsLeft: t.TurnsLeft, Type: typ, Payload: payload})
}
