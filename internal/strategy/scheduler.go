package strategy

import (
	"log/slog"
	"sort"

	"conquest_ai/internal/config"
	"conquest_ai/internal/grid"
)

// Decision reasons reported in Decision events.
const (
	ReasonOverflowValve = "overflow_valve" // no good target but the cell would overflow
	ReasonHold          = "hold"
	ReasonOverflow      = "overflow"
	ReasonReinforce     = "reinforce" // another unit is moving in
	ReasonAttack        = "attack"
	ReasonExpand        = "expand"
	ReasonWait          = "wait"
)

// Schedule assigns one move per owned unit, strongest first. Each unit's commitment is
// in the ledger before the next unit is evaluated.
func (t *Turn) Schedule() []Move {
	units := t.Grid.Owned(t.Self)
	sort.SliceStable(units, func(i, j int) bool { return units[i].Strength > units[j].Strength })

	t.emit("TurnStart", map[string]any{"units": len(units), "endgame": t.Endgame()})
	moves := make([]Move, 0, len(units))
	for _, u := range units {
		dir, reason, score := t.decide(u)
		dest := t.Grid.Neighbor(u.Location(), dir)
		t.Ledger.Commit(dest, u.Strength)
		moves = append(moves, Move{Loc: u.Location(), Dir: dir})
		t.emit("Decision", map[string]any{
			"x": u.X, "y": u.Y, "strength": u.Strength,
			"dir": dir.String(), "reason": reason, "score": score.String(),
		})
	}
	t.emit("TurnEnd", map[string]any{"moves": len(moves), "committed": t.Ledger.Total()})
	return moves
}

func (t *Turn) decide(u grid.Cell) (grid.Direction, string, Score) {
	limit := t.Config.MaxStrength
	here := u.Location()
	mustMove := u.Strength+u.Production+t.Ledger.Pending(here) > limit

	cands := EvaluateCandidates(t, u)
	b := best(cands, t.TieBreak)

	if b.Score.IsUnreachable() {
		if mustMove {
			w := weakest(t.Grid, cands)
			return w.Dir, ReasonOverflowValve, w.Score
		}
		return grid.Still, ReasonHold, b.Score
	}
	if mustMove {
		return b.Dir, ReasonOverflow, b.Score
	}
	if t.Ledger.Pending(here) > 0 {
		return grid.Still, ReasonReinforce, b.Score
	}
	target := t.Grid.Cell(b.Dest)
	if target.Owner != t.Self && (u.Strength == limit || u.Strength > target.Strength) {
		return b.Dir, ReasonAttack, b.Score
	}
	if u.Strength >= t.Config.StrongMultiplier*u.Production {
		return b.Dir, ReasonExpand, b.Score
	}
	return grid.Still, ReasonWait, b.Score
}

// StageTwo is the territory-scoring planner. Its only state across turns is the
// count of turns left, which drives endgame detection.
type StageTwo struct {
	cfg       config.StrategyConfig
	tieBreak  TieBreaker
	turnsLeft int

	Emit func(Event)
}

var _ Strategy = (*StageTwo)(nil)

func NewStageTwo(cfg config.StrategyConfig, tb TieBreaker) *StageTwo {
	if tb == nil {
		tb = NewTieBreaker(cfg)
	}
	return &StageTwo{cfg: cfg, tieBreak: tb, turnsLeft: cfg.TurnHorizon}
}

func (s *StageTwo) TurnsLeft() int { return s.turnsLeft }

// SetTurnsLeft sets the counter as it stands before the next PlanTurn call.
func (s *StageTwo) SetTurnsLeft(n int) { s.turnsLeft = n }

// PlanTurn decrements the turn counter and plans every owned unit. If planning fails the
// returned moves keep every unit still, and the error says why.
func (s *StageTwo) PlanTurn(g *grid.Grid, self int) ([]Move, error) {
	s.turnsLeft--
	t, err := NewTurn(g, self, s.turnsLeft, s.cfg, s.tieBreak)
	if err != nil {
		slog.Warn("forfeiting turn", "turns_left", s.turnsLeft, "error", err)
		return Forfeit(g, self), err
	}
	t.Emit = s.Emit
	return t.Schedule(), nil
}
