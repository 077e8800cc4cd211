package strategy

import "conquest_ai/internal/grid"

type MoveCandidate struct {
	Dest  grid.Location
	Dir   grid.Direction
	Score Score
}

// EvaluateCandidates scores the four cardinal moves of unit against the turn's score map
// and ledger. Staying put is not a candidate.
func EvaluateCandidates(t *Turn, unit grid.Cell) [4]MoveCandidate {
	var out [4]MoveCandidate
	from := unit.Location()
	for i, d := range grid.Cardinals {
		dest := t.Grid.Neighbor(from, d)
		out[i] = MoveCandidate{Dest: dest, Dir: d, Score: t.candidateScore(unit, dest)}
	}
	return out
}

func (t *Turn) candidateScore(unit grid.Cell, dest grid.Location) Score {
	if t.Endgame() {
		return t.endgameScore(unit, dest)
	}
	if t.Ledger.Pending(dest)+unit.Strength > t.Config.MaxStrength {
		return Unreachable
	}
	s, _ := t.Scores.Get(dest)
	return s
}

func (t *Turn) baseScore(dest grid.Location) Score {
	if s, ok := t.Scores.Get(dest); ok {
		return s
	}
	return Reachable(0)
}

// endgameScore discounts cells the unit can take or fill so units push outward late in the game.
func (t *Turn) endgameScore(unit grid.Cell, dest grid.Location) Score {
	base := t.baseScore(dest)
	dc := t.Grid.Cell(dest)
	if dc.Owner == 0 || dc.Strength < unit.Strength {
		return base.Scale(t.Config.EndgameFactor)
	}
	return base
}

// best returns the lowest-scoring candidate, consulting the tie breaker on equal scores.
func best(cands [4]MoveCandidate, tb TieBreaker) MoveCandidate {
	b := cands[0]
	for _, c := range cands[1:] {
		if c.Score.Less(b.Score) || (c.Score.Equal(b.Score) && tb.Before(c, b)) {
			b = c
		}
	}
	return b
}

// weakest returns the candidate whose destination holds the least strength.
// The first one in cardinal order wins ties.
func weakest(g *grid.Grid, cands [4]MoveCandidate) MoveCandidate {
	w := cands[0]
	for _, c := range cands[1:] {
		if g.Cell(c.Dest).Strength < g.Cell(w.Dest).Strength {
			w = c
		}
	}
	return w
}
