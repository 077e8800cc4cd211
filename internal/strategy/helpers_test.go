package strategy

import (
	"math"
	"testing"

	"conquest_ai/internal/config"
	"conquest_ai/internal/grid"
)

type site struct {
	x, y                        int
	owner, strength, production int
}

// newGrid fills every cell with fill and then applies the listed sites.
func newGrid(t *testing.T, w, h int, fill site, sites ...site) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, fill.owner, fill.strength, fill.production)
		}
	}
	for _, s := range sites {
		g.Set(s.x, s.y, s.owner, s.strength, s.production)
	}
	return g
}

func newTestTurn(t *testing.T, g *grid.Grid, self, turnsLeft int) *Turn {
	t.Helper()
	tt, err := NewTurn(g, self, turnsLeft, config.DefaultStrategy(), StableTieBreak{})
	if err != nil {
		t.Fatalf("NewTurn: %v", err)
	}
	return tt
}

func scoreAt(t *testing.T, sm *ScoreMap, x, y int) Score {
	t.Helper()
	s, ok := sm.Get(grid.Location{X: x, Y: y})
	if !ok {
		t.Fatalf("cell (%d,%d) not finalized", x, y)
	}
	return s
}

func wantScore(t *testing.T, label string, got Score, want float64) {
	t.Helper()
	v, ok := got.Value()
	if !ok {
		t.Fatalf("%s: got unreachable, want %v", label, want)
	}
	if math.Abs(v-want) > 1e-9 {
		t.Fatalf("%s: got %v, want %v", label, v, want)
	}
}

func findMove(t *testing.T, moves []Move, x, y int) Move {
	t.Helper()
	for _, m := range moves {
		if m.Loc == (grid.Location{X: x, Y: y}) {
			return m
		}
	}
	t.Fatalf("no move for (%d,%d)", x, y)
	return Move{}
}
