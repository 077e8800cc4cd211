package strategy

import (
	"container/heap"
	"errors"
	"fmt"

	"conquest_ai/internal/grid"
)

var ErrIncompleteScoring = errors.New("strategy: frontier exhausted before every cell was scored")

// territory is a pending frontier entry. A cell may have several; the first one popped wins.
type territory struct {
	cell             int
	score            Score
	friendlyDistance int
	seq              int
}

type frontier []territory

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].score.Less(f[j].score) {
		return true
	}
	if f[j].score.Less(f[i].score) {
		return false
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(territory)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	t := old[n-1]
	*f = old[:n-1]
	return t
}

// ScoreMap holds one finalized score per cell, indexed by the grid's row-major index.
type ScoreMap struct {
	g        *grid.Grid
	scores   []Score
	distance []int
	done     []bool
	n        int
}

func newScoreMap(g *grid.Grid) *ScoreMap {
	return &ScoreMap{
		g:        g,
		scores:   make([]Score, g.Len()),
		distance: make([]int, g.Len()),
		done:     make([]bool, g.Len()),
	}
}

func (m *ScoreMap) Get(loc grid.Location) (Score, bool) {
	i := m.g.Index(loc)
	return m.scores[i], m.done[i]
}

// FriendlyDistance is the relaxation hop count recorded when loc was finalized.
func (m *ScoreMap) FriendlyDistance(loc grid.Location) int { return m.distance[m.g.Index(loc)] }

func (m *ScoreMap) Len() int       { return m.n }
func (m *ScoreMap) Complete() bool { return m.n == len(m.scores) }

func (m *ScoreMap) finalize(t territory) {
	m.scores[t.cell] = t.score.Add(float64(t.friendlyDistance))
	m.distance[t.cell] = t.friendlyDistance
	m.done[t.cell] = true
	m.n++
}

// localCost is the number of turns of production needed to pay for the cell, plus one.
func localCost(c grid.Cell) Score {
	if c.Production == 0 {
		return Unreachable
	}
	return Reachable(float64(c.Strength)/float64(c.Production) + 1)
}

// ScoreTerritory runs the priority-ordered relaxation and scores every cell of g for self.
// alpha weights the carried score when propagating into a neutral cell.
func ScoreTerritory(g *grid.Grid, self int, alpha float64) (*ScoreMap, error) {
	sm := newScoreMap(g)
	f := make(frontier, 0, g.Len()*2)
	seq := 0
	push := func(cell int, s Score, fd int) {
		heap.Push(&f, territory{cell: cell, score: s, friendlyDistance: fd, seq: seq})
		seq++
	}

	cells := g.Cells()
	for i, c := range cells {
		own, err := grid.Classify(c.Owner, self)
		if err != nil {
			return nil, err
		}
		switch own {
		case grid.Neutral:
			push(i, localCost(c), 0)
		default:
			// Owned cells only score through friendly propagation; enemies never score.
			push(i, Unreachable, 0)
		}
	}

	for !sm.Complete() {
		if f.Len() == 0 {
			return nil, fmt.Errorf("%w: %d of %d", ErrIncompleteScoring, sm.Len(), g.Len())
		}
		t := heap.Pop(&f).(territory)
		if sm.done[t.cell] {
			continue
		}
		sm.finalize(t)
		if t.score.IsUnreachable() {
			continue
		}

		loc := g.LocationOf(t.cell)
		for _, d := range grid.Cardinals {
			n := g.Index(g.Neighbor(loc, d))
			if sm.done[n] {
				continue
			}
			nc := cells[n]
			own, err := grid.Classify(nc.Owner, self)
			if err != nil {
				return nil, err
			}
			switch own {
			case grid.Friendly:
				push(n, t.score.Add(float64(t.friendlyDistance+1)), t.friendlyDistance+1)
			case grid.Enemy:
				push(n, Unreachable, t.friendlyDistance)
			case grid.Neutral:
				push(n, blend(localCost(nc), t.score, alpha), t.friendlyDistance)
			default:
				return nil, fmt.Errorf("%w: ownership %v at %v", grid.ErrInvalidOwner, own, nc.Location())
			}
		}
	}
	return sm, nil
}
