package strategy

import "conquest_ai/internal/grid"

// Ledger accumulates the strength committed to each destination during one turn.
// It only grows; a new turn gets a new ledger.
type Ledger struct {
	pending map[grid.Location]int
	total   int
}

func NewLedger() *Ledger {
	return &Ledger{pending: map[grid.Location]int{}}
}

func (l *Ledger) Commit(dest grid.Location, strength int) {
	l.pending[dest] += strength
	l.total += strength
}

func (l *Ledger) Pending(loc grid.Location) int { return l.pending[loc] }

// Total is the sum of every commitment made so far.
func (l *Ledger) Total() int { return l.total }
