package strategy

import (
	"encoding/json"

	"conquest_ai/internal/grid"
)

type Event struct {
	TurnsLeft int            `json:"turns_left"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
}

type Move struct {
	Loc grid.Location  `json:"loc"`
	Dir grid.Direction `json:"dir"`
}

// Strategy produces exactly one move per owned cell for a turn.
type Strategy interface {
	PlanTurn(g *grid.Grid, self int) ([]Move, error)
}

// Forfeit keeps every unit still. It is what gets sent when planning fails.
// An invalid self id owns nothing, so it forfeits with no moves at all.
func Forfeit(g *grid.Grid, self int) []Move {
	if self <= 0 {
		return []Move{}
	}
	owned := g.Owned(self)
	moves := make([]Move, len(owned))
	for i, c := range owned {
		moves[i] = Move{Loc: c.Location(), Dir: grid.Still}
	}
	return moves
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
