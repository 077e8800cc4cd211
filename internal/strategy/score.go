package strategy

import (
	"encoding/json"
	"strconv"
)

// Score is a cost-to-reach value. The zero value is Unreachable, and arithmetic on an
// unreachable score stays unreachable.
type Score struct {
	value     float64
	reachable bool
}

var Unreachable = Score{}

func Reachable(v float64) Score { return Score{value: v, reachable: true} }

func (s Score) IsUnreachable() bool { return !s.reachable }

func (s Score) Value() (float64, bool) { return s.value, s.reachable }

func (s Score) Add(d float64) Score {
	if !s.reachable {
		return s
	}
	return Reachable(s.value + d)
}

func (s Score) Scale(f float64) Score {
	if !s.reachable {
		return s
	}
	return Reachable(s.value * f)
}

// Less orders reachable scores ascending, with every unreachable score last.
func (s Score) Less(o Score) bool {
	switch {
	case !s.reachable:
		return false
	case !o.reachable:
		return true
	default:
		return s.value < o.value
	}
}

func (s Score) Equal(o Score) bool {
	if !s.reachable || !o.reachable {
		return s.reachable == o.reachable
	}
	return s.value == o.value
}

func (s Score) String() string {
	if !s.reachable {
		return "unreachable"
	}
	return strconv.FormatFloat(s.value, 'g', -1, 64)
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.reachable {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// blend mixes a cell's own cost with the cost carried from the cell it is entered from.
func blend(local, carried Score, alpha float64) Score {
	if !local.reachable || !carried.reachable {
		return Unreachable
	}
	return Reachable((1-alpha)*local.value + alpha*carried.value)
}
