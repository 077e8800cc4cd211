package grid

import (
	"errors"
	"fmt"
)

var ErrInvalidOwner = errors.New("grid: invalid owner")

type Ownership int

const (
	Neutral Ownership = iota
	Friendly
	Enemy
)

func (o Ownership) String() string {
	switch o {
	case Neutral:
		return "neutral"
	case Friendly:
		return "friendly"
	case Enemy:
		return "enemy"
	}
	return fmt.Sprintf("Ownership(%d)", int(o))
}

// Classify maps a raw owner id to an ownership class from self's point of view.
// Owner 0 is unowned; player ids start at 1.
func Classify(owner, self int) (Ownership, error) {
	if self <= 0 {
		return 0, fmt.Errorf("%w: self id %d", ErrInvalidOwner, self)
	}
	switch {
	case owner < 0:
		return 0, fmt.Errorf("%w: owner id %d", ErrInvalidOwner, owner)
	case owner == self:
		return Friendly, nil
	case owner == 0:
		return Neutral, nil
	default:
		return Enemy, nil
	}
}
