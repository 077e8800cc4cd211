package grid

import "fmt"

type Direction int

const (
	Still Direction = iota
	North
	East
	South
	West
)

// Cardinals is the fixed evaluation order for move candidates.
var Cardinals = [4]Direction{North, East, South, West}

var directionNames = [...]string{"STILL", "NORTH", "EAST", "SOUTH", "WEST"}

func (d Direction) String() string {
	if d < Still || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Still
	}
}

func (d Direction) offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if d < Still || d > West {
		return nil, fmt.Errorf("grid: invalid direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if name == string(b) {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("grid: unknown direction %q", string(b))
}
