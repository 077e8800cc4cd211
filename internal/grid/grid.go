package grid

import (
	"errors"
	"fmt"
)

var ErrBadDimensions = errors.New("grid: width and height must be positive")

type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell struct {
	X          int
	Y          int
	Owner      int
	Strength   int
	Production int
}

func (c Cell) Location() Location { return Location{X: c.X, Y: c.Y} }

// Grid is a toroidal map snapshot. All lookups wrap around both axes.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	g := &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
	for i := range g.cells {
		g.cells[i].X = i % width
		g.cells[i].Y = i / width
	}
	return g, nil
}

func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) wrap(x, y int) (int, int) {
	x %= g.Width
	if x < 0 {
		x += g.Width
	}
	y %= g.Height
	if y < 0 {
		y += g.Height
	}
	return x, y
}

func (g *Grid) Index(loc Location) int {
	x, y := g.wrap(loc.X, loc.Y)
	return y*g.Width + x
}

func (g *Grid) LocationOf(i int) Location {
	return Location{X: i % g.Width, Y: i / g.Width}
}

func (g *Grid) Set(x, y, owner, strength, production int) {
	x, y = g.wrap(x, y)
	g.cells[y*g.Width+x] = Cell{X: x, Y: y, Owner: owner, Strength: strength, Production: production}
}

func (g *Grid) At(x, y int) Cell {
	x, y = g.wrap(x, y)
	return g.cells[y*g.Width+x]
}

func (g *Grid) Cell(loc Location) Cell { return g.At(loc.X, loc.Y) }

func (g *Grid) Neighbor(loc Location, d Direction) Location {
	dx, dy := d.offset()
	x, y := g.wrap(loc.X+dx, loc.Y+dy)
	return Location{X: x, Y: y}
}

// Distance is the Manhattan distance taking wraparound into account.
func (g *Grid) Distance(a, b Location) int {
	dx := abs(a.X - b.X)
	if g.Width-dx < dx {
		dx = g.Width - dx
	}
	dy := abs(a.Y - b.Y)
	if g.Height-dy < dy {
		dy = g.Height - dy
	}
	return dx + dy
}

// Cells returns the row-major cell slice. Callers must not mutate it.
func (g *Grid) Cells() []Cell { return g.cells }

// Owned lists self's cells in row-major order.
func (g *Grid) Owned(self int) []Cell {
	var out []Cell
	for _, c := range g.cells {
		if c.Owner == self {
			out = append(out, c)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
