/*
Package maze provides tools for creating and querying square grid mazes.

It defines the Grid structure, composed of Cell objects that record which of
their four sides are open. New carves the grid into a spanning tree with the
Aldous-Broder random walk, then adds two breaches on the boundary: one below
the start cell and one above the end cell.

After New returns, the grid is read-only. Readers share it by pointer.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	// MaxSize is the largest supported grid dimension.
	MaxSize = 64
)

var (
	ErrInvalidSize = errors.New("invalid maze size")
	ErrNoNeighbors = errors.New("cell has no neighbors")
	ErrUnknownSide = errors.New("unknown side")
)

// Grid is an N by N maze. Each cell knows which of its sides are open.
type Grid struct {
	size  int
	cells map[Position]*Cell
	start Position
	end   Position
}

// NewRand returns a random source for the given seed.
// A zero seed picks a time based one.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// New initializes a fully walled grid of the given size and carves it.
// A nil rng is replaced by a time seeded one.
func New(size int, rng *rand.Rand) (*Grid, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	g := newWalled(size)

	if err := g.generate(rng); err != nil {
		return nil, err
	}
	return g, nil
}

// newWalled returns a grid with every wall standing.
func newWalled(size int) *Grid {
	g := &Grid{
		size:  size,
		cells: make(map[Position]*Cell, size*size),
		start: Position{X: size / 2, Y: 0},
		end:   Position{X: min(1, size-1), Y: size - 1},
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			pos := Position{X: x, Y: y}
			g.cells[pos] = &Cell{Pos: pos}
		}
	}
	return g
}

// openBreaches opens the entrance below start and the exit above end.
func (g *Grid) openBreaches() {
	g.openWall(g.start, Down)
	g.openWall(g.end, Up)
}

// Size returns the number of cells along one edge.
func (g *Grid) Size() int {
	return g.size
}

// Start returns the entrance cell.
func (g *Grid) Start() Position {
	return g.start
}

// End returns the exit cell.
func (g *Grid) End() Position {
	return g.end
}

// Breaches returns the boundary sides opened on pos by the entrance and exit.
func (g *Grid) Breaches(pos Position) Sides {
	var s Sides
	if pos == g.start {
		s = s.Add(Down)
	}
	if pos == g.end {
		s = s.Add(Up)
	}
	return s
}

// InBounds reports whether pos names a cell of the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.size && pos.Y >= 0 && pos.Y < g.size
}

// Cell returns the cell at pos. It panics when pos is out of the grid.
func (g *Grid) Cell(pos Position) *Cell {
	c, ok := g.cells[pos]
	if !ok {
		panic(fmt.Sprintf("maze: position %s out of %dx%d grid", pos, g.size, g.size))
	}
	return c
}

// Neighbor returns the adjacent cell toward side, if it exists.
func (g *Grid) Neighbor(pos Position, side Side) (Position, bool) {
	_ = g.Cell(pos)
	next := pos.Step(side)
	if !g.InBounds(next) {
		return Position{}, false
	}
	return next, true
}

// IsOpen reports whether the wall on side of pos has been removed.
func (g *Grid) IsOpen(pos Position, side Side) bool {
	return g.Cell(pos).open.Has(side)
}

// Walls returns the walled sides of pos.
func (g *Grid) Walls(pos Position) Sides {
	return g.Cell(pos).Walls()
}

// OpenSides returns the open sides of pos.
func (g *Grid) OpenSides(pos Position) Sides {
	return g.Cell(pos).open
}

// neighbors finds every in-bounds cell next to pos, in Directions order.
func (g *Grid) neighbors(pos Position) []Side {
	result := make([]Side, 0, 4)
	for _, side := range Directions {
		if g.InBounds(pos.Step(side)) {
			result = append(result, side)
		}
	}
	return result
}

// openWall removes the wall on side of pos and the matching wall of the
// neighbor, keeping openness symmetric. Boundary sides open on pos alone.
func (g *Grid) openWall(pos Position, side Side) {
	c := g.Cell(pos)
	c.open = c.open.Add(side)
	if next, ok := g.Neighbor(pos, side); ok {
		n := g.cells[next]
		n.open = n.open.Add(side.Opposite())
	}
}

// generate carves the grid with the Aldous-Broder random walk.
func (g *Grid) generate(rng *rand.Rand) error {
	g.openBreaches()

	visited := make(map[Position]struct{}, g.size*g.size)
	current := g.start
	visited[current] = struct{}{}

	for len(visited) < g.size*g.size {
		options := g.neighbors(current)
		if len(options) == 0 {
			return fmt.Errorf("%w: %s", ErrNoNeighbors, current)
		}
		side := options[rng.Intn(len(options))]
		next := current.Step(side)
		if _, seen := visited[next]; !seen {
			g.openWall(current, side)
			visited[next] = struct{}{}
		}
		current = next
	}
	return nil
}

// String provides a textual representation of the maze, top row first.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the maze like String and places marks in their cells.
func (g *Grid) Render(marks map[Position]rune) string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+")
	for x := 0; x < g.size; x++ {
		if g.IsOpen(Position{X: x, Y: g.size - 1}, Up) {
			b.WriteString("   +")
		} else {
			b.WriteString("---+")
		}
	}
	b.WriteString("\n")

	for y := g.size - 1; y >= 0; y-- {
		// Cell rows
		b.WriteString("|")
		for x := 0; x < g.size; x++ {
			pos := Position{X: x, Y: y}
			mark := ' '
			if r, ok := marks[pos]; ok {
				mark = r
			}
			b.WriteString(" " + string(mark) + " ")
			if g.IsOpen(pos, Right) {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")

		// Wall rows
		b.WriteString("+")
		for x := 0; x < g.size; x++ {
			if g.IsOpen(Position{X: x, Y: y}, Down) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Passage names an opening between a cell and its neighbor toward Side.
type Passage struct {
	From Position
	Side Side
}

// FromPassages builds a grid with the breaches and exactly the given
// passages opened. It is meant for fixed layouts such as test fixtures.
func FromPassages(size int, passages ...Passage) (*Grid, error) {
	if size < 1 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	g := newWalled(size)
	g.openBreaches()

	for _, p := range passages {
		if !g.InBounds(p.From) || !g.InBounds(p.From.Step(p.Side)) {
			return nil, fmt.Errorf("passage %s %s leaves the grid", p.From, p.Side)
		}
		g.openWall(p.From, p.Side)
	}
	return g, nil
}

// Corridor returns the passages joining from to to along a straight line.
func Corridor(from, to Position) []Passage {
	var passages []Passage
	var side Side
	switch {
	case from.Y == to.Y && to.X > from.X:
		side = Right
	case from.Y == to.Y && to.X < from.X:
		side = Left
	case from.X == to.X && to.Y > from.Y:
		side = Up
	case from.X == to.X && to.Y < from.Y:
		side = Down
	default:
		return nil
	}
	for p := from; p != to; p = p.Step(side) {
		passages = append(passages, Passage{From: p, Side: side})
	}
	return passages
}
