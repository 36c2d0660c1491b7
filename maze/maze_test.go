package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPairs counts the open walls between two in-bounds cells.
func openPairs(g *Grid) int {
	n := 0
	for x := 0; x < g.Size(); x++ {
		for y := 0; y < g.Size(); y++ {
			pos := Position{X: x, Y: y}
			for _, side := range []Side{Right, Up} {
				if _, ok := g.Neighbor(pos, side); ok && g.IsOpen(pos, side) {
					n++
				}
			}
		}
	}
	return n
}

// reachable walks open passages from start and returns every cell reached.
func reachable(g *Grid, start Position) map[Position]struct{} {
	seen := map[Position]struct{}{start: {}}
	stack := []Position{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, side := range g.OpenSides(cur).List() {
			next, ok := g.Neighbor(cur, side)
			if !ok {
				continue
			}
			if _, done := seen[next]; !done {
				seen[next] = struct{}{}
				stack = append(stack, next)
			}
		}
	}
	return seen
}

// countPaths counts the simple paths between from and to.
func countPaths(g *Grid, from, to Position, onPath map[Position]bool) int {
	if from == to {
		return 1
	}
	onPath[from] = true
	defer delete(onPath, from)

	total := 0
	for _, side := range g.OpenSides(from).List() {
		next, ok := g.Neighbor(from, side)
		if !ok || onPath[next] {
			continue
		}
		total += countPaths(g, next, to, onPath)
	}
	return total
}

func TestNewSpanningTree(t *testing.T) {
	for size := 1; size <= 9; size++ {
		for seed := int64(1); seed <= 5; seed++ {
			g, err := New(size, NewRand(seed))
			require.NoError(t, err)

			assert.Equal(t, size*size-1, openPairs(g), "size %d seed %d", size, seed)
			assert.Len(t, reachable(g, g.Start()), size*size, "size %d seed %d", size, seed)
		}
	}
}

func TestNewOpennessIsSymmetric(t *testing.T) {
	g, err := New(12, NewRand(42))
	require.NoError(t, err)

	for x := 0; x < g.Size(); x++ {
		for y := 0; y < g.Size(); y++ {
			pos := Position{X: x, Y: y}
			for _, side := range Directions {
				next, ok := g.Neighbor(pos, side)
				if !ok {
					continue
				}
				assert.Equal(t, g.IsOpen(pos, side), g.IsOpen(next, side.Opposite()), "%s %s", pos, side)
			}
		}
	}
}

func TestNewBreaches(t *testing.T) {
	g, err := New(5, NewRand(7))
	require.NoError(t, err)

	assert.Equal(t, Position{X: 2, Y: 0}, g.Start())
	assert.Equal(t, Position{X: 1, Y: 4}, g.End())
	assert.True(t, g.IsOpen(g.Start(), Down))
	assert.True(t, g.IsOpen(g.End(), Up))

	// No other boundary side is open.
	for x := 0; x < g.Size(); x++ {
		for y := 0; y < g.Size(); y++ {
			pos := Position{X: x, Y: y}
			for _, side := range Directions {
				if _, ok := g.Neighbor(pos, side); ok {
					continue
				}
				expected := g.Breaches(pos).Has(side)
				assert.Equal(t, expected, g.IsOpen(pos, side), "%s %s", pos, side)
			}
		}
	}
}

func TestNewSinglePathBetweenStartAndEnd(t *testing.T) {
	g, err := New(5, NewRand(2024))
	require.NoError(t, err)

	assert.Equal(t, 1, countPaths(g, g.Start(), g.End(), map[Position]bool{}))
}

func TestNewDeterministicForSeed(t *testing.T) {
	a, err := New(8, NewRand(99))
	require.NoError(t, err)
	b, err := New(8, NewRand(99))
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestNewSingleCell(t *testing.T) {
	g, err := New(1, NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, g.Start(), g.End())
	assert.Equal(t, Sides(0).Add(Up).Add(Down), g.OpenSides(g.Start()))
	assert.Equal(t, Sides(0).Add(Up).Add(Down), g.Breaches(g.Start()))
}

func TestNewInvalidSize(t *testing.T) {
	for _, size := range []int{0, -3, MaxSize + 1} {
		_, err := New(size, nil)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestGridQueries(t *testing.T) {
	g, err := FromPassages(3, Corridor(Position{X: 0, Y: 1}, Position{X: 2, Y: 1})...)
	require.NoError(t, err)

	mid := Position{X: 1, Y: 1}
	assert.Equal(t, Sides(0).Add(Left).Add(Right), g.OpenSides(mid))
	assert.Equal(t, Sides(0).Add(Up).Add(Down), g.Walls(mid))

	next, ok := g.Neighbor(mid, Up)
	assert.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 2}, next)

	_, ok = g.Neighbor(Position{X: 0, Y: 0}, Left)
	assert.False(t, ok)

	assert.Panics(t, func() { g.IsOpen(Position{X: 3, Y: 0}, Left) })
}

func TestFromPassagesRejectsBoundary(t *testing.T) {
	_, err := FromPassages(3, Passage{From: Position{X: 0, Y: 0}, Side: Left})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	g, err := FromPassages(2,
		Passage{From: Position{X: 0, Y: 0}, Side: Right},
		Passage{From: Position{X: 0, Y: 0}, Side: Up},
		Passage{From: Position{X: 1, Y: 0}, Side: Up},
	)
	require.NoError(t, err)

	expected := "" +
		"+---+   +\n" +
		"|   |   |\n" +
		"+   +   +\n" +
		"|     @ |\n" +
		"+---+   +\n"
	assert.Equal(t, expected, g.Render(map[Position]rune{{X: 1, Y: 0}: '@'}))
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("UP")
	require.NoError(t, err)
	assert.Equal(t, Up, side)
	assert.Equal(t, Down, side.Opposite())
	assert.Equal(t, 2, side.Index())

	_, err = ParseSide("north")
	assert.ErrorIs(t, err, ErrUnknownSide)
}

func TestSides(t *testing.T) {
	s := Sides(0).Add(Left).Add(Down)
	assert.True(t, s.Has(Left))
	assert.False(t, s.Has(Up))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Side{Left, Down}, s.List())
	assert.Equal(t, []Side{Down}, s.Remove(Left).List())
}
