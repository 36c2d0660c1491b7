// Package sight walks cardinal lines of sight through a maze.
//
// A scan leaves the origin cell in each of the four directions and advances
// one cell at a time until the examined cell is walled on the side facing
// back toward the origin. Cells along the way are probed for entities. The
// same rule serves detection (is the avatar visible) and shooting (what does
// the shot hit).
package sight

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-sentinel/maze"
)

var ErrOriginOutOfGrid = errors.New("scan origin is outside the grid")

// Grid is the read-only view of a maze needed by a scan.
type Grid interface {
	InBounds(maze.Position) bool
	IsOpen(maze.Position, maze.Side) bool
}

// Probe reports the entity occupying a cell, if any.
type Probe[T any] func(maze.Position) (T, bool)

// Ray is the outcome of a scan in one direction.
type Ray[T any] struct {
	Side   maze.Side // Direction of travel.
	Length int       // Cells traversed before the blocking wall.
	Found  []T       // Entities met, nearest first.
}

// Ranges holds the traversal length per direction, in maze.Directions order.
type Ranges [4]int

// Of returns the length recorded for side.
func (r Ranges) Of(side maze.Side) int {
	i := side.Index()
	if i < 0 {
		return 0
	}
	return r[i]
}

// Result collects the four rays of a scan, in maze.Directions order.
type Result[T any] struct {
	Origin maze.Position
	Rays   [4]Ray[T]
}

// Range returns the traversal length toward side.
func (r Result[T]) Range(side maze.Side) int {
	return r.Ranges().Of(side)
}

// Ranges returns the traversal lengths of all four rays.
func (r Result[T]) Ranges() Ranges {
	var out Ranges
	for i, ray := range r.Rays {
		out[i] = ray.Length
	}
	return out
}

// Found reports whether any ray met an entity.
func (r Result[T]) Found() bool {
	for _, ray := range r.Rays {
		if len(ray.Found) > 0 {
			return true
		}
	}
	return false
}

// Entities flattens the entities met, ray by ray, nearest first.
func (r Result[T]) Entities() []T {
	var out []T
	for _, ray := range r.Rays {
		out = append(out, ray.Found...)
	}
	return out
}

// Scan casts a ray from origin in every direction.
// Passing through an occupied cell does not stop the ray; only walls do.
func Scan[T any](g Grid, origin maze.Position, probe Probe[T]) (Result[T], error) {
	result := Result[T]{Origin: origin}
	if !g.InBounds(origin) {
		return result, fmt.Errorf("%w: %s", ErrOriginOutOfGrid, origin)
	}

	for i, side := range maze.Directions {
		ray := Ray[T]{Side: side}
		back := side.Opposite()
		for pos := origin.Step(side); g.InBounds(pos); pos = pos.Step(side) {
			if !g.IsOpen(pos, back) {
				break
			}
			if probe != nil {
				if entity, ok := probe(pos); ok {
					ray.Found = append(ray.Found, entity)
				}
			}
			ray.Length++
		}
		result.Rays[i] = ray
	}

	return result, nil
}

// At probes for a single target cell.
func At(target maze.Position) Probe[maze.Position] {
	return func(pos maze.Position) (maze.Position, bool) {
		return pos, pos == target
	}
}

// Sees reports whether target lies on an open line from origin.
func Sees(g Grid, origin, target maze.Position) (bool, error) {
	result, err := Scan(g, origin, At(target))
	if err != nil {
		return false, err
	}
	return result.Found(), nil
}
