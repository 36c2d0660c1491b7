package maze

import (
	"fmt"
	"strings"
)

// Side identifies one of the four sides of a cell.
// Sides are bit flags so a set of them fits in a Sides value.
type Side uint8

const (
	Left  Side = 1 << iota // Left is the side facing x-1.
	Right                  // Right is the side facing x+1.
	Up                     // Up is the side facing y+1.
	Down                   // Down is the side facing y-1.
)

// Directions lists every side in the order used by scans and random picks.
var Directions = [4]Side{Left, Right, Up, Down}

// Delta returns the coordinate offset of a step toward s.
func (s Side) Delta() Position {
	switch s {
	case Left:
		return Position{X: -1}
	case Right:
		return Position{X: 1}
	case Up:
		return Position{Y: 1}
	case Down:
		return Position{Y: -1}
	}
	return Position{}
}

// Opposite returns the side facing back toward s.
func (s Side) Opposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return 0
}

// Index returns the position of s in Directions, or -1.
func (s Side) Index() int {
	for i, d := range Directions {
		if d == s {
			return i
		}
	}
	return -1
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("side(%d)", uint8(s))
}

// ParseSide converts a direction name to a Side.
func ParseSide(name string) (Side, error) {
	for _, d := range Directions {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSide, name)
}

// Sides is a set of sides.
type Sides uint8

// AllSides contains every side.
const AllSides = Sides(Left | Right | Up | Down)

// Has reports whether s contains side.
func (s Sides) Has(side Side) bool {
	return s&Sides(side) != 0
}

// Add returns s with side included.
func (s Sides) Add(side Side) Sides {
	return s | Sides(side)
}

// Remove returns s without side.
func (s Sides) Remove(side Side) Sides {
	return s &^ Sides(side)
}

// Len returns the number of sides in s.
func (s Sides) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// List returns the sides in s in Directions order.
func (s Sides) List() []Side {
	list := make([]Side, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			list = append(list, d)
		}
	}
	return list
}

// Position represents the coordinate of a cell in the grid.
type Position struct {
	X int `json:"x"` // Column, growing to the right.
	Y int `json:"y"` // Row, growing upward.
}

// Step returns the position one cell toward side.
func (p Position) Step(side Side) Position {
	d := side.Delta()
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell represents a single cell in a maze grid.
// A side missing from the open set is a wall.
type Cell struct {
	Pos  Position
	open Sides
}

// OpenSides returns the sides whose walls have been removed.
func (c *Cell) OpenSides() Sides {
	return c.open
}

// Walls returns the sides still walled.
func (c *Cell) Walls() Sides {
	return AllSides &^ c.open
}

// HasWall reports whether side is walled.
func (c *Cell) HasWall(side Side) bool {
	return !c.open.Has(side)
}
