package game

import (
	"fmt"

	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/sight"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Avatar is the player's piece. It starts just below the entrance breach.
type Avatar struct {
	pos       maze.Position
	health    int
	maxHealth int
	moves     int
	present   bool
}

func newAvatar(g *maze.Grid, maxHealth int) *Avatar {
	start := g.Start()
	return &Avatar{
		pos:       maze.Position{X: start.X, Y: start.Y - 1},
		health:    maxHealth,
		maxHealth: maxHealth,
		present:   true,
	}
}

// Pos returns the avatar's position. It may lie outside the grid.
func (av *Avatar) Pos() maze.Position {
	return av.pos
}

// Health returns the remaining health.
func (av *Avatar) Health() int {
	return av.health
}

// MaxHealth returns the starting health.
func (av *Avatar) MaxHealth() int {
	return av.maxHealth
}

// Moves returns the number of successful steps taken.
func (av *Avatar) Moves() int {
	return av.moves
}

// Present reports whether the avatar is still in play.
func (av *Avatar) Present() bool {
	return av.present
}

// MoveResult is the outcome of an avatar move.
type MoveResult uint8

const (
	MoveStepped MoveResult = iota // Moved one cell.
	MoveBumped                    // Hit a wall and lost health.
	MoveCaught                    // Stepped onto a sentinel.
	MoveExited                    // Left through the exit breach.
)

func (m MoveResult) String() string {
	switch m {
	case MoveStepped:
		return "stepped"
	case MoveBumped:
		return "bumped"
	case MoveCaught:
		return "caught"
	case MoveExited:
		return "exited"
	}
	return fmt.Sprintf("move(%d)", uint8(m))
}

// MarshalText encodes the result by name.
func (m MoveResult) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// blocked reports whether the avatar cannot step from from toward side.
// Outside the grid the only way in is through a breach.
func (w *World) blocked(from maze.Position, side maze.Side) bool {
	if w.grid.InBounds(from) {
		return !w.grid.IsOpen(from, side)
	}
	to := from.Step(side)
	return !w.grid.InBounds(to) || !w.grid.Breaches(to).Has(side.Opposite())
}

// MoveAvatar steps the avatar one cell toward side. Every sentinel
// re-checks its lines of sight after a successful step.
func (w *World) MoveAvatar(side maze.Side) (MoveResult, error) {
	if w.status != StatusRunning {
		return 0, ErrGameEnded
	}
	if side.Index() < 0 {
		return 0, fmt.Errorf("%w: %s", maze.ErrUnknownSide, side)
	}

	av := w.avatar
	from := av.pos
	if w.blocked(from, side) {
		av.health--
		w.events.WallHit.Publish(WallHit{Pos: from, Side: side})
		w.events.HealthChanged.Publish(HealthChanged{Health: av.health, Max: av.maxHealth})
		if av.health <= 0 {
			w.endGame(ReasonWalls)
		}
		return MoveBumped, nil
	}

	to := from.Step(side)
	av.pos = to
	av.moves++

	if from == w.grid.End() && side == maze.Up && !w.grid.InBounds(to) {
		w.endGame(ReasonNone)
		return MoveExited, nil
	}
	if _, caught := w.registry.Find(to); caught {
		w.endGame(ReasonCaught)
		return MoveCaught, nil
	}

	w.events.AvatarMoved.Publish(AvatarMoved{From: from, To: to})
	return MoveStepped, nil
}

// AvatarShoot fires along every open line from the avatar's cell and
// removes each sentinel met.
func (w *World) AvatarShoot() (ShotResolved, error) {
	if w.status != StatusRunning {
		return ShotResolved{}, ErrGameEnded
	}

	origin := w.avatar.pos
	if !w.grid.InBounds(origin) {
		return ShotResolved{}, fmt.Errorf("%w: %s", ErrAvatarOutside, origin)
	}

	result, err := sight.Scan(w.grid, origin, w.registry.Probe())
	if err != nil {
		return ShotResolved{}, err
	}

	shot := ShotResolved{
		Shooter: uuid.Nil,
		Origin:  origin,
		Ranges:  result.Ranges(),
	}
	for _, a := range result.Entities() {
		if w.KillAgent(a) {
			shot.Agents = append(shot.Agents, a.id)
		}
	}

	w.logger.WithFields(logrus.Fields{
		"origin": origin,
		"hits":   len(shot.Agents),
	}).Debug("avatar fired")
	w.events.ShotResolved.Publish(shot)
	return shot, nil
}
