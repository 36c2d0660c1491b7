// Package game runs sentinels through a generated maze.
//
// A World owns the grid, the sentinel registry, the avatar and the event
// dispatcher. It is driven from a single goroutine: callers advance it with
// Tick and feed avatar input through MoveAvatar and AvatarShoot, and every
// observable change is published on the dispatcher.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// World-related errors.
var (
	ErrGameEnded     = errors.New("game has ended")
	ErrAvatarOutside = errors.New("avatar is outside the maze")
	ErrCellOccupied  = errors.New("cell is occupied")
	ErrOutOfGrid     = errors.New("position is outside the grid")
)

// Status is the progress of a run.
type Status uint8

const (
	StatusRunning Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reason explains why a run was lost.
type Reason uint8

const (
	ReasonNone   Reason = iota
	ReasonCaught        // Avatar and sentinel shared a cell.
	ReasonShot          // A sentinel's shot hit the avatar.
	ReasonWalls         // Health ran out bumping into walls.
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonCaught:
		return "caught"
	case ReasonShot:
		return "shot"
	case ReasonWalls:
		return "walls"
	}
	return fmt.Sprintf("reason(%d)", uint8(r))
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// World is one run: a maze, its sentinels and the avatar.
type World struct {
	cfg      Config
	grid     *maze.Grid
	registry *Registry
	events   *Dispatcher
	avatar   *Avatar
	rng      *rand.Rand
	logger   logrus.FieldLogger

	status Status
	reason Reason
}

// NewWorld generates a maze from cfg, publishes MazeReady and spawns
// cfg.AgentCount sentinels on distinct random cells.
func NewWorld(cfg Config, d *Dispatcher, logger logrus.FieldLogger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := maze.NewRand(cfg.Seed)
	grid, err := maze.New(cfg.Size, rng)
	if err != nil {
		return nil, fmt.Errorf("generating maze: %w", err)
	}

	return newWorld(cfg, grid, rng, d, logger)
}

// NewWorldWithGrid is NewWorld over an already built grid.
// cfg.Size is taken from the grid.
func NewWorldWithGrid(cfg Config, grid *maze.Grid, d *Dispatcher, logger logrus.FieldLogger) (*World, error) {
	cfg.Size = grid.Size()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newWorld(cfg, grid, maze.NewRand(cfg.Seed), d, logger)
}

func newWorld(cfg Config, grid *maze.Grid, rng *rand.Rand, d *Dispatcher, logger logrus.FieldLogger) (*World, error) {
	if d == nil {
		d = NewDispatcher()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	w := &World{
		cfg:      cfg,
		grid:     grid,
		registry: NewRegistry(),
		events:   d,
		avatar:   newAvatar(grid, cfg.MaxHealth),
		rng:      rng,
		logger:   logger,
	}

	w.events.MazeReady.Publish(MazeReady{Grid: grid, Start: grid.Start(), End: grid.End()})
	if err := w.spawnAgents(cfg.AgentCount); err != nil {
		return nil, err
	}

	w.logger.WithFields(logrus.Fields{
		"size":   grid.Size(),
		"agents": w.registry.Len(),
		"start":  grid.Start(),
		"end":    grid.End(),
	}).Info("maze ready")
	return w, nil
}

// Grid returns the maze. It must not be modified.
func (w *World) Grid() *maze.Grid {
	return w.grid
}

// Events returns the world's dispatcher.
func (w *World) Events() *Dispatcher {
	return w.events
}

// Agents returns the sentinels in play.
func (w *World) Agents() []*Agent {
	return w.registry.Agents()
}

// Avatar returns the avatar.
func (w *World) Avatar() *Avatar {
	return w.avatar
}

// Status returns the progress of the run and, when lost, why.
func (w *World) Status() (Status, Reason) {
	return w.status, w.reason
}

// spawnAgents places count sentinels on distinct cells other than the start.
func (w *World) spawnAgents(count int) error {
	var cells []maze.Position
	for x := 0; x < w.grid.Size(); x++ {
		for y := 0; y < w.grid.Size(); y++ {
			pos := maze.Position{X: x, Y: y}
			if pos != w.grid.Start() {
				cells = append(cells, pos)
			}
		}
	}

	for _, i := range w.rng.Perm(len(cells))[:min(count, len(cells))] {
		if _, err := w.SpawnAgent(cells[i]); err != nil {
			return err
		}
	}
	return nil
}

// SpawnAgent puts a new sentinel in Wander on pos.
func (w *World) SpawnAgent(pos maze.Position) (*Agent, error) {
	if !w.grid.InBounds(pos) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfGrid, pos)
	}
	if _, taken := w.registry.Find(pos); taken {
		return nil, fmt.Errorf("%w: %s", ErrCellOccupied, pos)
	}

	a := &Agent{
		id:    uuid.New(),
		pos:   pos,
		state: StateWander,
		world: w,
	}
	a.unsubscribe = w.events.AvatarMoved.Subscribe(func(AvatarMoved) {
		w.safely(a, a.recheck)
	})
	w.registry.Register(a)
	w.events.AgentSpawned.Publish(AgentSpawned{Agent: a})
	return a, nil
}

// KillAgent removes a from play. It reports false if a was already removed.
func (w *World) KillAgent(a *Agent) bool {
	if a.state == StateRemoved {
		return false
	}
	w.safely(a, func() error { return a.handle(EventShot) })
	return true
}

// Tick advances every sentinel by dt. A sentinel failing is logged and
// skipped; the others still update.
func (w *World) Tick(dt time.Duration) {
	for _, a := range w.registry.Agents() {
		if a.state == StateRemoved {
			continue
		}
		w.safely(a, func() error { return a.update(dt) })
	}
}

// safely runs fn for a, logging any error or panic instead of propagating it.
func (w *World) safely(a *Agent, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithFields(logrus.Fields{
				"agent": a.id,
				"pos":   a.pos,
				"panic": r,
			}).Error("sentinel update panicked")
		}
	}()

	if err := fn(); err != nil {
		w.logger.WithFields(logrus.Fields{
			"agent": a.id,
			"pos":   a.pos,
		}).WithError(err).Error("sentinel update failed")
	}
}

// endGame closes the run and takes the avatar out of play.
func (w *World) endGame(reason Reason) {
	if w.status != StatusRunning {
		return
	}

	if reason == ReasonNone {
		w.status = StatusWon
		w.logger.WithField("moves", w.avatar.moves).Info("run won")
		w.events.GameWon.Publish(GameWon{Moves: w.avatar.moves})
	} else {
		w.status = StatusLost
		w.reason = reason
		w.logger.WithField("reason", reason).Info("run lost")
		w.events.GameOver.Publish(GameOver{Reason: reason})
	}

	w.RemoveAvatar()
}

// RemoveAvatar takes the avatar out of play. Every sentinel falls back to
// Wander.
func (w *World) RemoveAvatar() {
	if !w.avatar.present {
		return
	}
	w.avatar.present = false
	for _, a := range w.registry.Agents() {
		w.safely(a, func() error { return a.handle(EventAvatarGone) })
	}
}

// avatarPosition returns where the avatar is, if it is still in play.
func (w *World) avatarPosition() (maze.Position, bool) {
	if !w.avatar.present {
		return maze.Position{}, false
	}
	return w.avatar.pos, true
}
