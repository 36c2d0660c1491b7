package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/game"
	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultTickInterval    = 100 * time.Millisecond
	defaultSessionDuration = 10 * time.Minute
	recordTimeout          = 5 * time.Second
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoScoreboard    = errors.New("session manager needs a scoreboard")
)

var _ i.SessionManager = (*SessionManager)(nil)

// SessionManager hosts worlds, ticks them and records won runs on the
// scoreboard.
type SessionManager struct {
	sessions        map[uuid.UUID]*Session
	defaults        game.Config
	tickInterval    time.Duration
	sessionDuration time.Duration
	scoreboard      i.Scoreboard
	logger          logrus.FieldLogger
	sync.RWMutex
}

// Config holds the dependencies and defaults of a SessionManager.
type Config struct {
	Defaults        game.Config   // World settings used when a request leaves them out
	TickInterval    time.Duration // How often each session advances its sentinels
	SessionDuration time.Duration // Lifetime of a session
	Scoreboard      i.Scoreboard
	Logger          logrus.FieldLogger
}

// NewSessionManager validates c and returns an empty manager.
func NewSessionManager(c *Config) (*SessionManager, error) {
	if err := c.Defaults.Validate(); err != nil {
		return nil, err
	}
	if c.Scoreboard == nil {
		return nil, ErrNoScoreboard
	}

	sm := &SessionManager{
		sessions:        make(map[uuid.UUID]*Session),
		defaults:        c.Defaults,
		tickInterval:    c.TickInterval,
		sessionDuration: c.SessionDuration,
		scoreboard:      c.Scoreboard,
		logger:          c.Logger,
	}
	if sm.tickInterval <= 0 {
		sm.tickInterval = defaultTickInterval
	}
	if sm.sessionDuration <= 0 {
		sm.sessionDuration = defaultSessionDuration
	}
	if sm.logger == nil {
		sm.logger = logrus.StandardLogger()
	}
	return sm, nil
}

// NewSession builds a world from the defaults overridden by opts and starts
// ticking it.
func (sm *SessionManager) NewSession(opts i.SessionOptions) (i.SessionInfo, error) {
	cfg := sm.defaults
	if opts.Size != 0 {
		cfg.Size = opts.Size
	}
	if opts.Agents != nil {
		cfg.AgentCount = *opts.Agents
	}
	cfg.Seed = opts.Seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sm.Lock()
	defer sm.Unlock()

	id := uuid.New()
	for {
		if _, ok := sm.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}

	logger := sm.logger.WithField("session", id)
	d := game.NewDispatcher()
	attachPresenter(d, logger)

	world, err := game.NewWorld(cfg, d, logger)
	if err != nil {
		return i.SessionInfo{}, fmt.Errorf("creating world: %w", err)
	}

	s := newSession(world, logger)
	d.GameWon.Subscribe(func(e game.GameWon) {
		s.stopTicking()
		go sm.record(i.Score{
			SessionID:  id,
			Size:       cfg.Size,
			Moves:      e.Moves,
			FinishedAt: time.Now().UTC(),
		})
	})
	d.GameOver.Subscribe(func(game.GameOver) {
		s.stopTicking()
	})

	s.timer = time.AfterFunc(sm.sessionDuration, func() {
		logger.Info("session expired")
		sm.remove(id)
	})
	sm.sessions[id] = s
	go s.run(sm.tickInterval)

	logger.WithFields(logrus.Fields{
		"size":   cfg.Size,
		"agents": cfg.AgentCount,
		"seed":   cfg.Seed,
	}).Info("started new session")

	grid := world.Grid()
	return i.SessionInfo{
		ID:    id,
		Size:  grid.Size(),
		Seed:  cfg.Seed,
		Start: grid.Start(),
		End:   grid.End(),
	}, nil
}

func (sm *SessionManager) record(score i.Score) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	logger := sm.logger.WithFields(logrus.Fields{"session": score.SessionID, "moves": score.Moves})
	if err := sm.scoreboard.Record(ctx, score); err != nil {
		logger.WithError(err).Error("recording score")
		return
	}
	logger.Info("recorded score")
}

// session looks id up.
func (sm *SessionManager) session(id uuid.UUID) (*Session, error) {
	sm.RLock()
	defer sm.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Snapshot copies the current state of session id.
func (sm *SessionManager) Snapshot(id uuid.UUID) (game.Snapshot, error) {
	s, err := sm.session(id)
	if err != nil {
		return game.Snapshot{}, err
	}

	var snap game.Snapshot
	s.with(func(w *game.World) { snap = w.Snapshot() })
	return snap, nil
}

// Render draws the maze of session id with its entities.
func (sm *SessionManager) Render(id uuid.UUID) (string, error) {
	s, err := sm.session(id)
	if err != nil {
		return "", err
	}

	var out string
	s.with(func(w *game.World) { out = w.Render() })
	return out, nil
}

// Move steps the avatar of session id toward side.
func (sm *SessionManager) Move(id uuid.UUID, side maze.Side) (game.MoveResult, game.Snapshot, error) {
	s, err := sm.session(id)
	if err != nil {
		return 0, game.Snapshot{}, err
	}

	var (
		result game.MoveResult
		snap   game.Snapshot
	)
	s.with(func(w *game.World) {
		result, err = w.MoveAvatar(side)
		snap = w.Snapshot()
	})
	return result, snap, err
}

// Shoot fires the avatar's weapon in session id.
func (sm *SessionManager) Shoot(id uuid.UUID) (game.ShotResolved, game.Snapshot, error) {
	s, err := sm.session(id)
	if err != nil {
		return game.ShotResolved{}, game.Snapshot{}, err
	}

	var (
		shot game.ShotResolved
		snap game.Snapshot
	)
	s.with(func(w *game.World) {
		shot, err = w.AvatarShoot()
		snap = w.Snapshot()
	})
	return shot, snap, err
}

// Delete stops session id and forgets it.
func (sm *SessionManager) Delete(id uuid.UUID) error {
	if !sm.remove(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Count returns the number of hosted sessions.
func (sm *SessionManager) Count() int {
	sm.RLock()
	defer sm.RUnlock()
	return len(sm.sessions)
}

func (sm *SessionManager) remove(id uuid.UUID) bool {
	sm.Lock()
	defer sm.Unlock()

	s, ok := sm.sessions[id]
	if !ok {
		return false
	}
	s.stop()
	delete(sm.sessions, id)
	return true
}

// StopAll stops every session.
func (sm *SessionManager) StopAll() {
	sm.Lock()
	defer sm.Unlock()

	for id, s := range sm.sessions {
		s.stop()
		delete(sm.sessions, id)
	}
	sm.logger.Info("stopped all sessions")
}
