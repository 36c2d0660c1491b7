package service

import (
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/game"
	"github.com/sirupsen/logrus"
)

// Session is one hosted world. Every world call goes through mu; the world
// itself is not safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	world *game.World

	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
	logger   logrus.FieldLogger
}

func newSession(world *game.World, logger logrus.FieldLogger) *Session {
	return &Session{
		world:  world,
		done:   make(chan struct{}),
		logger: logger,
	}
}

// run advances the world on every tick until the session stops.
func (s *Session) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			s.mu.Lock()
			s.world.Tick(now.Sub(last))
			s.mu.Unlock()
			last = now
		case <-s.done:
			return
		}
	}
}

// stopTicking halts the ticker. The lifetime timer keeps running so a
// finished run stays readable until it expires.
func (s *Session) stopTicking() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.logger.Debug("session stopped ticking")
	})
}

// stop ends the session for good. It is safe to call more than once.
func (s *Session) stop() {
	s.stopTicking()
	if s.timer != nil {
		s.timer.Stop()
	}
}

// with runs fn while holding the session's world.
func (s *Session) with(fn func(w *game.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

// attachPresenter traces the world's events at debug level.
func attachPresenter(d *game.Dispatcher, logger logrus.FieldLogger) {
	d.AgentSpawned.Subscribe(func(e game.AgentSpawned) {
		logger.WithFields(logrus.Fields{"agent": e.Agent.ID(), "pos": e.Agent.Pos()}).Debug("sentinel spawned")
	})
	d.AgentRemoved.Subscribe(func(e game.AgentRemoved) {
		logger.WithField("agent", e.Agent.ID()).Debug("sentinel removed")
	})
	d.ChargeCue.Subscribe(func(e game.ChargeCue) {
		logger.WithFields(logrus.Fields{"agent": e.Agent.ID(), "charging": e.Charging}).Debug("charge cue")
	})
	d.ShotResolved.Subscribe(func(e game.ShotResolved) {
		logger.WithFields(logrus.Fields{
			"shooter": e.Shooter,
			"origin":  e.Origin,
			"ranges":  e.Ranges,
			"hit":     e.AvatarHit,
		}).Debug("shot resolved")
	})
	d.WallHit.Subscribe(func(e game.WallHit) {
		logger.WithFields(logrus.Fields{"pos": e.Pos, "side": e.Side}).Debug("avatar hit a wall")
	})
}
