package game

import (
	"time"

	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/sight"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Agent is a sentinel patrolling the maze.
type Agent struct {
	id    uuid.UUID
	pos   maze.Position
	state State
	world *World

	wanderClock time.Duration
	chargeClock time.Duration

	unsubscribe func()
}

// ID returns the sentinel's identifier.
func (a *Agent) ID() uuid.UUID {
	return a.id
}

// Pos returns the cell the sentinel stands on.
func (a *Agent) Pos() maze.Position {
	return a.pos
}

// State returns the sentinel's current state.
func (a *Agent) State() State {
	return a.state
}

// update advances the sentinel's clocks by dt.
func (a *Agent) update(dt time.Duration) error {
	switch a.state {
	case StateWander:
		a.wanderClock += dt
		if a.wanderClock >= a.world.cfg.WanderInterval {
			a.wanderClock = 0
			return a.wander()
		}
	case StateDetected:
		a.chargeClock += dt
		if a.chargeClock >= a.world.cfg.ChargeDuration {
			return a.handle(EventCharged)
		}
	}
	return nil
}

// handle feeds e to the state machine and carries out the effects.
func (a *Agent) handle(e Event) error {
	prev := a.state
	next, effects := Transition(prev, e)
	if next != prev {
		a.state = next
		a.world.logger.WithFields(logrus.Fields{
			"agent": a.id,
			"event": e,
			"from":  prev,
			"to":    next,
		}).Debug("sentinel changed state")
		a.world.events.AgentStateChanged.Publish(AgentStateChanged{Agent: a, From: prev, To: next})
	}

	for _, effect := range effects {
		if err := a.apply(effect); err != nil {
			return err
		}
	}
	return nil
}

func (a *Agent) apply(effect Effect) error {
	switch effect {
	case EffectChargeStart:
		a.chargeClock = 0
		a.world.events.ChargeCue.Publish(ChargeCue{Agent: a, Charging: true})
	case EffectChargeStop:
		a.world.events.ChargeCue.Publish(ChargeCue{Agent: a, Charging: false})
	case EffectFire:
		return a.fire()
	case EffectDespawn:
		a.despawn()
	}
	return nil
}

// recheck looks for the avatar along the sentinel's lines of sight.
func (a *Agent) recheck() error {
	if a.state == StateRemoved {
		return nil
	}

	target, ok := a.world.avatarPosition()
	if !ok {
		return a.handle(EventAvatarGone)
	}

	seen, err := sight.Sees(a.world.grid, a.pos, target)
	if err != nil {
		return err
	}

	switch {
	case seen && a.state != StateDetected:
		return a.handle(EventSighted)
	case !seen && a.state == StateDetected:
		return a.handle(EventLostSight)
	}
	return nil
}

// wanderSides returns the sides the sentinel may leave its cell through.
// Breach sides count as walls so sentinels never leave the maze.
func (a *Agent) wanderSides() []maze.Side {
	g := a.world.grid
	return (g.OpenSides(a.pos) &^ g.Breaches(a.pos)).List()
}

// wander moves to a random open neighbor unless another sentinel holds it.
func (a *Agent) wander() error {
	sides := a.wanderSides()
	if len(sides) == 0 {
		return nil
	}

	side := sides[a.world.rng.Intn(len(sides))]
	next, ok := a.world.grid.Neighbor(a.pos, side)
	if !ok {
		return nil
	}
	if _, taken := a.world.registry.Find(next); taken {
		return nil
	}

	from := a.pos
	a.pos = next
	a.world.events.AgentMoved.Publish(AgentMoved{Agent: a, From: from, To: next})
	return a.recheck()
}

// fire resolves the sentinel's shot and returns it to Wander.
func (a *Agent) fire() error {
	probe := sight.Probe[maze.Position](nil)
	if target, ok := a.world.avatarPosition(); ok {
		probe = sight.At(target)
	}

	result, err := sight.Scan(a.world.grid, a.pos, probe)
	if err != nil {
		return err
	}

	hit := result.Found()
	a.world.events.ShotResolved.Publish(ShotResolved{
		Shooter:   a.id,
		Origin:    a.pos,
		Ranges:    result.Ranges(),
		AvatarHit: hit,
	})
	if hit {
		a.world.endGame(ReasonShot)
	}

	return a.handle(EventFired)
}

// despawn takes the sentinel out of play.
func (a *Agent) despawn() {
	a.world.registry.Unregister(a)
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.world.events.AgentRemoved.Publish(AgentRemoved{Agent: a})
}
