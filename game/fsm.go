package game

import "fmt"

// State is the behaviour a sentinel is running.
type State uint8

const (
	StateWander   State = iota // Patrolling at random.
	StateDetected              // Avatar in sight, charging a shot.
	StateShoot                 // Resolving the shot.
	StateRemoved               // Shot down. Terminal.
)

func (s State) String() string {
	switch s {
	case StateWander:
		return "wander"
	case StateDetected:
		return "detected"
	case StateShoot:
		return "shoot"
	case StateRemoved:
		return "removed"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Event is an input to the state machine.
type Event uint8

const (
	EventSighted    Event = iota // Detection check found the avatar.
	EventLostSight               // Detection check no longer finds it.
	EventAvatarGone              // The avatar left play.
	EventCharged                 // Charge duration elapsed.
	EventFired                   // Shot resolved.
	EventShot                    // Hit by the avatar's shot.
)

func (e Event) String() string {
	switch e {
	case EventSighted:
		return "sighted"
	case EventLostSight:
		return "lost-sight"
	case EventAvatarGone:
		return "avatar-gone"
	case EventCharged:
		return "charged"
	case EventFired:
		return "fired"
	case EventShot:
		return "shot"
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// Effect is a command produced by a transition, carried out by the world.
type Effect uint8

const (
	EffectChargeStart Effect = iota // Reset the charge clock and start the cue.
	EffectChargeStop                // Stop the charge cue.
	EffectFire                      // Resolve a shot from the sentinel's cell.
	EffectDespawn                   // Remove the sentinel from play.
)

func (e Effect) String() string {
	switch e {
	case EffectChargeStart:
		return "charge-start"
	case EffectChargeStop:
		return "charge-stop"
	case EffectFire:
		return "fire"
	case EffectDespawn:
		return "despawn"
	}
	return fmt.Sprintf("effect(%d)", uint8(e))
}

// Transition returns the state reached from s on e and the effects to run,
// in order. Pairs not listed keep the state and produce nothing.
func Transition(s State, e Event) (State, []Effect) {
	if s == StateRemoved {
		return s, nil
	}

	if e == EventShot {
		if s == StateDetected {
			return StateRemoved, []Effect{EffectChargeStop, EffectDespawn}
		}
		return StateRemoved, []Effect{EffectDespawn}
	}

	switch s {
	case StateWander:
		if e == EventSighted {
			return StateDetected, []Effect{EffectChargeStart}
		}
	case StateDetected:
		switch e {
		case EventLostSight, EventAvatarGone:
			return StateWander, []Effect{EffectChargeStop}
		case EventCharged:
			return StateShoot, []Effect{EffectChargeStop, EffectFire}
		}
	case StateShoot:
		switch e {
		case EventFired, EventAvatarGone:
			return StateWander, nil
		}
	}

	return s, nil
}
