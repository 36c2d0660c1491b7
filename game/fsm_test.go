package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		event   Event
		to      State
		effects []Effect
	}{
		{"wander sights avatar", StateWander, EventSighted, StateDetected, []Effect{EffectChargeStart}},
		{"wander ignores lost sight", StateWander, EventLostSight, StateWander, nil},
		{"wander ignores charge", StateWander, EventCharged, StateWander, nil},
		{"wander stays when avatar gone", StateWander, EventAvatarGone, StateWander, nil},
		{"detected stays detected", StateDetected, EventSighted, StateDetected, nil},
		{"detected loses sight", StateDetected, EventLostSight, StateWander, []Effect{EffectChargeStop}},
		{"detected avatar gone", StateDetected, EventAvatarGone, StateWander, []Effect{EffectChargeStop}},
		{"detected charged", StateDetected, EventCharged, StateShoot, []Effect{EffectChargeStop, EffectFire}},
		{"shoot fired", StateShoot, EventFired, StateWander, nil},
		{"shoot avatar gone", StateShoot, EventAvatarGone, StateWander, nil},
		{"shoot ignores sighting", StateShoot, EventSighted, StateShoot, nil},
		{"wander shot", StateWander, EventShot, StateRemoved, []Effect{EffectDespawn}},
		{"detected shot", StateDetected, EventShot, StateRemoved, []Effect{EffectChargeStop, EffectDespawn}},
		{"shoot shot", StateShoot, EventShot, StateRemoved, []Effect{EffectDespawn}},
		{"removed absorbs shot", StateRemoved, EventShot, StateRemoved, nil},
		{"removed absorbs sighting", StateRemoved, EventSighted, StateRemoved, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, effects := Transition(tt.from, tt.event)
			assert.Equal(t, tt.to, to)
			assert.Equal(t, tt.effects, effects)
		})
	}
}

func TestStateNames(t *testing.T) {
	text, err := StateDetected.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "detected", string(text))
	assert.Equal(t, "state(9)", State(9).String())
	assert.Equal(t, "charged", EventCharged.String())
	assert.Equal(t, "fire", EffectFire.String())
}
