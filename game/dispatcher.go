package game

import (
	"slices"

	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/sight"
	"github.com/google/uuid"
)

// Topic fans one kind of event out to its subscribers.
type Topic[E any] struct {
	subs []subscriber[E]
	next uint64
}

type subscriber[E any] struct {
	id uint64
	fn func(E)
}

// Subscribe registers fn and returns the function that removes it.
func (t *Topic[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	t.next++
	id := t.next
	t.subs = append(t.subs, subscriber[E]{id: id, fn: fn})
	return func() {
		t.subs = slices.DeleteFunc(slices.Clone(t.subs), func(s subscriber[E]) bool {
			return s.id == id
		})
	}
}

// Publish calls every subscriber present when it starts, in subscription order.
func (t *Topic[E]) Publish(e E) {
	for _, s := range t.subs {
		s.fn(e)
	}
}

// Len returns the number of subscribers.
func (t *Topic[E]) Len() int {
	return len(t.subs)
}

// MazeReady is published once, after generation.
type MazeReady struct {
	Grid  *maze.Grid
	Start maze.Position
	End   maze.Position
}

// AvatarMoved is published after every successful avatar step.
type AvatarMoved struct {
	From maze.Position
	To   maze.Position
}

type AgentSpawned struct {
	Agent *Agent
}

type AgentMoved struct {
	Agent *Agent
	From  maze.Position
	To    maze.Position
}

type AgentStateChanged struct {
	Agent *Agent
	From  State
	To    State
}

type AgentRemoved struct {
	Agent *Agent
}

// ChargeCue starts or stops the charging cue of a sentinel.
type ChargeCue struct {
	Agent    *Agent
	Charging bool
}

// ShotResolved describes a shot once its hits are applied.
// Shooter is uuid.Nil when the avatar fired.
type ShotResolved struct {
	Shooter   uuid.UUID
	Origin    maze.Position
	Ranges    sight.Ranges
	Agents    []uuid.UUID
	AvatarHit bool
}

type WallHit struct {
	Pos  maze.Position
	Side maze.Side
}

type HealthChanged struct {
	Health int
	Max    int
}

type GameOver struct {
	Reason Reason
}

type GameWon struct {
	Moves int
}

// Dispatcher bundles one topic per event kind. It is not safe for
// concurrent use; the world drives it from a single goroutine.
type Dispatcher struct {
	MazeReady         Topic[MazeReady]
	AvatarMoved       Topic[AvatarMoved]
	AgentSpawned      Topic[AgentSpawned]
	AgentMoved        Topic[AgentMoved]
	AgentStateChanged Topic[AgentStateChanged]
	AgentRemoved      Topic[AgentRemoved]
	ChargeCue         Topic[ChargeCue]
	ShotResolved      Topic[ShotResolved]
	WallHit           Topic[WallHit]
	HealthChanged     Topic[HealthChanged]
	GameOver          Topic[GameOver]
	GameWon           Topic[GameWon]
}

// NewDispatcher returns a dispatcher with no subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}
