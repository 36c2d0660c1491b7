package game

import (
	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/google/uuid"
)

// AgentView is a read-only copy of a sentinel.
type AgentView struct {
	ID    uuid.UUID     `json:"id"`
	Pos   maze.Position `json:"pos"`
	State State         `json:"state"`
}

// AvatarView is a read-only copy of the avatar.
type AvatarView struct {
	Pos       maze.Position `json:"pos"`
	Present   bool          `json:"present"`
	Health    int           `json:"health"`
	MaxHealth int           `json:"max_health"`
	Moves     int           `json:"moves"`
}

// Snapshot is a copy of the world safe to hand to other goroutines.
type Snapshot struct {
	Size   int           `json:"size"`
	Start  maze.Position `json:"start"`
	End    maze.Position `json:"end"`
	Status Status        `json:"status"`
	Reason Reason        `json:"reason,omitempty"`
	Avatar AvatarView    `json:"avatar"`
	Agents []AgentView   `json:"agents"`
}

// Snapshot copies the observable state of the world.
func (w *World) Snapshot() Snapshot {
	agents := make([]AgentView, 0, w.registry.Len())
	for _, a := range w.registry.Agents() {
		agents = append(agents, AgentView{ID: a.id, Pos: a.pos, State: a.state})
	}

	return Snapshot{
		Size:   w.grid.Size(),
		Start:  w.grid.Start(),
		End:    w.grid.End(),
		Status: w.status,
		Reason: w.reason,
		Avatar: AvatarView{
			Pos:       w.avatar.pos,
			Present:   w.avatar.present,
			Health:    w.avatar.health,
			MaxHealth: w.avatar.maxHealth,
			Moves:     w.avatar.moves,
		},
		Agents: agents,
	}
}

// Render draws the maze with the avatar as '@' and sentinels by state:
// 'w' wandering, 'D' charging, 'S' shooting.
func (w *World) Render() string {
	marks := make(map[maze.Position]rune)
	for _, a := range w.registry.Agents() {
		switch a.state {
		case StateDetected:
			marks[a.pos] = 'D'
		case StateShoot:
			marks[a.pos] = 'S'
		default:
			marks[a.pos] = 'w'
		}
	}
	if pos, ok := w.avatarPosition(); ok && w.grid.InBounds(pos) {
		marks[pos] = '@'
	}
	return w.grid.Render(marks)
}
