package i

import (
	"github.com/beka-birhanu/vinom-sentinel/game"
	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/google/uuid"
)

// SessionOptions overrides the defaults of a new session. Zero values keep
// the configured default.
type SessionOptions struct {
	Size   int
	Agents *int
	Seed   int64
}

// SessionInfo describes a freshly created session.
type SessionInfo struct {
	ID    uuid.UUID     `json:"id"`
	Size  int           `json:"size"`
	Seed  int64         `json:"seed"`
	Start maze.Position `json:"start"`
	End   maze.Position `json:"end"`
}

// SessionManager hosts running worlds.
type SessionManager interface {
	NewSession(opts SessionOptions) (SessionInfo, error)
	Snapshot(id uuid.UUID) (game.Snapshot, error)
	Render(id uuid.UUID) (string, error)
	Move(id uuid.UUID, side maze.Side) (game.MoveResult, game.Snapshot, error)
	Shoot(id uuid.UUID) (game.ShotResolved, game.Snapshot, error)
	Delete(id uuid.UUID) error
}
