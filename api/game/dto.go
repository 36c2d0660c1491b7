// Package gameapi exposes sessions and the scoreboard over REST.
package gameapi

import (
	"github.com/beka-birhanu/vinom-sentinel/game"
	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/google/uuid"
)

// CreateSessionRequest represents a request to start a new session. Every
// field is optional.
type CreateSessionRequest struct {
	Size   int   `json:"size" binding:"omitempty,min=1"`
	Seed   int64 `json:"seed"`
	Agents *int  `json:"agents" binding:"omitempty,min=0"`
}

// MoveRequest represents a single avatar step.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// MoveResponse carries the outcome of a step and the world after it.
type MoveResponse struct {
	Result   game.MoveResult `json:"result"`
	Snapshot game.Snapshot   `json:"snapshot"`
}

// ShotResponse carries a resolved avatar shot and the world after it.
type ShotResponse struct {
	Origin   maze.Position  `json:"origin"`
	Ranges   map[string]int `json:"ranges"`
	Agents   []uuid.UUID    `json:"agents"`
	Snapshot game.Snapshot  `json:"snapshot"`
}

// ScoreboardResponse lists the best runs.
type ScoreboardResponse struct {
	Scores []i.Score `json:"scores"`
}

func newShotResponse(shot game.ShotResolved, snap game.Snapshot) *ShotResponse {
	ranges := make(map[string]int, len(maze.Directions))
	for _, side := range maze.Directions {
		ranges[side.String()] = shot.Ranges.Of(side)
	}

	agents := shot.Agents
	if agents == nil {
		agents = []uuid.UUID{}
	}

	return &ShotResponse{
		Origin:   shot.Origin,
		Ranges:   ranges,
		Agents:   agents,
		Snapshot: snap,
	}
}
