package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/maze"
)

var ErrInvalidConfig = errors.New("invalid world config")

// Default world settings.
const (
	defaultSize           = 10
	defaultAgentCount     = 4
	defaultWanderInterval = time.Second
	defaultChargeDuration = 2 * time.Second
	defaultMaxHealth      = 5
)

// Config holds the settings a world is created with.
type Config struct {
	Size           int           // Cells along one edge of the maze.
	AgentCount     int           // Sentinels spawned when the maze is ready.
	WanderInterval time.Duration // Time between two wander steps.
	ChargeDuration time.Duration // Time from detection to the shot.
	MaxHealth      int           // Wall bumps the avatar survives, plus one.
	Seed           int64         // Random seed; 0 picks one from the clock.
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Size:           defaultSize,
		AgentCount:     defaultAgentCount,
		WanderInterval: defaultWanderInterval,
		ChargeDuration: defaultChargeDuration,
		MaxHealth:      defaultMaxHealth,
	}
}

// Validate checks every setting is in range.
func (c Config) Validate() error {
	switch {
	case c.Size < 1 || c.Size > maze.MaxSize:
		return fmt.Errorf("%w: size %d not in [1, %d]", ErrInvalidConfig, c.Size, maze.MaxSize)
	case c.AgentCount < 0:
		return fmt.Errorf("%w: negative agent count %d", ErrInvalidConfig, c.AgentCount)
	case c.AgentCount > c.Size*c.Size-1:
		return fmt.Errorf("%w: %d agents do not fit a %dx%d maze", ErrInvalidConfig, c.AgentCount, c.Size, c.Size)
	case c.WanderInterval <= 0:
		return fmt.Errorf("%w: wander interval must be positive", ErrInvalidConfig)
	case c.ChargeDuration <= 0:
		return fmt.Errorf("%w: charge duration must be positive", ErrInvalidConfig)
	case c.MaxHealth < 1:
		return fmt.Errorf("%w: max health must be positive", ErrInvalidConfig)
	}
	return nil
}
