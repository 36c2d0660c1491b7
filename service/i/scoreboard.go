package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Score is one won run.
type Score struct {
	SessionID  uuid.UUID `json:"session_id"`
	Size       int       `json:"size"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// Scoreboard keeps the best runs, fewest moves first.
type Scoreboard interface {
	// Record stores a finished run. The board may drop its worst entries to
	// stay within its size.
	Record(ctx context.Context, score Score) error

	// Top returns up to limit runs, best first.
	Top(ctx context.Context, limit int64) ([]Score, error)
}
