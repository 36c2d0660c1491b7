package sortedstorage

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/beka-birhanu/vinom-sentinel/service/i"
)

var (
	ErrInvalidSize = errors.New("scoreboard size must be positive")
	ErrBadMember   = errors.New("malformed scoreboard member")
)

// MemoryScoreboard keeps the scoreboard in process. It is used when no Redis
// address is configured.
type MemoryScoreboard struct {
	mu     sync.Mutex
	size   int
	scores []i.Score
}

// NewMemoryScoreboard returns an empty board keeping at most size runs.
func NewMemoryScoreboard(size int) (*MemoryScoreboard, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &MemoryScoreboard{size: size}, nil
}

// Record inserts the run in order. Runs with equal moves keep the order they
// finished in.
func (ms *MemoryScoreboard) Record(_ context.Context, score i.Score) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	at, _ := slices.BinarySearchFunc(ms.scores, score, func(a, b i.Score) int {
		if c := cmp.Compare(a.Moves, b.Moves); c != 0 {
			return c
		}
		// Equal moves: insert after every existing entry.
		return -1
	})
	ms.scores = slices.Insert(ms.scores, at, score)
	if len(ms.scores) > ms.size {
		ms.scores = ms.scores[:ms.size]
	}
	return nil
}

// Top returns up to limit runs with the fewest moves.
func (ms *MemoryScoreboard) Top(_ context.Context, limit int64) ([]i.Score, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if limit <= 0 {
		return []i.Score{}, nil
	}
	n := min(int(limit), len(ms.scores))
	return append([]i.Score{}, ms.scores[:n]...), nil
}
