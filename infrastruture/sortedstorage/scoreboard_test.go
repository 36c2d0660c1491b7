package sortedstorage

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(moves int) i.Score {
	return i.Score{
		SessionID:  uuid.New(),
		Size:       10,
		Moves:      moves,
		FinishedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMemoryScoreboard(t *testing.T) {
	ctx := context.Background()

	t.Run("Orders by moves", func(t *testing.T) {
		board, err := NewMemoryScoreboard(10)
		require.NoError(t, err)

		for _, moves := range []int{30, 12, 45, 12, 20} {
			require.NoError(t, board.Record(ctx, score(moves)))
		}

		top, err := board.Top(ctx, 10)
		require.NoError(t, err)
		var got []int
		for _, s := range top {
			got = append(got, s.Moves)
		}
		assert.Equal(t, []int{12, 12, 20, 30, 45}, got)
	})

	t.Run("Ties keep finishing order", func(t *testing.T) {
		board, err := NewMemoryScoreboard(10)
		require.NoError(t, err)

		first, second := score(8), score(8)
		require.NoError(t, board.Record(ctx, first))
		require.NoError(t, board.Record(ctx, second))

		top, err := board.Top(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []i.Score{first, second}, top)
	})

	t.Run("Trims worst runs", func(t *testing.T) {
		board, err := NewMemoryScoreboard(2)
		require.NoError(t, err)

		for _, moves := range []int{9, 3, 7} {
			require.NoError(t, board.Record(ctx, score(moves)))
		}

		top, err := board.Top(ctx, 5)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, 3, top[0].Moves)
		assert.Equal(t, 7, top[1].Moves)
	})

	t.Run("Limit", func(t *testing.T) {
		board, err := NewMemoryScoreboard(5)
		require.NoError(t, err)
		require.NoError(t, board.Record(ctx, score(1)))
		require.NoError(t, board.Record(ctx, score(2)))

		top, err := board.Top(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, top, 1)

		top, err = board.Top(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, top)
		assert.NotNil(t, top)
	})

	t.Run("Invalid size", func(t *testing.T) {
		_, err := NewMemoryScoreboard(0)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestScoreMemberEncoding(t *testing.T) {
	want := score(17)

	member, err := encodeScore(want)
	require.NoError(t, err)
	assert.Contains(t, member, `"moves":17`)

	got, err := decodeScore(member)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = decodeScore("not json")
	assert.ErrorIs(t, err, ErrBadMember)
}

func TestNewRedisScoreboardInvalidSize(t *testing.T) {
	_, err := NewRedisScoreboard(nil, "vinom:test", 0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
