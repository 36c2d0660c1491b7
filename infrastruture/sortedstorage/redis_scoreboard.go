package sortedstorage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisScoreboard keeps the scoreboard in a Redis sorted set scored by moves.
type RedisScoreboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	size   int64
}

// NewRedisScoreboard initializes a RedisScoreboard stored under key that keeps at most size runs.
func NewRedisScoreboard(client *redis.Client, key string, size int) (*RedisScoreboard, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	board := &RedisScoreboard{
		client: client,
		key:    key,
		size:   int64(size),
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// Record adds the run and trims the set back to its size.
func (rs *RedisScoreboard) Record(ctx context.Context, score i.Score) error {
	member, err := encodeScore(score)
	if err != nil {
		return err
	}

	_, err = rs.client.ZAdd(ctx, rs.key, redis.Z{Score: float64(score.Moves), Member: member}).Result()
	if err != nil {
		return err
	}

	return rs.trim(ctx)
}

// trim drops the worst runs beyond the board's size. The lock keeps two
// servers from trimming the same set at once.
func (rs *RedisScoreboard) trim(ctx context.Context) error {
	mutex := rs.locker.NewMutex(rs.key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if rs.client.ZCard(ctx, rs.key).Val() <= rs.size {
		return nil
	}
	return rs.client.ZRemRangeByRank(ctx, rs.key, rs.size, -1).Err()
}

// Top returns up to limit runs with the fewest moves.
func (rs *RedisScoreboard) Top(ctx context.Context, limit int64) ([]i.Score, error) {
	if limit <= 0 {
		return []i.Score{}, nil
	}

	members, err := rs.client.ZRangeWithScores(ctx, rs.key, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]i.Score, 0, len(members))
	for _, z := range members {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrBadMember, z.Member)
		}
		score, err := decodeScore(member)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// encodeScore turns a run into a sorted set member.
func encodeScore(score i.Score) (string, error) {
	b, err := json.Marshal(score)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeScore(member string) (i.Score, error) {
	var score i.Score
	if err := json.Unmarshal([]byte(member), &score); err != nil {
		return i.Score{}, fmt.Errorf("%w: %v", ErrBadMember, err)
	}
	return score, nil
}
