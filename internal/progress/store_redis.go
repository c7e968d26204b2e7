package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "learn:progress:"
	redisMaxAttempts = 25
)

// RedisStore keeps each user's progress as a JSON document in
// Dragonfly/Redis. Updates use optimistic WATCH transactions.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed progress store.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return &RedisStore{client: client}, nil
}

func redisKey(userID string) string { return redisKeyPrefix + userID }

func (s *RedisStore) Get(ctx context.Context, userID string) (Progress, error) {
	if userID == "" {
		return Progress{}, fmt.Errorf("user_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	return readRedisProgress(ctx, s.client, userID)
}

func (s *RedisStore) Record(ctx context.Context, userID string, c Completion) (Progress, bool, error) {
	if userID == "" {
		return Progress{}, false, fmt.Errorf("user_id is required")
	}
	if c.At.IsZero() {
		c.At = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	key := redisKey(userID)
	var (
		result  Progress
		changed bool
	)
	txf := func(tx *redis.Tx) error {
		cur, err := readRedisProgress(ctx, tx, userID)
		if err != nil {
			return err
		}
		next, ok := Apply(cur, c)
		result, changed = next, ok
		if !ok {
			return nil
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal progress: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < redisMaxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, changed, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return Progress{}, false, fmt.Errorf("record progress: %w", err)
	}
	return Progress{}, false, fmt.Errorf("record progress: too much contention on %s", key)
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readRedisProgress(ctx context.Context, c redisGetter, userID string) (Progress, error) {
	data, err := c.Get(ctx, redisKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(userID), nil
		}
		return Progress{}, fmt.Errorf("get progress: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	p.UserID = userID
	return p.Clone(), nil
}
