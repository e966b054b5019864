package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const recentResultsKey = "results:recent"

// RedisMatchArchive keeps a capped list of recent finished matches, newest
// first. The whole list expires after ttl of inactivity so an idle
// deployment leaves nothing behind.
type RedisMatchArchive struct {
	rdb *redis.Client
	ttl time.Duration
	cap int64
}

func NewRedisMatchArchive(rdb *redis.Client, ttl time.Duration) *RedisMatchArchive {
	return &RedisMatchArchive{rdb: rdb, ttl: ttl, cap: 100}
}

func (a *RedisMatchArchive) SaveResult(ctx context.Context, res MatchResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}

	pipe := a.rdb.TxPipeline()
	pipe.LPush(ctx, recentResultsKey, b)
	pipe.LTrim(ctx, recentResultsKey, 0, a.cap-1)
	if a.ttl > 0 {
		pipe.Expire(ctx, recentResultsKey, a.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (a *RedisMatchArchive) Recent(ctx context.Context, limit int) ([]MatchResult, error) {
	if limit <= 0 || int64(limit) > a.cap {
		limit = int(a.cap)
	}

	vals, err := a.rdb.LRange(ctx, recentResultsKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]MatchResult, 0, len(vals))
	for _, v := range vals {
		var res MatchResult
		if err := json.Unmarshal([]byte(v), &res); err != nil {
			continue // skip a corrupt entry instead of failing the page
		}
		out = append(out, res)
	}
	return out, nil
}
