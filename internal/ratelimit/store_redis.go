package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisStore mantém um sorted set por IP, com o instante da tentativa
// como score. A chave inteira expira junto com a última tentativa.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func key(ip string) string {
	return "ratelimit:booking:" + ip
}

func (s *RedisStore) CountSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	k := key(ip)

	// descarta tentativas fora da janela antes de contar
	max := "(" + strconv.FormatInt(since.UnixNano(), 10)
	if err := s.rdb.ZRemRangeByScore(ctx, k, "-inf", max).Err(); err != nil {
		return 0, err
	}

	return s.rdb.ZCard(ctx, k).Result()
}

func (s *RedisStore) Record(ctx context.Context, ip string, now time.Time, ttl time.Duration) error {
	k := key(ip)

	pipe := s.rdb.TxPipeline()
	pipe.ZAdd(ctx, k, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, k, ttl)

	_, err := pipe.Exec(ctx)
	return err
}
