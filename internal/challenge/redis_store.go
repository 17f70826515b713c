package challenge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultStoreTTL = 7 * 24 * time.Hour

// RedisStore persists challenge payloads in Redis with a TTL. Failures are
// logged and degrade to the no-op contract: Put returns an empty ID, Get
// reports absent.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultStoreTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "challenge_store").Logger(),
	}
}

func (s *RedisStore) Put(ctx context.Context, payload Payload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	id := newStoreID()
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("challenge payload not persisted")
		return "", nil
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Payload, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("challenge_id", id).Msg("challenge store read failed")
		return nil, nil
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *RedisStore) key(id string) string {
	return "challenge:" + id
}
