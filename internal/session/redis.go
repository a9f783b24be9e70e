package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"birdcall-quiz/internal/cache"
	"birdcall-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares sessions between instances. Entry caps are not enforced
// here; rely on the ttl and the server's maxmemory policy.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store. A zero ttl means no expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(questionID string) string {
	return cache.GenerateCacheKey("quiz", "session", questionID)
}

func (r *RedisStore) Put(ctx context.Context, s *domain.QuizSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.QuestionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", s.QuestionID, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, questionID string) (*domain.QuizSession, error) {
	val, err := r.client.Get(ctx, sessionKey(questionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %s: %w", questionID, err)
	}
	var s domain.QuizSession
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", questionID, err)
	}
	return &s, nil
}

// Ping checks the health of the Redis server.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
