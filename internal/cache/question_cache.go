package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/redis/go-redis/v9"
)

// QuestionSetTTL bounds how long a cached question set may serve reads even
// when its version still matches.
const QuestionSetTTL = 24 * time.Hour

// ErrCacheMiss is returned when no cached entry exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// CachedQuestionSet is the stored cache value: the serialized question
// payload plus the version token it was fetched under.
type CachedQuestionSet struct {
	Payload   json.RawMessage `json:"payload"`
	Version   string          `json:"version"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Fresh reports whether the entry can serve a request for the given version
// token: the token must match and the TTL window must not have elapsed.
func (c *CachedQuestionSet) Fresh(version string, now time.Time) bool {
	if c.Version != version {
		return false
	}
	return now.Sub(c.FetchedAt) < QuestionSetTTL
}

// QuestionCache caches serialized question sets per test type.
type QuestionCache interface {
	Get(ctx context.Context, testType models.TestType) (*CachedQuestionSet, error)
	Set(ctx context.Context, testType models.TestType, payload json.RawMessage, version string) error
	Invalidate(ctx context.Context, testType models.TestType) error
}

type redisQuestionCache struct {
	client *redis.Client
	logger utils.Logger
}

func NewRedisQuestionCache(client *redis.Client, logger utils.Logger) QuestionCache {
	return &redisQuestionCache{client: client, logger: logger}
}

func questionSetKey(testType models.TestType) string {
	return fmt.Sprintf("question_set:%s", testType)
}

func (r *redisQuestionCache) Get(ctx context.Context, testType models.TestType) (*CachedQuestionSet, error) {
	raw, err := r.client.Get(ctx, questionSetKey(testType)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", testType, err)
	}

	var entry CachedQuestionSet
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry behaves like a miss; the caller will refill it.
		r.logger.Warn("Dropping corrupt question set cache entry",
			"test_type", testType, "error", err)
		_ = r.client.Del(ctx, questionSetKey(testType)).Err()
		return nil, ErrCacheMiss
	}
	return &entry, nil
}

func (r *redisQuestionCache) Set(ctx context.Context, testType models.TestType, payload json.RawMessage, version string) error {
	entry := CachedQuestionSet{
		Payload:   payload,
		Version:   version,
		FetchedAt: time.Now(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", testType, err)
	}
	if err := r.client.Set(ctx, questionSetKey(testType), raw, QuestionSetTTL).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", testType, err)
	}
	return nil
}

func (r *redisQuestionCache) Invalidate(ctx context.Context, testType models.TestType) error {
	return r.client.Del(ctx, questionSetKey(testType)).Err()
}
