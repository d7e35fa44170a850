package roadmaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "roadmap:"
	defaultRoadmapTTL = 24 * time.Hour
)

// RedisClient is the subset of *redis.Client used by RedisRepo.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisRepo keeps roadmaps in Redis until their TTL expires.
type RedisRepo struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisRepo constructs a RedisRepo. A non-positive ttl uses 24h.
func NewRedisRepo(client RedisClient, ttl time.Duration) *RedisRepo {
	if ttl <= 0 {
		ttl = defaultRoadmapTTL
	}
	return &RedisRepo{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Create stores the roadmap with the repo TTL.
func (r *RedisRepo) Create(ctx context.Context, roadmap Roadmap) error {
	return r.put(ctx, roadmap, r.ttl)
}

// GetByID returns a roadmap that has not expired yet.
func (r *RedisRepo) GetByID(ctx context.Context, roadmapID string) (Roadmap, error) {
	raw, err := r.client.Get(ctx, redisKey(roadmapID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Roadmap{}, ErrNotFound
	}
	if err != nil {
		return Roadmap{}, fmt.Errorf("redis get roadmap: %w", err)
	}
	var roadmap Roadmap
	if err := json.Unmarshal(raw, &roadmap); err != nil {
		return Roadmap{}, fmt.Errorf("decode roadmap: %w", err)
	}
	roadmap.Responses = restoreLists(roadmap.Responses)
	return roadmap, nil
}

// SetExportKey rewrites the stored roadmap and keeps its remaining TTL.
func (r *RedisRepo) SetExportKey(ctx context.Context, roadmapID, exportKey string) error {
	roadmap, err := r.GetByID(ctx, roadmapID)
	if err != nil {
		return err
	}
	roadmap.ExportKey = exportKey
	return r.put(ctx, roadmap, redis.KeepTTL)
}

func (r *RedisRepo) put(ctx context.Context, roadmap Roadmap, ttl time.Duration) error {
	data, err := json.Marshal(roadmap)
	if err != nil {
		return fmt.Errorf("encode roadmap: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(roadmap.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set roadmap: %w", err)
	}
	return nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}
