package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"fablestream/pkg/state"
)

const worldStateTTL = 7 * 24 * time.Hour

// RedisStore implements Storage using Redis, holding zstd-compressed JSON
// snapshots of world state.
type RedisStore struct {
	client  *redis.Client
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *slog.Logger
}

var _ Storage = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed world-state store.
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: redisURL,
		}),
		encoder: encoder,
		decoder: decoder,
		logger:  logger,
	}, nil
}

func worldStateKey(id uuid.UUID) string {
	return "worldstate:" + id.String()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) SaveWorldState(ctx context.Context, id uuid.UUID, ws state.WorldState) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("failed to marshal world state: %w", err)
	}
	compressed := r.encoder.EncodeAll(data, nil)

	if err := r.client.Set(ctx, worldStateKey(id), compressed, worldStateTTL).Err(); err != nil {
		r.logger.Error("Redis SET failed", "key", worldStateKey(id), "error", err)
		return fmt.Errorf("failed to save world state: %w", err)
	}

	r.logger.Debug("World state saved",
		"game_id", id.String(),
		"raw_bytes", len(data),
		"compressed_bytes", len(compressed))
	return nil
}

func (r *RedisStore) LoadWorldState(ctx context.Context, id uuid.UUID) (*state.WorldState, error) {
	compressed, err := r.client.Get(ctx, worldStateKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	data, err := r.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress world state: %w", err)
	}

	var ws state.WorldState
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world state: %w", err)
	}
	return &ws, nil
}

func (r *RedisStore) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, worldStateKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete world state: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	_ = r.encoder.Close()
	r.decoder.Close()
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// Client exposes the underlying Redis client for pub/sub use.
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

// WaitForConnection waits for Redis to become available with retries.
func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}
		r.logger.Info("Redis connection established")
		return nil
	}
	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}
