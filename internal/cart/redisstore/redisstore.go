// Package redisstore persists cart snapshots in Redis as JSON arrays under
// cart:<session> keys with a sliding TTL.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"

	"github.com/jalmosquera/digitalletter/internal/cart"
	"github.com/jalmosquera/digitalletter/internal/domain"
)

const keyPrefix = "cart:"

// Store implements cart.Store using Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis-backed cart store.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Load retrieves a cart snapshot by session ID from Redis.
func (s *Store) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	key := keyPrefix + sessionID

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", cart.ErrCorruptSnapshot, err)
	}

	return lines, nil
}

// Save persists a cart snapshot to Redis with the configured TTL.
func (s *Store) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	key := keyPrefix + sessionID

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes a cart snapshot from Redis by session ID.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
