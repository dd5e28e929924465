// Package memstore persists cart snapshots in process memory, storing the
// same JSON encoding the Redis store uses. It backs tests and single-node
// development without a Redis instance.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"

	"github.com/jalmosquera/digitalletter/internal/cart"
	"github.com/jalmosquera/digitalletter/internal/domain"
)

// Store implements cart.Store in memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory cart store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Load retrieves a cart snapshot by session ID.
func (s *Store) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	s.mu.RLock()
	raw, ok := s.data[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", cart.ErrCorruptSnapshot, err)
	}
	return lines, nil
}

// Save persists a cart snapshot, overwriting any existing one.
func (s *Store) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	s.mu.Lock()
	s.data[sessionID] = raw
	s.mu.Unlock()
	return nil
}

// Delete removes a cart snapshot.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a session's snapshot with undecodable bytes. Test hook
// for exercising the corruption recovery path.
func (s *Store) Corrupt(sessionID string, raw []byte) {
	s.mu.Lock()
	s.data[sessionID] = raw
	s.mu.Unlock()
}
