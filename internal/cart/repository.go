package cart

import (
	"context"
	"errors"

	"github.com/jalmosquera/digitalletter/internal/domain"
)

// ErrCorruptSnapshot is returned by Store implementations when a persisted
// cart cannot be decoded. The service recovers by resetting to an empty
// cart; the error never reaches callers.
var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

// Store is the persistence port for cart snapshots, keyed by menu session.
// Every mutation writes the full line set (last write wins: concurrent tabs
// sharing a session race on read-modify-write, an accepted limitation at
// this application's scale).
type Store interface {
	// Load retrieves the persisted lines for a session. Returns an error
	// wrapping apperrors.ErrNotFound when no snapshot exists, and one
	// wrapping ErrCorruptSnapshot when the snapshot cannot be decoded.
	Load(ctx context.Context, sessionID string) ([]domain.CartLine, error)

	// Save persists the full line set for a session, overwriting any
	// existing snapshot.
	Save(ctx context.Context, sessionID string, lines []domain.CartLine) error

	// Delete removes the snapshot for a session.
	Delete(ctx context.Context, sessionID string) error
}
