// Package cart owns the cart lines of a menu session: merge and quantity
// rules, totals, and durable persistence through an injectable store port.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"

	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/event"
	"github.com/jalmosquera/digitalletter/internal/pricing"
)

// Operation upper bounds to keep a single session's cart sane.
const (
	// MaxQuantityPerLine is the maximum quantity allowed for a single line.
	MaxQuantityPerLine = 100
	// MaxLinesPerCart is the maximum number of distinct lines in a cart.
	MaxLinesPerCart = 50
)

// Service implements the cart operations over a Store port.
type Service struct {
	store    Store
	producer *event.Producer
	logger   *slog.Logger
}

// NewService creates a new cart service.
func NewService(store Store, producer *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// Get returns the current cart lines for a session. A missing, corrupt, or
// structurally invalid snapshot yields an empty cart: stale local state must
// never break the menu.
func (s *Service) Get(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.load(ctx, sessionID)
}

// AddItem adds a product to the session's cart. If a line with the same
// identity key (product id + canonical customization signature) already
// exists, the quantities are summed into it; otherwise a new line is
// appended, preserving insertion order for display.
func (s *Service) AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int, customization *domain.Customization) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if product.ID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	candidate := domain.CartLine{
		LineID:        uuid.New().String(),
		Product:       product,
		Quantity:      quantity,
		Customization: customization,
	}
	if err := candidate.Validate(); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if i := domain.FindByIdentity(lines, candidate.IdentityKey()); i >= 0 {
		newQty := lines[i].Quantity + quantity
		if newQty > MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerLine))
		}
		lines[i].Quantity = newQty
	} else {
		if len(lines) >= MaxLinesPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d lines", MaxLinesPerCart))
		}
		lines = append(lines, candidate)
	}

	if err := s.persist(ctx, sessionID, lines); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", product.ID),
		slog.Int("quantity", quantity),
	)

	return lines, nil
}

// RemoveLine removes a line from the cart entirely.
func (s *Service) RemoveLine(ctx context.Context, sessionID, lineID string) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := domain.FindLineIndex(lines, lineID)
	if i < 0 {
		return nil, apperrors.NotFound("cart line", lineID)
	}
	lines = append(lines[:i], lines[i+1:]...)

	if err := s.persist(ctx, sessionID, lines); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "line removed from cart",
		slog.String("session_id", sessionID),
		slog.String("line_id", lineID),
	)

	return lines, nil
}

// SetQuantity sets a line's quantity. A quantity of zero or less removes
// the line: quantity 0 is never stored.
func (s *Service) SetQuantity(ctx context.Context, sessionID, lineID string, quantity int) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}
	if quantity <= 0 {
		return s.RemoveLine(ctx, sessionID, lineID)
	}

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := domain.FindLineIndex(lines, lineID)
	if i < 0 {
		return nil, apperrors.NotFound("cart line", lineID)
	}
	lines[i].Quantity = quantity

	if err := s.persist(ctx, sessionID, lines); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("session_id", sessionID),
		slog.String("line_id", lineID),
		slog.Int("quantity", quantity),
	)

	return lines, nil
}

// Increment raises a line's quantity by one.
func (s *Service) Increment(ctx context.Context, sessionID, lineID string) ([]domain.CartLine, error) {
	return s.bump(ctx, sessionID, lineID, +1)
}

// Decrement lowers a line's quantity by one; a quantity-1 line is removed.
func (s *Service) Decrement(ctx context.Context, sessionID, lineID string) ([]domain.CartLine, error) {
	return s.bump(ctx, sessionID, lineID, -1)
}

func (s *Service) bump(ctx context.Context, sessionID, lineID string, delta int) ([]domain.CartLine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := domain.FindLineIndex(lines, lineID)
	if i < 0 {
		return nil, apperrors.NotFound("cart line", lineID)
	}

	return s.SetQuantity(ctx, sessionID, lineID, lines[i].Quantity+delta)
}

// Clear removes every line from the session's cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// ItemCount returns the total quantity across the session's lines.
func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	lines, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return domain.ItemCount(lines), nil
}

// TotalPrice returns the unrounded cart total as a display string with two
// decimals, matching the total printed in the order message.
func (s *Service) TotalPrice(ctx context.Context, sessionID string) (string, error) {
	lines, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return pricing.CartTotal(lines).StringFixed(pricing.DisplayPrecision), nil
}

// load reads the session's snapshot, recovering silently from corruption or
// shape violations by resetting to an empty cart.
func (s *Service) load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.CartLine{}, nil
		}
		if errors.Is(err, ErrCorruptSnapshot) {
			return s.reset(ctx, sessionID, err), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if err := domain.ValidateLines(lines); err != nil {
		return s.reset(ctx, sessionID, err), nil
	}

	return lines, nil
}

// reset discards an unusable snapshot and returns an empty cart.
func (s *Service) reset(ctx context.Context, sessionID string, cause error) []domain.CartLine {
	s.logger.WarnContext(ctx, "resetting unusable cart snapshot",
		slog.String("session_id", sessionID),
		slog.String("error", cause.Error()),
	)
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete unusable cart snapshot",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
	return []domain.CartLine{}
}

// persist writes the full line set and emits a best-effort cart.updated event.
func (s *Service) persist(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	data := event.CartUpdatedData{
		SessionID:  sessionID,
		ItemCount:  domain.ItemCount(lines),
		LineCount:  len(lines),
		TotalPrice: pricing.CartTotal(lines).StringFixed(pricing.DisplayPrecision),
	}
	if err := s.producer.PublishCartUpdated(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
