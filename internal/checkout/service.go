// Package checkout drives the order submission flow: validate, submit to the
// backend, compose the WhatsApp message, dispatch, clear the cart. Once the
// backend accepts the order, the flow never rolls back: the cart is cleared
// and dispatch failures are reported, not fatal.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"
	"github.com/jalmosquera/digitalletter/pkg/validator"

	"github.com/jalmosquera/digitalletter/internal/compose"
	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/event"
	"github.com/jalmosquera/digitalletter/internal/i18n"
	"github.com/jalmosquera/digitalletter/internal/pricing"
	"github.com/jalmosquera/digitalletter/internal/settings"
)

// Flow stages, for log correlation across a single checkout.
const (
	stageValidating = "validating"
	stageSubmitting = "submitting"
	stageComposing  = "composing"
	stageDispatch   = "dispatching"
	stageClearing   = "clearing"
)

// CartReader loads and clears a session's cart.
type CartReader interface {
	Get(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Clear(ctx context.Context, sessionID string) error
}

// Submitter creates the order on the restaurant backend.
type Submitter interface {
	Submit(ctx context.Context, payload domain.OrderPayload) (*domain.Order, error)
}

// Dispatcher delivers the composed message over the notification channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipient, message string) (string, bool)
}

// Input is what the customer provides at checkout, beyond the cart itself.
type Input struct {
	CustomerName string              `json:"customer_name" validate:"required"`
	Language     string              `json:"language"`
	Delivery     domain.DeliveryInfo `json:"delivery"`
}

// Result is the outcome of a successful checkout.
type Result struct {
	Order        *domain.Order `json:"order"`
	Message      string        `json:"message"`
	WhatsAppLink string        `json:"whatsapp_link"`
	Dispatched   bool          `json:"dispatched"`
}

// Service orchestrates the checkout flow.
type Service struct {
	cart       CartReader
	gateway    Submitter
	dispatcher Dispatcher
	settings   settings.Provider
	producer   *event.Producer
	logger     *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService creates a new checkout service.
func NewService(cart CartReader, gateway Submitter, dispatcher Dispatcher, provider settings.Provider, producer *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		cart:       cart,
		gateway:    gateway,
		dispatcher: dispatcher,
		settings:   provider,
		producer:   producer,
		logger:     logger,
		inFlight:   make(map[string]struct{}),
	}
}

// Submit runs the checkout flow for a session. Concurrent submissions for
// the same session are rejected with a conflict, so a double click can never
// create two orders.
func (s *Service) Submit(ctx context.Context, sessionID string, in Input) (*Result, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	if !s.acquire(sessionID) {
		return nil, apperrors.Conflict("a checkout is already in progress for this session")
	}
	defer s.release(sessionID)

	logger := s.logger.With(slog.String("session_id", sessionID))

	// Validating
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	lang := i18n.Normalize(in.Language)
	if err := validator.Validate(in); err != nil {
		logger.WarnContext(ctx, "checkout input rejected",
			slog.String("stage", stageValidating),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	lines, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart for checkout: %w", err)
	}
	if len(lines) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	total := pricing.CartTotal(lines)

	// Submitting
	payload := compose.BuildPayload(in.Delivery, lines)
	created, err := s.gateway.Submit(ctx, payload)
	if err != nil {
		logger.ErrorContext(ctx, "order submission failed",
			slog.String("stage", stageSubmitting),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger = logger.With(slog.Int64("order_id", created.ID))

	// Composing
	message := compose.GenerateOrderMessage(compose.OrderMessageData{
		OrderID:      created.ID,
		CustomerName: in.CustomerName,
		Delivery:     in.Delivery,
		Lines:        lines,
		Total:        total,
	}, lang, i18n.Translate)

	logger.InfoContext(ctx, "order message composed",
		slog.String("stage", stageComposing),
		slog.Int("line_count", len(lines)),
	)

	// Dispatching: best-effort from here on, the order already exists.
	link, dispatched := "", false
	recipient, err := s.settings.WhatsAppPhone(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve whatsapp recipient",
			slog.String("stage", stageDispatch),
			slog.String("error", err.Error()),
		)
	} else {
		link, dispatched = s.dispatcher.Dispatch(ctx, recipient, message)
	}
	if !dispatched {
		logger.WarnContext(ctx, "order not dispatched, manual follow-up needed",
			slog.String("stage", stageDispatch),
		)
	}

	// Clearing: the accepted order owns the lines now.
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("stage", stageClearing),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderPlaced(ctx, event.OrderPlacedData{
		OrderID:    created.ID,
		SessionID:  sessionID,
		Location:   in.Delivery.Location,
		Items:      created.Items,
		TotalPrice: total.StringFixed(pricing.DisplayPrecision),
		Dispatched: dispatched,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("error", err.Error()),
		)
	}

	logger.InfoContext(ctx, "checkout completed",
		slog.Bool("dispatched", dispatched),
	)

	return &Result{
		Order:        created,
		Message:      message,
		WhatsAppLink: link,
		Dispatched:   dispatched,
	}, nil
}

// Preview composes the order message for the current cart without touching
// the backend. Used by the UI to show the customer what will be sent.
func (s *Service) Preview(ctx context.Context, sessionID string, in Input) (string, error) {
	if sessionID == "" {
		return "", apperrors.InvalidInput("session id is required")
	}

	lines, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load cart for preview: %w", err)
	}
	if len(lines) == 0 {
		return "", apperrors.InvalidInput("cart is empty")
	}

	return compose.GenerateOrderMessage(compose.OrderMessageData{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Delivery:     in.Delivery,
		Lines:        lines,
		Total:        pricing.CartTotal(lines),
	}, i18n.Normalize(in.Language), i18n.Translate), nil
}

func (s *Service) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
