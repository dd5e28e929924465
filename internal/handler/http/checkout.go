package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/jalmosquera/digitalletter/pkg/errors"
	"github.com/jalmosquera/digitalletter/pkg/httputil"
	"github.com/jalmosquera/digitalletter/pkg/validator"

	"github.com/jalmosquera/digitalletter/internal/checkout"
	"github.com/jalmosquera/digitalletter/internal/order"
)

// CheckoutHandler serves the checkout endpoints.
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

// Submit handles POST /api/v1/checkout. A backend rejection surfaces the
// field-level reasons so the form can highlight them.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in checkout.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("malformed request body"), h.logger)
		return
	}

	result, err := h.service.Submit(r.Context(), SessionID(r.Context()), in)
	if err != nil {
		var rejected *order.RejectedError
		if errors.As(err, &rejected) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "ORDER_REJECTED",
					Message: "the order was rejected by the restaurant backend",
					Fields:  rejected.Fields,
				},
			})
			return
		}
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteValidationError(w, err)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// Preview handles POST /api/v1/checkout/preview: the message that would be
// sent for the current cart, without creating an order.
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var in checkout.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("malformed request body"), h.logger)
		return
	}

	message, err := h.service.Preview(r.Context(), SessionID(r.Context()), in)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"message": message}})
}
