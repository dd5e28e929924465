// Package http exposes the cart and checkout operations over a REST API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jalmosquera/digitalletter/pkg/httputil"
	"github.com/jalmosquera/digitalletter/pkg/validator"

	"github.com/jalmosquera/digitalletter/internal/cart"
	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/pricing"
)

// CartHandler serves the cart endpoints.
type CartHandler struct {
	service *cart.Service
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service *cart.Service, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// cartView is the response shape for every cart endpoint: the full line set
// plus the derived counters the header badge and cart screen display.
type cartView struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Total     string            `json:"total"`
}

func newCartView(lines []domain.CartLine) cartView {
	return cartView{
		Lines:     lines,
		ItemCount: domain.ItemCount(lines),
		Total:     pricing.FormatEUR(pricing.CartTotal(lines)),
	}
}

// addItemRequest carries the product snapshot to add. The menu frontend owns
// the catalog; this service trusts the snapshot's shape after validation.
type addItemRequest struct {
	Product       domain.Product        `json:"product"`
	Quantity      int                   `json:"quantity"`
	Customization *domain.Customization `json:"customization,omitempty"`
}

// setQuantityRequest sets an absolute quantity for a line.
type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Get(r.Context(), SessionID(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	lines, err := h.service.AddItem(r.Context(), SessionID(r.Context()), req.Product, req.Quantity, req.Customization)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: newCartView(lines)})
}

// SetQuantity handles PUT /api/v1/cart/items/{lineID}. A quantity of zero
// removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")

	var req setQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	lines, err := h.service.SetQuantity(r.Context(), SessionID(r.Context()), lineID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// Increment handles POST /api/v1/cart/items/{lineID}/increment.
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Increment(r.Context(), SessionID(r.Context()), chi.URLParam(r, "lineID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// Decrement handles POST /api/v1/cart/items/{lineID}/decrement. Decrementing
// a quantity-1 line removes it.
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.Decrement(r.Context(), SessionID(r.Context()), chi.URLParam(r, "lineID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// RemoveLine handles DELETE /api/v1/cart/items/{lineID}.
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.RemoveLine(r.Context(), SessionID(r.Context()), chi.URLParam(r, "lineID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(lines)})
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), SessionID(r.Context())); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView([]domain.CartLine{})})
}
