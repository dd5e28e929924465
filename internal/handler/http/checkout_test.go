package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/order"
)

// --- Test Helpers ---

func checkoutBody() map[string]any {
	return map[string]any{
		"customer_name": "Juan",
		"language":      "es",
		"delivery": map[string]string{
			"delivery_street":       "Calle Mayor",
			"delivery_house_number": "5",
			"delivery_location":     "ardales",
			"phone":                 "+34600111222",
		},
	}
}

type checkoutEnvelope struct {
	Data struct {
		Order        *domain.Order `json:"order"`
		Message      string        `json:"message"`
		WhatsAppLink string        `json:"whatsapp_link"`
		Dispatched   bool          `json:"dispatched"`
	} `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func newRawRequest(method, path, sessionID, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, sessionID)
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestCheckoutAPI_Submit(t *testing.T) {
	gateway := new(mockGateway)
	router := testRouter(gateway)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1", addItemBody(2, nil))

	gateway.On("Submit", mock.Anything, mock.AnythingOfType("domain.OrderPayload")).
		Return(&domain.Order{ID: 42}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1", checkoutBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	var env checkoutEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Data.Order)
	assert.Equal(t, int64(42), env.Data.Order.ID)
	assert.Contains(t, env.Data.Message, "📋 *Pedido Nº:* 42")
	assert.NotEmpty(t, env.Data.WhatsAppLink)

	// Checkout cleared the cart.
	cartRec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "s1", nil)
	assert.Empty(t, decodeCart(t, cartRec).Data.Lines)

	gateway.AssertExpectations(t)
}

func TestCheckoutAPI_EmptyCart(t *testing.T) {
	router := testRouter(new(mockGateway))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1", checkoutBody())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutAPI_ValidationFailure(t *testing.T) {
	router := testRouter(new(mockGateway))

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1", addItemBody(1, nil))

	body := checkoutBody()
	body["customer_name"] = ""

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env checkoutEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "CustomerName")
}

func TestCheckoutAPI_BackendRejection(t *testing.T) {
	gateway := new(mockGateway)
	router := testRouter(gateway)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1", addItemBody(1, nil))

	gateway.On("Submit", mock.Anything, mock.Anything).
		Return(nil, &order.RejectedError{Fields: map[string]string{"phone": "Introduzca un número de teléfono válido."}})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout", "s1", checkoutBody())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env checkoutEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "ORDER_REJECTED", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "phone")

	// The rejection keeps the cart intact for a corrected retry.
	cartRec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "s1", nil)
	assert.Len(t, decodeCart(t, cartRec).Data.Lines, 1)
}

func TestCheckoutAPI_Preview(t *testing.T) {
	gateway := new(mockGateway)
	router := testRouter(gateway)

	doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "s1", addItemBody(2, nil))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/preview", "s1", checkoutBody())

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Data["message"], "🛒 *NUEVO PEDIDO*")

	gateway.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestCheckoutAPI_MalformedBody(t *testing.T) {
	router := testRouter(new(mockGateway))

	req := newRawRequest(http.MethodPost, "/api/v1/checkout", "s1", "{not json")
	rec := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
