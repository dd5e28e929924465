package domain

// OrderItem is the minimal item reference the backend needs: it re-prices
// everything server-side, so quantity is the only trusted client input.
type OrderItem struct {
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

// OrderPayload is the order-creation request body. It deliberately carries
// no prices and no customization detail: the backend is the source of truth
// for billing, and customization travels in the WhatsApp message instead.
type OrderPayload struct {
	DeliveryStreet      string      `json:"delivery_street"`
	DeliveryHouseNumber string      `json:"delivery_house_number"`
	DeliveryLocation    string      `json:"delivery_location"`
	Phone               string      `json:"phone"`
	Notes               string      `json:"notes"`
	Items               []OrderItem `json:"items"`
}

// Order is the backend's view of a persisted order. It exists client-side
// only transiently during checkout, to stamp the canonical id into the
// outgoing message.
type Order struct {
	ID                  int64       `json:"id"`
	DeliveryStreet      string      `json:"delivery_street"`
	DeliveryHouseNumber string      `json:"delivery_house_number"`
	DeliveryLocation    string      `json:"delivery_location"`
	Phone               string      `json:"phone"`
	Notes               string      `json:"notes"`
	Items               []OrderItem `json:"items"`
}
