package domain

// Delivery location keys accepted by the order backend.
const (
	LocationArdales    = "ardales"
	LocationCarratraca = "carratraca"
)

// DeliveryInfo is the address block a customer fills in at checkout.
// All fields except Notes are required before an order can be submitted.
type DeliveryInfo struct {
	Street      string `json:"delivery_street" validate:"required"`
	HouseNumber string `json:"delivery_house_number" validate:"required"`
	Location    string `json:"delivery_location" validate:"required,oneof=ardales carratraca"`
	Phone       string `json:"phone" validate:"required"`
	Notes       string `json:"notes"`
}
