// Package compose assembles the two artifacts of a checkout: the backend
// submission payload and the bilingual order message handed to WhatsApp.
// Everything here is a pure function of its arguments.
package compose

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/i18n"
	"github.com/jalmosquera/digitalletter/internal/pricing"
)

// BuildPayload converts a validated delivery form and a cart snapshot into
// the order-creation request body. Prices and customization are stripped:
// the backend re-prices, and customization travels in the message.
func BuildPayload(delivery domain.DeliveryInfo, lines []domain.CartLine) domain.OrderPayload {
	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			Product:  line.Product.ID,
			Quantity: line.Quantity,
		}
	}

	return domain.OrderPayload{
		DeliveryStreet:      delivery.Street,
		DeliveryHouseNumber: delivery.HouseNumber,
		DeliveryLocation:    delivery.Location,
		Phone:               delivery.Phone,
		Notes:               delivery.Notes,
		Items:               items,
	}
}

// OrderMessageData is everything GenerateOrderMessage needs. Total must be
// the same value the price engine computed for display, so the message and
// the cart screen can never disagree.
type OrderMessageData struct {
	// OrderID is the canonical backend-assigned id; 0 omits the line
	// (pre-persistence previews).
	OrderID      int64
	CustomerName string
	Delivery     domain.DeliveryInfo
	Lines        []domain.CartLine
	Total        decimal.Decimal
}

// catalog holds the fixed label set of the order message for one language.
type catalog struct {
	title       string
	orderNo     string
	customer    string
	phone       string
	delivery    string
	address     string
	location    string
	notes       string
	order       string
	quantity    string
	unitPrice   string
	subtotal    string
	ingredients string
	extras      string
	extraNotes  string
	total       string
	noName      string
}

var catalogs = map[string]catalog{
	i18n.LangES: {
		title:       "🛒 *NUEVO PEDIDO*",
		orderNo:     "📋 *Pedido Nº:*",
		customer:    "👤 *Cliente:*",
		phone:       "📱 *Teléfono:*",
		delivery:    "📍 *Dirección de Entrega:*",
		address:     "Dirección",
		location:    "Localidad",
		notes:       "📝 *Notas:*",
		order:       "🍕 *Pedido:*",
		quantity:    "Cantidad",
		unitPrice:   "Precio unitario",
		subtotal:    "Subtotal",
		ingredients: "Ingredientes",
		extras:      "Extras",
		extraNotes:  "Ingredientes adicionales",
		total:       "💰 *TOTAL:*",
		noName:      "Sin nombre",
	},
	i18n.LangEN: {
		title:       "🛒 *NEW ORDER*",
		orderNo:     "📋 *Order No:*",
		customer:    "👤 *Customer:*",
		phone:       "📱 *Phone:*",
		delivery:    "📍 *Delivery Address:*",
		address:     "Address",
		location:    "City",
		notes:       "📝 *Notes:*",
		order:       "🍕 *Order:*",
		quantity:    "Quantity",
		unitPrice:   "Unit price",
		subtotal:    "Subtotal",
		ingredients: "Ingredients",
		extras:      "Extras",
		extraNotes:  "Additional ingredients",
		total:       "💰 *TOTAL:*",
		noName:      "Unnamed",
	},
}

const separator = "━━━━━━━━━━━━━━━━━━━━"

// GenerateOrderMessage renders the localized order document sent through
// the messaging channel. It is a template over its arguments: no network,
// no clock, no global state, so the same inputs always produce the same
// message byte for byte.
func GenerateOrderMessage(data OrderMessageData, lang string, translate TranslateFunc) string {
	lang = i18n.Normalize(lang)
	t := catalogs[lang]

	var b strings.Builder

	b.WriteString(t.title + "\n\n")

	if data.OrderID > 0 {
		fmt.Fprintf(&b, "%s %d\n", t.orderNo, data.OrderID)
	}
	if data.CustomerName != "" {
		fmt.Fprintf(&b, "%s %s\n", t.customer, data.CustomerName)
	}
	fmt.Fprintf(&b, "%s %s\n\n", t.phone, data.Delivery.Phone)

	b.WriteString(t.delivery + "\n")
	fmt.Fprintf(&b, "%s: %s, %s\n", t.address, data.Delivery.Street, data.Delivery.HouseNumber)
	fmt.Fprintf(&b, "%s: %s\n", t.location, i18n.LocationName(lang, data.Delivery.Location))

	if data.Delivery.Notes != "" {
		fmt.Fprintf(&b, "\n%s %s\n", t.notes, data.Delivery.Notes)
	}

	b.WriteString("\n" + t.order + "\n")
	b.WriteString(separator + "\n")

	for i, line := range data.Lines {
		name := translate(line.Product.Translations, lang, i18n.FieldName)
		if name == "" {
			name = t.noName
		}

		fmt.Fprintf(&b, "%d. *%s*\n", i+1, name)
		fmt.Fprintf(&b, "   %s: %d\n", t.quantity, line.Quantity)
		fmt.Fprintf(&b, "   %s: %s\n", t.unitPrice, pricing.FormatEUR(pricing.UnitPrice(line)))
		fmt.Fprintf(&b, "   %s: %s\n", t.subtotal, pricing.FormatEUR(pricing.LineTotal(line)))

		diff := DiffCustomization(line.Product, line.Customization, lang, translate)
		if len(diff.RemainingIngredients) > 0 {
			fmt.Fprintf(&b, "   %s: %s\n", t.ingredients, strings.Join(diff.RemainingIngredients, ", "))
		}
		if len(diff.Extras) > 0 {
			parts := make([]string, len(diff.Extras))
			for j, ex := range diff.Extras {
				parts[j] = fmt.Sprintf("%s (+%s)", ex.Name, pricing.FormatEUR(ex.Price))
			}
			fmt.Fprintf(&b, "   %s: %s\n", t.extras, strings.Join(parts, ", "))
		}
		if diff.Notes != "" {
			fmt.Fprintf(&b, "   %s: %s\n", t.extraNotes, diff.Notes)
		}

		b.WriteString("\n")
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "%s %s", t.total, pricing.FormatEUR(data.Total))

	return b.String()
}
