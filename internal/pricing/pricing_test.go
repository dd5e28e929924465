package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalmosquera/digitalletter/internal/domain"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "12.50", "12.5"},
		{"euro prefix", "€12.50", "12.5"},
		{"euro suffix with space", "12,50 €", "12.5"},
		{"comma decimal", "12,50", "12.5"},
		{"european thousands", "1.234,56", "1234.56"},
		{"integer", "3", "3"},
		{"zero", "0.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParsePrice_NoNumericContent(t *testing.T) {
	_, err := ParsePrice("gratis")
	assert.Error(t, err)
}

func TestUnitPrice_IncludesSelectedExtras(t *testing.T) {
	line := domain.CartLine{
		Product: domain.Product{
			ID:    1,
			Price: "12.50",
			Extras: []domain.Extra{
				{ID: 10, Price: "1.50"},
				{ID: 11, Price: "2.00"},
			},
		},
		Quantity:      1,
		Customization: &domain.Customization{SelectedExtras: []int64{10, 11}},
	}

	assert.Equal(t, "16", UnitPrice(line).String())
}

func TestUnitPrice_UnparseablePriceContributesZero(t *testing.T) {
	line := domain.CartLine{
		Product:  domain.Product{ID: 1, Price: "consultar"},
		Quantity: 2,
	}

	assert.True(t, UnitPrice(line).IsZero())
	assert.True(t, LineTotal(line).IsZero())
}

func TestLineTotal_MultipliesByQuantity(t *testing.T) {
	line := domain.CartLine{
		Product:  domain.Product{ID: 1, Price: "12.50"},
		Quantity: 2,
	}

	assert.Equal(t, "25", LineTotal(line).String())
}

func TestCartTotal_ReorderInvariant(t *testing.T) {
	a := domain.CartLine{LineID: "a", Product: domain.Product{ID: 1, Price: "0.10"}, Quantity: 3}
	b := domain.CartLine{LineID: "b", Product: domain.Product{ID: 2, Price: "7.35"}, Quantity: 1}
	c := domain.CartLine{LineID: "c", Product: domain.Product{ID: 3, Price: "12,50"}, Quantity: 2}

	forward := CartTotal([]domain.CartLine{a, b, c})
	backward := CartTotal([]domain.CartLine{c, b, a})

	assert.True(t, forward.Equal(backward), "expected %s == %s", forward, backward)
	assert.Equal(t, "32.65", forward.StringFixed(DisplayPrecision))
}

func TestCartTotal_Empty(t *testing.T) {
	assert.True(t, CartTotal(nil).IsZero())
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "€25.00", FormatEUR(decimal.NewFromInt(25)))
	assert.Equal(t, "€12.50", FormatEUR(decimal.RequireFromString("12.5")))
	assert.Equal(t, "€0.00", FormatEUR(decimal.Zero))
}
