// Package pricing computes per-line and cart-level totals from cart
// snapshots. All arithmetic is exact decimal; rounding to the display
// precision happens once, at rendering time, never while accumulating.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jalmosquera/digitalletter/internal/domain"
)

// DisplayPrecision is the number of decimal places shown to customers.
const DisplayPrecision = 2

// ParsePrice reduces a formatted price string to a decimal value. The
// catalog backend is not consistent about formatting: values arrive as
// "12.50", "€12.50", "12,50 €", or "1.234,56". Currency symbols and other
// non-numeric characters are stripped; a comma acting as the decimal
// separator is normalized.
func ParsePrice(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return decimal.Zero, fmt.Errorf("parse price %q: no numeric content", raw)
	}

	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// European style "1.234,56": dots are thousands separators.
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return d, nil
}

// priceOrZero parses defensively: an unparseable price contributes zero,
// matching how the menu renders such products, rather than failing the
// whole cart.
func priceOrZero(raw string) decimal.Decimal {
	d, err := ParsePrice(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// UnitPrice returns the effective unit price of a line: the product price
// plus the prices of every selected extra.
func UnitPrice(line domain.CartLine) decimal.Decimal {
	unit := priceOrZero(line.Product.Price)
	if c := line.Customization; c != nil {
		for _, id := range c.SelectedExtras {
			if extra, ok := line.Product.FindExtra(id); ok {
				unit = unit.Add(priceOrZero(extra.Price))
			}
		}
	}
	return unit
}

// LineTotal returns UnitPrice × quantity, unrounded.
func LineTotal(line domain.CartLine) decimal.Decimal {
	return UnitPrice(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartTotal sums the line totals of a cart snapshot, unrounded. The sum is
// commutative: reordering lines never changes the result.
func CartTotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line))
	}
	return total
}

// FormatEUR renders an amount at display precision with the euro sign, e.g.
// "€25.00". This is the only place amounts are rounded.
func FormatEUR(d decimal.Decimal) string {
	return "€" + d.StringFixed(DisplayPrecision)
}
