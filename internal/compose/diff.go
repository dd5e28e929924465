package compose

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/i18n"
	"github.com/jalmosquera/digitalletter/internal/pricing"
)

// TranslateFunc resolves a localized field from a translation map. It is
// injected so the differ and composer stay pure and independently testable.
type TranslateFunc func(tr i18n.Translations, lang, field string) string

// ExtraSelection is a purchasable extra the customer added, resolved to its
// localized name and parsed price.
type ExtraSelection struct {
	Name  string
	Price decimal.Decimal
}

// Diff is the interesting part of a line's customization: what the order
// message needs to mention, and nothing more.
type Diff struct {
	// RemainingIngredients holds the localized names of the ingredients the
	// customer kept, in the product's default order. It is nil when there is
	// nothing to report: no customization, or a selection equal to the full
	// default set of a product that has default ingredients.
	RemainingIngredients []string

	// Extras are the selected purchasable extras, in product order.
	Extras []ExtraSelection

	// Notes is the trimmed free-text note, "" when absent.
	Notes string
}

// DiffCustomization compares a line's customization against the product's
// defaults. Deterministic, no I/O: same inputs always yield the same Diff.
func DiffCustomization(p domain.Product, c *domain.Customization, lang string, translate TranslateFunc) Diff {
	var diff Diff
	if c == nil {
		return diff
	}

	diff.Notes = strings.TrimSpace(c.Notes)

	for _, id := range c.SelectedExtras {
		extra, ok := p.FindExtra(id)
		if !ok {
			continue
		}
		price, _ := pricing.ParsePrice(extra.Price)
		diff.Extras = append(diff.Extras, ExtraSelection{
			Name:  translate(extra.Translations, lang, i18n.FieldName),
			Price: price,
		})
	}

	// A nil selection means the customer never touched the ingredient list;
	// a selection equal to the non-empty full default set means they touched
	// it but changed nothing. Both are "nothing to report".
	if c.SelectedIngredients == nil {
		return diff
	}

	selected := make(map[int64]struct{}, len(c.SelectedIngredients))
	for _, id := range c.SelectedIngredients {
		if p.HasIngredient(id) {
			selected[id] = struct{}{}
		}
	}

	if len(p.Ingredients) > 0 && len(selected) == len(p.Ingredients) {
		return diff
	}

	names := make([]string, 0, len(selected))
	for _, ing := range p.Ingredients {
		if _, ok := selected[ing.ID]; ok {
			names = append(names, translate(ing.Translations, lang, i18n.FieldName))
		}
	}
	diff.RemainingIngredients = names

	return diff
}
