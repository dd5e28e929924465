package domain

import "github.com/jalmosquera/digitalletter/internal/i18n"

// Product is an immutable snapshot of a menu product as served by the
// catalog backend. It is embedded in each cart line so the cart keeps
// rendering correctly even if the catalog changes mid-session.
type Product struct {
	ID int64 `json:"id"`

	// Price is kept exactly as the backend serves it. It may be a bare
	// number ("12.50") or carry currency formatting ("€12.50", "12,50 €");
	// the pricing package reduces it to a numeric value.
	Price string `json:"price"`

	Translations i18n.Translations `json:"translations"`

	// Ingredients is the ordered list of default ingredients. Order is
	// meaningful: customization diffs are reported in this order.
	Ingredients []Ingredient `json:"ingredients,omitempty"`

	// Extras are optional purchasable additions.
	Extras []Extra `json:"extras,omitempty"`
}

// Ingredient is a default component of a product.
type Ingredient struct {
	ID           int64             `json:"id"`
	Icon         string            `json:"icon,omitempty"`
	Translations i18n.Translations `json:"translations"`
}

// Extra is a purchasable addition to a product.
type Extra struct {
	ID           int64             `json:"id"`
	Price        string            `json:"price"`
	Translations i18n.Translations `json:"translations"`
}

// DefaultIngredientIDs returns the ids of the default ingredients in
// product order.
func (p Product) DefaultIngredientIDs() []int64 {
	ids := make([]int64, len(p.Ingredients))
	for i, ing := range p.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}

// HasIngredient reports whether id is one of the product's default ingredients.
func (p Product) HasIngredient(id int64) bool {
	for _, ing := range p.Ingredients {
		if ing.ID == id {
			return true
		}
	}
	return false
}

// FindExtra returns the extra with the given id, if the product offers it.
func (p Product) FindExtra(id int64) (Extra, bool) {
	for _, ex := range p.Extras {
		if ex.ID == id {
			return ex, true
		}
	}
	return Extra{}, false
}
