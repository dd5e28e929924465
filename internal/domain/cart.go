package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Customization captures how a customer adjusted a product before adding it
// to the cart.
type Customization struct {
	// SelectedIngredients is the subset of the product's default ingredient
	// ids the customer kept. A nil slice means "untouched": all defaults.
	SelectedIngredients []int64 `json:"selected_ingredients"`

	// SelectedExtras are ids of purchasable extras added to the line.
	SelectedExtras []int64 `json:"selected_extras,omitempty"`

	// Notes is free text for the kitchen ("sin sal", "extra crujiente").
	Notes string `json:"notes,omitempty"`
}

// CartLine is one row in the cart: a product at a given quantity and
// customization.
type CartLine struct {
	LineID        string         `json:"line_id"`
	Product       Product        `json:"product"`
	Quantity      int            `json:"quantity"`
	Customization *Customization `json:"customization,omitempty"`
}

// Signature returns the canonical customization signature for the line:
// sorted ingredient ids, sorted extra ids, and trimmed notes. Two additions
// with the same product and signature are the same line and merge.
//
// A missing customization is canonically equal to one that selects exactly
// the product's full default ingredient set with no extras and no notes, so
// "added untouched" and "opened the editor and changed nothing" merge.
func (l CartLine) Signature() string {
	ingredients := l.Product.DefaultIngredientIDs()
	extras := []int64(nil)
	notes := ""

	if c := l.Customization; c != nil {
		if c.SelectedIngredients != nil {
			ingredients = c.SelectedIngredients
		}
		extras = c.SelectedExtras
		notes = strings.TrimSpace(c.Notes)
	}

	return fmt.Sprintf("i:%s|e:%s|n:%s", joinSorted(ingredients), joinSorted(extras), notes)
}

// IdentityKey returns the merge key for the line: product id plus the
// canonical customization signature.
func (l CartLine) IdentityKey() string {
	return strconv.FormatInt(l.Product.ID, 10) + "#" + l.Signature()
}

// Validate checks the structural invariants of a persisted or incoming line.
func (l CartLine) Validate() error {
	if l.Product.ID <= 0 {
		return fmt.Errorf("cart line %q: missing product id", l.LineID)
	}
	if l.Quantity < 1 {
		return fmt.Errorf("cart line %q: quantity %d is below 1", l.LineID, l.Quantity)
	}
	if c := l.Customization; c != nil {
		for _, id := range c.SelectedIngredients {
			if !l.Product.HasIngredient(id) {
				return fmt.Errorf("cart line %q: ingredient %d is not a default of product %d", l.LineID, id, l.Product.ID)
			}
		}
		for _, id := range c.SelectedExtras {
			if _, ok := l.Product.FindExtra(id); !ok {
				return fmt.Errorf("cart line %q: extra %d is not offered by product %d", l.LineID, id, l.Product.ID)
			}
		}
	}
	return nil
}

func joinSorted(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// ItemCount returns the total quantity across all lines.
func ItemCount(lines []CartLine) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// FindLineIndex returns the index of the line with the given line id, or -1.
func FindLineIndex(lines []CartLine, lineID string) int {
	for i := range lines {
		if lines[i].LineID == lineID {
			return i
		}
	}
	return -1
}

// FindByIdentity returns the index of the line with the given identity key,
// or -1.
func FindByIdentity(lines []CartLine, key string) int {
	for i := range lines {
		if lines[i].IdentityKey() == key {
			return i
		}
	}
	return -1
}

// ValidateLines checks every line and rejects duplicate identity keys, so a
// tampered snapshot can never resurrect the "two lines, same key" state the
// merge rule forbids.
func ValidateLines(lines []CartLine) error {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		key := l.IdentityKey()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("cart line %q: duplicate identity key", l.LineID)
		}
		seen[key] = struct{}{}
	}
	return nil
}
