package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalmosquera/digitalletter/internal/domain"
	"github.com/jalmosquera/digitalletter/internal/i18n"
)

// --- Test Helpers ---

func pizzaProduct() domain.Product {
	return domain.Product{
		ID:    7,
		Price: "12.50",
		Translations: map[string]map[string]string{
			"es": {"name": "Pizza Margarita"},
			"en": {"name": "Margherita Pizza"},
		},
		Ingredients: []domain.Ingredient{
			{ID: 1, Translations: map[string]map[string]string{"es": {"name": "Tomate"}, "en": {"name": "Tomato"}}},
			{ID: 2, Translations: map[string]map[string]string{"es": {"name": "Queso"}, "en": {"name": "Cheese"}}},
			{ID: 3, Translations: map[string]map[string]string{"es": {"name": "Albahaca"}, "en": {"name": "Basil"}}},
		},
		Extras: []domain.Extra{
			{ID: 10, Price: "1.50", Translations: map[string]map[string]string{"es": {"name": "Extra queso"}, "en": {"name": "Extra cheese"}}},
		},
	}
}

// --- Tests ---

func TestDiffCustomization_NilCustomization(t *testing.T) {
	diff := DiffCustomization(pizzaProduct(), nil, i18n.LangES, i18n.Translate)

	assert.Nil(t, diff.RemainingIngredients)
	assert.Empty(t, diff.Extras)
	assert.Empty(t, diff.Notes)
}

func TestDiffCustomization_UntouchedSelection(t *testing.T) {
	c := &domain.Customization{SelectedIngredients: nil}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	assert.Nil(t, diff.RemainingIngredients)
}

func TestDiffCustomization_FullSelectionReportsNothing(t *testing.T) {
	c := &domain.Customization{SelectedIngredients: []int64{3, 2, 1}}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	assert.Nil(t, diff.RemainingIngredients)
}

func TestDiffCustomization_SubsetReportsRemainingInDefaultOrder(t *testing.T) {
	// Selection order is reversed on purpose: the report must follow the
	// product's default ingredient order.
	c := &domain.Customization{SelectedIngredients: []int64{2, 1}}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	require.NotNil(t, diff.RemainingIngredients)
	assert.Equal(t, []string{"Tomate", "Queso"}, diff.RemainingIngredients)
}

func TestDiffCustomization_SubsetLocalized(t *testing.T) {
	c := &domain.Customization{SelectedIngredients: []int64{1, 3}}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangEN, i18n.Translate)

	assert.Equal(t, []string{"Tomato", "Basil"}, diff.RemainingIngredients)
}

func TestDiffCustomization_EmptySelectionReportsEmptyList(t *testing.T) {
	c := &domain.Customization{SelectedIngredients: []int64{}}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	require.NotNil(t, diff.RemainingIngredients)
	assert.Empty(t, diff.RemainingIngredients)
}

func TestDiffCustomization_UnknownIngredientIDsIgnored(t *testing.T) {
	c := &domain.Customization{SelectedIngredients: []int64{1, 2, 99}}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	assert.Equal(t, []string{"Tomate", "Queso"}, diff.RemainingIngredients)
}

func TestDiffCustomization_Extras(t *testing.T) {
	c := &domain.Customization{SelectedExtras: []int64{10, 99}}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	require.Len(t, diff.Extras, 1)
	assert.Equal(t, "Extra queso", diff.Extras[0].Name)
	assert.Equal(t, "1.5", diff.Extras[0].Price.String())
}

func TestDiffCustomization_NotesTrimmed(t *testing.T) {
	c := &domain.Customization{Notes: "  sin sal  "}

	diff := DiffCustomization(pizzaProduct(), c, i18n.LangES, i18n.Translate)

	assert.Equal(t, "sin sal", diff.Notes)
}

func TestDiffCustomization_ProductWithoutDefaults(t *testing.T) {
	p := domain.Product{ID: 5, Price: "3.00"}
	c := &domain.Customization{SelectedIngredients: []int64{}}

	diff := DiffCustomization(p, c, i18n.LangES, i18n.Translate)

	// No default ingredients means nothing can remain; an empty selection of
	// an empty set still reports an empty list rather than nil.
	require.NotNil(t, diff.RemainingIngredients)
	assert.Empty(t, diff.RemainingIngredients)
}
