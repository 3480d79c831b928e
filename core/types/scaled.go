// Package types - Scaled recipe output
package types

import "github.com/shopspring/decimal"

// ScaledIngredient is one scaled ingredient row, amount in grams.
type ScaledIngredient struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// ScaledRecipe is the immutable result of one calculation.
// SyrupVolume + WaterVolume equals Volume exactly, by construction.
type ScaledRecipe struct {
	// Volume echoes the requested finished-drink volume in ml
	Volume decimal.Decimal `json:"volume"`

	// SyrupVolume is the concentrate portion in ml
	SyrupVolume decimal.Decimal `json:"syrup_volume"`

	// WaterVolume is the dilution portion in ml
	WaterVolume decimal.Decimal `json:"water_volume"`

	// Ingredients is the flattened, scaled base+flavor ingredient list
	Ingredients []ScaledIngredient `json:"ingredients"`
}

// Ingredient returns the first scaled entry with the given id
func (r *ScaledRecipe) Ingredient(id string) (ScaledIngredient, bool) {
	for _, ing := range r.Ingredients {
		if ing.ID == id {
			return ing, true
		}
	}
	return ScaledIngredient{}, false
}

// IngredientIDs returns the ids of all scaled entries, in order
func (r *ScaledRecipe) IngredientIDs() []string {
	ids := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}
