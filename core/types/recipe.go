// Package types defines the value objects the scaling engine operates on.
// All quantities are decimal: volumes in ml, ingredient amounts in grams.
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"sodacraft/internal/errors"
)

// RecipeType classifies a base formulation
type RecipeType string

const (
	// RecipeTypeClassic is a full-sugar formulation
	RecipeTypeClassic RecipeType = "classic"

	// RecipeTypeZero is a zero-sugar formulation
	RecipeTypeZero RecipeType = "zero"
)

// Yield describes the volumes a formulation was authored for:
// Syrup ml of concentrate dilutes to Drink ml of finished beverage.
type Yield struct {
	// Syrup is the concentrate volume in ml
	Syrup decimal.Decimal `json:"syrup"`

	// Drink is the finished beverage volume in ml
	Drink decimal.Decimal `json:"drink"`
}

// Validate checks the Drink > Syrup > 0 invariant
func (y Yield) Validate() error {
	if !y.Syrup.IsPositive() {
		return errors.Input("yield.syrup", "must be positive")
	}
	if !y.Drink.GreaterThan(y.Syrup) {
		return errors.Input("yield.drink", "must be greater than yield.syrup")
	}
	return nil
}

// RecipeIngredient is one authored ingredient row. Amount is in grams
// for the full Yield.Syrup reference batch.
type RecipeIngredient struct {
	IngredientID string          `json:"ingredient_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// BaseRecipe is a master syrup formulation.
type BaseRecipe struct {
	// ID uniquely identifies the recipe
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Type classifies the formulation, used only for compatibility filtering
	Type RecipeType `json:"type,omitempty"`

	// Yield is the reference batch the ingredient amounts were authored for
	Yield Yield `json:"yield"`

	// Ingredients is the ordered ingredient list for one Yield.Syrup batch
	Ingredients []RecipeIngredient `json:"ingredients"`

	// Instructions is opaque pass-through data
	Instructions json.RawMessage `json:"instructions,omitempty"`

	// SafetyChecks is opaque pass-through data
	SafetyChecks json.RawMessage `json:"safety_checks,omitempty"`
}

// Validate checks the base recipe invariants
func (r *BaseRecipe) Validate() error {
	if r.ID == "" {
		return errors.Input("id", "must not be empty")
	}
	if err := r.Yield.Validate(); err != nil {
		return err
	}
	return validateIngredients(r.Ingredients)
}

// FlavorRecipe is an additive profile layered onto a compatible base.
// Ingredient amounts are authored for the same Yield.Syrup reference
// batch as the flavor's compatible bases.
type FlavorRecipe struct {
	// ID uniquely identifies the flavor
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Profile describes the flavor character
	Profile string `json:"profile,omitempty"`

	// Ingredients is the ordered additive ingredient list
	Ingredients []RecipeIngredient `json:"ingredients"`

	// CompatibleBases is the set of base recipe ids this flavor may be combined with
	CompatibleBases []string `json:"compatible_bases"`

	// Color is descriptive metadata, pass-through
	Color string `json:"color,omitempty"`

	// Aging is descriptive metadata, pass-through
	Aging string `json:"aging,omitempty"`
}

// Validate checks the flavor recipe invariants
func (f *FlavorRecipe) Validate() error {
	if f.ID == "" {
		return errors.Input("id", "must not be empty")
	}
	return validateIngredients(f.Ingredients)
}

// CompatibleWith reports whether the flavor may be combined with the given base
func (f *FlavorRecipe) CompatibleWith(baseID string) bool {
	for _, id := range f.CompatibleBases {
		if id == baseID {
			return true
		}
	}
	return false
}

func validateIngredients(ingredients []RecipeIngredient) error {
	seen := make(map[string]struct{}, len(ingredients))
	for _, ing := range ingredients {
		if ing.IngredientID == "" {
			return errors.Input("ingredients", "ingredient_id must not be empty")
		}
		if _, ok := seen[ing.IngredientID]; ok {
			return errors.Input("ingredients", "duplicate ingredient_id "+ing.IngredientID)
		}
		seen[ing.IngredientID] = struct{}{}
		if ing.Amount.IsNegative() {
			return errors.Input("ingredients", "amount for "+ing.IngredientID+" must not be negative")
		}
	}
	return nil
}
