// Package calc implements proportional recipe scaling with an
// independently targeted caffeine dose.
//
// The scaling model has two decoupled parts: every non-caffeine
// ingredient is scaled by a single factor derived from the requested
// volume and the base formulation's dilution ratio, while the caffeine
// amount is set directly from the target dose. Scaling caffeine
// proportionally would silently change a stimulant dose whenever the
// user picks a non-default volume.
package calc

import (
	"github.com/shopspring/decimal"

	"sodacraft/core/types"
	"sodacraft/internal/errors"
)

// DefaultCaffeineIngredientID is the ingredient id treated as caffeine
// unless the calculator is configured otherwise.
const DefaultCaffeineIngredientID = "caffeine"

var mgPerGram = decimal.NewFromInt(1000)

// Calculator maps (base, flavor, target) to a scaled recipe. It is
// stateless and safe for concurrent use.
type Calculator struct {
	caffeineID string
}

// New creates a calculator using the default caffeine ingredient id
func New() *Calculator {
	return NewWithCaffeineID(DefaultCaffeineIngredientID)
}

// NewWithCaffeineID creates a calculator that recognizes the given
// ingredient id as caffeine
func NewWithCaffeineID(id string) *Calculator {
	return &Calculator{caffeineID: id}
}

// CaffeineIngredientID returns the ingredient id treated as caffeine
func (c *Calculator) CaffeineIngredientID() string {
	return c.caffeineID
}

// Calculate derives a fully scaled recipe for the target volume and
// caffeine dose. The flavor may be nil for an unflavored calculation.
//
// Compatibility between base and flavor is the caller's responsibility;
// the calculator only consumes the ingredient amounts attached to the
// records it is given.
func (c *Calculator) Calculate(base *types.BaseRecipe, flavor *types.FlavorRecipe, target *types.CalculationTarget) (*types.ScaledRecipe, error) {
	if base == nil {
		return nil, errors.Input("base", "must not be nil")
	}
	if target == nil {
		return nil, errors.Input("target", "must not be nil")
	}
	if !target.Volume.IsPositive() {
		return nil, errors.Input("target.volume", "must be positive")
	}
	if target.TargetCaffeineMg.IsNegative() {
		return nil, errors.Input("target.target_caffeine_mg", "must not be negative")
	}
	if !base.Yield.Syrup.IsPositive() {
		return nil, errors.Input("base.yield.syrup", "must be positive")
	}
	if !base.Yield.Drink.GreaterThan(base.Yield.Syrup) {
		return nil, errors.Input("base.yield.drink", "must be greater than base.yield.syrup")
	}

	// Dilution split. The syrup:water proportion of the finished drink
	// stays faithful to the base author's yield at any batch size.
	// Multiplying before dividing keeps the division exact for the
	// common round-number yields.
	syrupVolume := target.Volume.Mul(base.Yield.Syrup).Div(base.Yield.Drink)
	waterVolume := target.Volume.Sub(syrupVolume)

	// One multiplier for every non-caffeine amount from both lists,
	// since those amounts were authored for one Yield.Syrup-sized batch.
	scaleFactor := syrupVolume.Div(base.Yield.Syrup)

	// Caffeine-dose override: mg from the target, converted to grams.
	caffeineGrams := target.TargetCaffeineMg.Div(mgPerGram)

	ingredients := make([]types.ScaledIngredient, 0, len(base.Ingredients)+len(flavorIngredients(flavor))+1)
	caffeinePlaced := false

	scale := func(list []types.RecipeIngredient) {
		for _, ing := range list {
			if ing.IngredientID == c.caffeineID {
				// The override dose covers the whole drink; a second
				// caffeine row would double it, so only one is emitted
				// no matter how many source lists carry caffeine.
				if !caffeinePlaced {
					ingredients = append(ingredients, types.ScaledIngredient{
						ID:     c.caffeineID,
						Amount: caffeineGrams,
					})
					caffeinePlaced = true
				}
				continue
			}
			ingredients = append(ingredients, types.ScaledIngredient{
				ID:     ing.IngredientID,
				Amount: ing.Amount.Mul(scaleFactor),
			})
		}
	}

	scale(base.Ingredients)
	scale(flavorIngredients(flavor))

	// A positive dose against a caffeine-free formulation still yields a
	// caffeine row; the target dose is never dropped silently.
	if !caffeinePlaced && target.TargetCaffeineMg.IsPositive() {
		ingredients = append(ingredients, types.ScaledIngredient{
			ID:     c.caffeineID,
			Amount: caffeineGrams,
		})
	}

	return &types.ScaledRecipe{
		Volume:      target.Volume,
		SyrupVolume: syrupVolume,
		WaterVolume: waterVolume,
		Ingredients: ingredients,
	}, nil
}

// CaffeineDoseMg returns the caffeine dose of a scaled recipe in mg,
// or zero when the recipe carries no caffeine row.
func (c *Calculator) CaffeineDoseMg(recipe *types.ScaledRecipe) decimal.Decimal {
	if ing, ok := recipe.Ingredient(c.caffeineID); ok {
		return ing.Amount.Mul(mgPerGram)
	}
	return decimal.Zero
}

func flavorIngredients(flavor *types.FlavorRecipe) []types.RecipeIngredient {
	if flavor == nil {
		return nil
	}
	return flavor.Ingredients
}
