// Package types - Calculation target
package types

import (
	"github.com/shopspring/decimal"

	"sodacraft/internal/errors"
)

// CalculationTarget captures the user intent for one calculation.
type CalculationTarget struct {
	// Volume is the requested finished-drink volume in ml
	Volume decimal.Decimal `json:"volume"`

	// TargetCaffeineMg is the desired caffeine dose in mg for the entire
	// Volume, not a concentration
	TargetCaffeineMg decimal.Decimal `json:"target_caffeine_mg"`

	// ServingSize is the reference serving volume in ml, used only for
	// safety-threshold comparison and independent of Volume
	ServingSize decimal.Decimal `json:"serving_size"`
}

// Validate checks the target preconditions
func (t *CalculationTarget) Validate() error {
	if !t.Volume.IsPositive() {
		return errors.Input("target.volume", "must be positive")
	}
	if t.TargetCaffeineMg.IsNegative() {
		return errors.Input("target.target_caffeine_mg", "must not be negative")
	}
	return nil
}
