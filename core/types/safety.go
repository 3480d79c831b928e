// Package types - Safety limits configuration
package types

import (
	"github.com/shopspring/decimal"

	"sodacraft/internal/errors"
)

// CaffeineLimits holds the regulatory caffeine thresholds in mg per serving.
type CaffeineLimits struct {
	// MaxPerServingMg is the blocking limit
	MaxPerServingMg decimal.Decimal `json:"max_per_serving_mg"`

	// WarningThresholdMg is the advisory threshold
	WarningThresholdMg decimal.Decimal `json:"warning_threshold_mg"`
}

// SafetyLimits is the externally loaded limits configuration.
type SafetyLimits struct {
	// Caffeine holds the caffeine dose thresholds
	Caffeine CaffeineLimits `json:"caffeine"`

	// BannedIngredients lists ingredient ids that may never appear in a recipe
	BannedIngredients []string `json:"banned_ingredients"`
}

// Validate checks threshold ordering
func (l *SafetyLimits) Validate() error {
	if l.Caffeine.WarningThresholdMg.IsNegative() {
		return errors.Config("caffeine.warning_threshold_mg must not be negative")
	}
	if l.Caffeine.MaxPerServingMg.LessThan(l.Caffeine.WarningThresholdMg) {
		return errors.Config("caffeine.max_per_serving_mg must not be below the warning threshold")
	}
	return nil
}

// IsBanned reports whether the given ingredient id is banned
func (l *SafetyLimits) IsBanned(ingredientID string) bool {
	for _, id := range l.BannedIngredients {
		if id == ingredientID {
			return true
		}
	}
	return false
}
