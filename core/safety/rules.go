// Package safety - Default rule set
package safety

import (
	"fmt"

	"sodacraft/core/types"
)

// CaffeineDoseRule checks the caffeine dose against the per-serving
// thresholds. The limit and the warning threshold form an else-if
// chain: a dose over the hard limit produces only the blocking finding.
type CaffeineDoseRule struct{}

// Name returns the rule identifier
func (CaffeineDoseRule) Name() string { return "caffeine_dose" }

// Evaluate checks the dose against the limits
func (CaffeineDoseRule) Evaluate(input Input, limits *types.SafetyLimits) []Finding {
	switch {
	case input.CaffeineMg.GreaterThan(limits.Caffeine.MaxPerServingMg):
		return []Finding{{
			Rule:     "caffeine_dose",
			Severity: SeverityBlock,
			Message: fmt.Sprintf("caffeine dose %s mg exceeds the %s mg per-serving limit",
				input.CaffeineMg, limits.Caffeine.MaxPerServingMg),
		}}
	case input.CaffeineMg.GreaterThan(limits.Caffeine.WarningThresholdMg):
		return []Finding{{
			Rule:     "caffeine_dose",
			Severity: SeverityWarning,
			Message: fmt.Sprintf("caffeine dose %s mg exceeds the %s mg warning threshold, monitor consumption",
				input.CaffeineMg, limits.Caffeine.WarningThresholdMg),
		}}
	default:
		return nil
	}
}

// BannedIngredientRule flags any ingredient present in the banned list.
// The finding carries the specific offending ids.
type BannedIngredientRule struct{}

// Name returns the rule identifier
func (BannedIngredientRule) Name() string { return "banned_ingredients" }

// Evaluate intersects the ingredient set with the banned list
func (BannedIngredientRule) Evaluate(input Input, limits *types.SafetyLimits) []Finding {
	var offending []string
	for _, id := range input.IngredientIDs {
		if limits.IsBanned(id) {
			offending = append(offending, id)
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return []Finding{{
		Rule:        "banned_ingredients",
		Severity:    SeverityBlock,
		Message:     fmt.Sprintf("recipe contains banned ingredients: %v", offending),
		Ingredients: offending,
	}}
}
