package safety

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodacraft/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLimits() *types.SafetyLimits {
	return &types.SafetyLimits{
		Caffeine: types.CaffeineLimits{
			MaxPerServingMg:    dec("200"),
			WarningThresholdMg: dec("150"),
		},
		BannedIngredients: []string{"ephedrine", "dnp"},
	}
}

func TestDoseUnderThresholdPasses(t *testing.T) {
	result := NewValidator().Validate(dec("80"), []string{"sugar", "caffeine"}, testLimits())

	assert.True(t, result.Passed())
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestDoseInWarningBandWarnsWithoutBlocking(t *testing.T) {
	result := NewValidator().Validate(dec("180"), nil, testLimits())

	assert.True(t, result.Passed(), "warnings never block")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "caffeine_dose", result.Warnings[0].Rule)
	assert.Equal(t, SeverityWarning, result.Warnings[0].Severity)
	assert.Contains(t, result.Warnings[0].Message, "warning threshold")
}

func TestDoseOverLimitBlocksWithoutAlsoWarning(t *testing.T) {
	// The two thresholds form an else-if chain, not additive findings.
	result := NewValidator().Validate(dec("250"), nil, testLimits())

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, SeverityBlock, result.Errors[0].Severity)
	assert.Contains(t, result.Errors[0].Message, "per-serving limit")
	assert.Empty(t, result.Warnings)
}

func TestDoseExactlyAtLimitPasses(t *testing.T) {
	// Thresholds are exclusive: only doses strictly above them fire.
	result := NewValidator().Validate(dec("150"), nil, testLimits())
	assert.True(t, result.Passed())
	assert.Empty(t, result.Warnings)

	result = NewValidator().Validate(dec("200"), nil, testLimits())
	assert.True(t, result.Passed())
	require.Len(t, result.Warnings, 1)
}

func TestBannedIngredientsReportOffendingIDs(t *testing.T) {
	result := NewValidator().Validate(dec("80"),
		[]string{"sugar", "ephedrine", "citric-acid", "dnp"}, testLimits())

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "banned_ingredients", result.Errors[0].Rule)
	assert.Equal(t, []string{"ephedrine", "dnp"}, result.Errors[0].Ingredients)
}

func TestRulesEvaluateIndependently(t *testing.T) {
	// Over the limit AND carrying a banned ingredient: both findings
	// are collected, no short-circuit.
	result := NewValidator().Validate(dec("250"), []string{"ephedrine"}, testLimits())

	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 2)

	rules := []string{result.Errors[0].Rule, result.Errors[1].Rule}
	assert.Contains(t, rules, "caffeine_dose")
	assert.Contains(t, rules, "banned_ingredients")
}

func TestValidatorIsStateless(t *testing.T) {
	v := NewValidator()

	failing := v.Validate(dec("250"), []string{"ephedrine"}, testLimits())
	assert.False(t, failing.Passed())

	clean := v.Validate(dec("80"), []string{"sugar"}, testLimits())
	assert.True(t, clean.Passed())
	assert.Empty(t, clean.Errors)
	assert.Empty(t, clean.Warnings)
}

func TestResultMessages(t *testing.T) {
	result := NewValidator().Validate(dec("180"), []string{"dnp"}, testLimits())

	assert.Len(t, result.ErrorMessages(), 1)
	assert.Len(t, result.WarningMessages(), 1)
}

type alwaysBlockRule struct{}

func (alwaysBlockRule) Name() string { return "always_block" }
func (alwaysBlockRule) Evaluate(input Input, limits *types.SafetyLimits) []Finding {
	return []Finding{{Rule: "always_block", Severity: SeverityBlock, Message: "blocked"}}
}

func TestRegisterCustomRule(t *testing.T) {
	v := NewValidator()
	v.Register(alwaysBlockRule{})

	result := v.Validate(dec("10"), nil, testLimits())
	assert.False(t, result.Passed())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "always_block", result.Errors[0].Rule)
}
