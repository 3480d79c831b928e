package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodacraft/core/safety"
	"sodacraft/core/types"
)

func sampleResult() *CalculationResult {
	return &CalculationResult{
		BaseID:     "classic",
		BaseName:   "Classic Cola Base",
		FlavorID:   "cola",
		FlavorName: "Cola",
		Target: &types.CalculationTarget{
			Volume:           decimal.NewFromInt(250),
			TargetCaffeineMg: decimal.NewFromInt(80),
		},
		Recipe: &types.ScaledRecipe{
			Volume:      decimal.NewFromInt(250),
			SyrupVolume: decimal.NewFromInt(50),
			WaterVolume: decimal.NewFromInt(200),
			Ingredients: []types.ScaledIngredient{
				{ID: "caffeine", Amount: decimal.RequireFromString("0.08")},
				{ID: "sugar", Amount: decimal.NewFromInt(25)},
			},
		},
		Safety: &safety.Result{
			Errors:   []safety.Finding{},
			Warnings: []safety.Finding{},
		},
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Format("xml"))
	require.Error(t, err)
}

func TestCLIFormatter(t *testing.T) {
	formatter, err := New(FormatCLI)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Render(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Classic Cola Base + Cola")
	assert.Contains(t, out, "250 ml")
	assert.Contains(t, out, "sugar")
	assert.Contains(t, out, "Safety: PASS")
}

func TestCLIFormatterShowsFindings(t *testing.T) {
	result := sampleResult()
	result.Safety.Errors = append(result.Safety.Errors, safety.Finding{
		Rule:     "caffeine_dose",
		Severity: safety.SeverityBlock,
		Message:  "caffeine dose 500 mg exceeds the 200 mg per-serving limit",
	})

	formatter, _ := New(FormatCLI)
	var buf bytes.Buffer
	require.NoError(t, formatter.Render(&buf, result))

	assert.Contains(t, buf.String(), "ERROR: caffeine dose")
	assert.Contains(t, buf.String(), "Safety: FAIL")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	formatter, err := New(FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, formatter.Render(&buf, sampleResult()))

	var decoded CalculationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "classic", decoded.BaseID)
	assert.True(t, decoded.Recipe.SyrupVolume.Equal(decimal.NewFromInt(50)))
}
