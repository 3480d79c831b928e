// Package cmd - validate command
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"sodacraft/core/safety"
	"sodacraft/internal/config"
)

var (
	validateCaffeine    float64
	validateIngredients []string
	validateLimitsPath  string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a caffeine dose and ingredient set against the safety limits",
	Long: `Run the safety rule set without calculating a recipe.

Examples:
  sodacraft validate --caffeine 180
  sodacraft validate --caffeine 80 --ingredients sugar,ephedrine`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Float64Var(&validateCaffeine, "caffeine", 0, "caffeine dose in mg")
	validateCmd.Flags().StringSliceVar(&validateIngredients, "ingredients", nil, "ingredient ids to check")
	validateCmd.Flags().StringVar(&validateLimitsPath, "limits", "", "safety limits file (overrides config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	limitsPath := validateLimitsPath
	if limitsPath == "" {
		limitsPath = config.Get().Safety.LimitsPath
	}

	limits, err := safety.LoadLimits(limitsPath)
	if err != nil {
		return err
	}

	result := safety.NewValidator().Validate(
		decimal.NewFromFloat(validateCaffeine), validateIngredients, limits)

	for _, finding := range result.Errors {
		fmt.Printf("ERROR: %s\n", finding.Message)
	}
	for _, finding := range result.Warnings {
		fmt.Printf("WARNING: %s\n", finding.Message)
	}

	if !result.Passed() {
		return fmt.Errorf("safety validation failed with %d blocking finding(s)", len(result.Errors))
	}
	fmt.Println("Safety: PASS")
	return nil
}
