// Package cmd - calculate command
package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"sodacraft/core/calc"
	"sodacraft/core/catalog"
	"sodacraft/core/output"
	"sodacraft/core/safety"
	"sodacraft/core/types"
	"sodacraft/internal/config"
)

var (
	calcBaseID     string
	calcFlavorID   string
	calcVolume     float64
	calcCaffeine   float64
	calcServing    float64
	calcFormat     string
	calcCatalogDir string
	calcLimitsPath string
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Scale a recipe to a target volume and caffeine dose",
	Long: `Derive a fully scaled, ingredient-by-ingredient recipe for a base
formulation (optionally with a flavor profile), then validate it against
the configured safety limits.

Examples:
  sodacraft calculate --base classic --flavor cola --volume 250 --caffeine 80
  sodacraft calculate --base classic --volume 1000 --caffeine 160 --format json`,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&calcBaseID, "base", "b", "", "base recipe id (required)")
	calculateCmd.Flags().StringVar(&calcFlavorID, "flavor", "", "flavor recipe id")
	calculateCmd.Flags().Float64Var(&calcVolume, "volume", 0, "finished drink volume in ml (required)")
	calculateCmd.Flags().Float64Var(&calcCaffeine, "caffeine", 0, "target caffeine dose in mg for the whole drink")
	calculateCmd.Flags().Float64Var(&calcServing, "serving", 0, "reference serving size in ml (defaults to volume)")
	calculateCmd.Flags().StringVarP(&calcFormat, "format", "f", "", "output format (cli, json)")
	calculateCmd.Flags().StringVar(&calcCatalogDir, "catalog", "", "recipe catalog directory (overrides config)")
	calculateCmd.Flags().StringVar(&calcLimitsPath, "limits", "", "safety limits file (overrides config)")
	_ = calculateCmd.MarkFlagRequired("base")
	_ = calculateCmd.MarkFlagRequired("volume")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	cat, limits, err := loadEngineInputs(cfg, calcCatalogDir, calcLimitsPath)
	if err != nil {
		return err
	}

	base, ok := cat.Base(calcBaseID)
	if !ok {
		return fmt.Errorf("base recipe not found: %s", calcBaseID)
	}

	var flavor *types.FlavorRecipe
	if calcFlavorID != "" {
		flavor, ok = cat.Flavor(calcFlavorID)
		if !ok {
			return fmt.Errorf("flavor recipe not found: %s", calcFlavorID)
		}
	}
	if err := cat.CheckCompatible(base, flavor); err != nil {
		return err
	}

	serving := calcServing
	if serving == 0 {
		serving = calcVolume
	}
	target := &types.CalculationTarget{
		Volume:           decimal.NewFromFloat(calcVolume),
		TargetCaffeineMg: decimal.NewFromFloat(calcCaffeine),
		ServingSize:      decimal.NewFromFloat(serving),
	}

	calculator := calc.New()
	recipe, err := calculator.Calculate(base, flavor, target)
	if err != nil {
		return err
	}

	verdict := safety.NewValidator().Validate(calculator.CaffeineDoseMg(recipe), recipe.IngredientIDs(), limits)

	result := &output.CalculationResult{
		BaseID:   base.ID,
		BaseName: base.Name,
		Target:   target,
		Recipe:   recipe,
		Safety:   verdict,
	}
	if flavor != nil {
		result.FlavorID = flavor.ID
		result.FlavorName = flavor.Name
	}

	format := output.Format(calcFormat)
	if calcFormat == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	if err := formatter.Render(os.Stdout, result); err != nil {
		return err
	}

	if !verdict.Passed() {
		return fmt.Errorf("safety validation failed with %d blocking finding(s)", len(verdict.Errors))
	}
	return nil
}

func loadEngineInputs(cfg *config.Config, catalogDir, limitsPath string) (*catalog.Catalog, *types.SafetyLimits, error) {
	if catalogDir == "" {
		catalogDir = cfg.Catalog.Dir
	}
	if limitsPath == "" {
		limitsPath = cfg.Safety.LimitsPath
	}

	cat, err := catalog.LoadDir(catalogDir)
	if err != nil {
		return nil, nil, err
	}
	limits, err := safety.LoadLimits(limitsPath)
	if err != nil {
		return nil, nil, err
	}
	return cat, limits, nil
}
