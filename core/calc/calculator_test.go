package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodacraft/core/types"
	"sodacraft/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// referenceBase is the 1L-syrup / 5L-drink master formulation used
// across these tests.
func referenceBase() *types.BaseRecipe {
	return &types.BaseRecipe{
		ID:   "classic",
		Name: "Classic Cola Base",
		Type: types.RecipeTypeClassic,
		Yield: types.Yield{
			Syrup: dec("1000"),
			Drink: dec("5000"),
		},
		Ingredients: []types.RecipeIngredient{
			{IngredientID: "caffeine", Amount: dec("1.6")},
			{IngredientID: "sugar", Amount: dec("500")},
		},
	}
}

func referenceFlavor() *types.FlavorRecipe {
	return &types.FlavorRecipe{
		ID:   "cola",
		Name: "Cola",
		Ingredients: []types.RecipeIngredient{
			{IngredientID: "flavor-1", Amount: dec("10")},
		},
		CompatibleBases: []string{"classic"},
	}
}

func referenceTarget() *types.CalculationTarget {
	return &types.CalculationTarget{
		Volume:           dec("250"),
		TargetCaffeineMg: dec("80"),
		ServingSize:      dec("250"),
	}
}

func TestCalculateReferenceCase(t *testing.T) {
	recipe, err := New().Calculate(referenceBase(), referenceFlavor(), referenceTarget())
	require.NoError(t, err)

	assert.True(t, recipe.Volume.Equal(dec("250")), "volume: %s", recipe.Volume)
	assert.True(t, recipe.SyrupVolume.Equal(dec("50")), "syrup: %s", recipe.SyrupVolume)
	assert.True(t, recipe.WaterVolume.Equal(dec("200")), "water: %s", recipe.WaterVolume)

	sugar, ok := recipe.Ingredient("sugar")
	require.True(t, ok)
	assert.True(t, sugar.Amount.Equal(dec("25")), "sugar: %s", sugar.Amount)

	flavor, ok := recipe.Ingredient("flavor-1")
	require.True(t, ok)
	assert.True(t, flavor.Amount.Equal(dec("0.5")), "flavor-1: %s", flavor.Amount)

	caffeine, ok := recipe.Ingredient("caffeine")
	require.True(t, ok)
	assert.True(t, caffeine.Amount.Equal(dec("0.08")), "caffeine: %s", caffeine.Amount)
}

func TestCaffeineDoseIndependentOfScaling(t *testing.T) {
	// The caffeine row tracks the target dose; every other row tracks
	// the volume.
	for _, tc := range []struct {
		volume   string
		caffeine string
		wantG    string
	}{
		{"250", "80", "0.08"},
		{"250", "160", "0.16"},
		{"1000", "80", "0.08"},
		{"5000", "80", "0.08"},
	} {
		target := &types.CalculationTarget{
			Volume:           dec(tc.volume),
			TargetCaffeineMg: dec(tc.caffeine),
		}
		recipe, err := New().Calculate(referenceBase(), referenceFlavor(), target)
		require.NoError(t, err)

		caffeine, ok := recipe.Ingredient("caffeine")
		require.True(t, ok)
		assert.True(t, caffeine.Amount.Equal(dec(tc.wantG)),
			"volume=%s caffeine=%s: got %s g", tc.volume, tc.caffeine, caffeine.Amount)
	}
}

func TestDoubledCaffeineTargetLeavesOtherRowsUnchanged(t *testing.T) {
	target := referenceTarget()
	target.TargetCaffeineMg = dec("160")

	recipe, err := New().Calculate(referenceBase(), referenceFlavor(), target)
	require.NoError(t, err)

	caffeine, _ := recipe.Ingredient("caffeine")
	sugar, _ := recipe.Ingredient("sugar")
	flavor, _ := recipe.Ingredient("flavor-1")
	assert.True(t, caffeine.Amount.Equal(dec("0.16")))
	assert.True(t, sugar.Amount.Equal(dec("25")))
	assert.True(t, flavor.Amount.Equal(dec("0.5")))
}

func TestVolumeConservation(t *testing.T) {
	for _, volume := range []string{"1", "33", "250", "330", "999.5", "123456.789"} {
		target := &types.CalculationTarget{Volume: dec(volume)}
		recipe, err := New().Calculate(referenceBase(), nil, target)
		require.NoError(t, err)

		sum := recipe.SyrupVolume.Add(recipe.WaterVolume)
		assert.True(t, sum.Equal(dec(volume)), "volume=%s: syrup+water=%s", volume, sum)
	}
}

func TestDilutionFidelity(t *testing.T) {
	base := referenceBase()
	for _, volume := range []string{"100", "250", "750", "2000"} {
		target := &types.CalculationTarget{Volume: dec(volume)}
		recipe, err := New().Calculate(base, nil, target)
		require.NoError(t, err)

		// syrup/volume == yield.syrup/yield.drink, cross-multiplied to
		// stay exact.
		left := recipe.SyrupVolume.Mul(base.Yield.Drink)
		right := recipe.Volume.Mul(base.Yield.Syrup)
		assert.True(t, left.Equal(right), "volume=%s", volume)
	}
}

func TestProportionalScaling(t *testing.T) {
	base := referenceBase()
	target := &types.CalculationTarget{Volume: dec("400")}

	recipe, err := New().Calculate(base, nil, target)
	require.NoError(t, err)

	scaleFactor := recipe.SyrupVolume.Div(base.Yield.Syrup)
	sugar, ok := recipe.Ingredient("sugar")
	require.True(t, ok)
	assert.True(t, sugar.Amount.Equal(dec("500").Mul(scaleFactor)))
}

func TestCalculateIsIdempotent(t *testing.T) {
	first, err := New().Calculate(referenceBase(), referenceFlavor(), referenceTarget())
	require.NoError(t, err)
	second, err := New().Calculate(referenceBase(), referenceFlavor(), referenceTarget())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPreconditions(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*types.BaseRecipe, *types.CalculationTarget)
		wantField string
	}{
		{
			name:      "zero volume",
			mutate:    func(b *types.BaseRecipe, tg *types.CalculationTarget) { tg.Volume = decimal.Zero },
			wantField: "target.volume",
		},
		{
			name:      "negative volume",
			mutate:    func(b *types.BaseRecipe, tg *types.CalculationTarget) { tg.Volume = dec("-1") },
			wantField: "target.volume",
		},
		{
			name:      "negative caffeine target",
			mutate:    func(b *types.BaseRecipe, tg *types.CalculationTarget) { tg.TargetCaffeineMg = dec("-80") },
			wantField: "target.target_caffeine_mg",
		},
		{
			name:      "zero syrup yield",
			mutate:    func(b *types.BaseRecipe, tg *types.CalculationTarget) { b.Yield.Syrup = decimal.Zero },
			wantField: "base.yield.syrup",
		},
		{
			name: "drink yield not above syrup yield",
			mutate: func(b *types.BaseRecipe, tg *types.CalculationTarget) {
				b.Yield.Drink = b.Yield.Syrup
			},
			wantField: "base.yield.drink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := referenceBase()
			target := referenceTarget()
			tt.mutate(base, target)

			recipe, err := New().Calculate(base, referenceFlavor(), target)
			require.Error(t, err)
			assert.Nil(t, recipe, "no partial result on invalid input")
			assert.True(t, errors.IsType(err, errors.TypeInput), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestDuplicateIngredientAcrossListsKeepsBothRows(t *testing.T) {
	flavor := referenceFlavor()
	flavor.Ingredients = append(flavor.Ingredients,
		types.RecipeIngredient{IngredientID: "sugar", Amount: dec("20")})

	recipe, err := New().Calculate(referenceBase(), flavor, referenceTarget())
	require.NoError(t, err)

	var sugarRows []types.ScaledIngredient
	for _, ing := range recipe.Ingredients {
		if ing.ID == "sugar" {
			sugarRows = append(sugarRows, ing)
		}
	}
	require.Len(t, sugarRows, 2)
	assert.True(t, sugarRows[0].Amount.Equal(dec("25")))
	assert.True(t, sugarRows[1].Amount.Equal(dec("1")))
}

func TestCaffeineInBothListsEmitsSingleRow(t *testing.T) {
	flavor := referenceFlavor()
	flavor.Ingredients = append(flavor.Ingredients,
		types.RecipeIngredient{IngredientID: "caffeine", Amount: dec("0.4")})

	recipe, err := New().Calculate(referenceBase(), flavor, referenceTarget())
	require.NoError(t, err)

	count := 0
	for _, ing := range recipe.Ingredients {
		if ing.ID == "caffeine" {
			count++
			assert.True(t, ing.Amount.Equal(dec("0.08")))
		}
	}
	assert.Equal(t, 1, count, "exactly one caffeine row regardless of source lists")
}

func TestCaffeineSynthesizedForCaffeineFreeBase(t *testing.T) {
	base := referenceBase()
	base.Ingredients = []types.RecipeIngredient{
		{IngredientID: "sugar", Amount: dec("500")},
	}

	recipe, err := New().Calculate(base, nil, referenceTarget())
	require.NoError(t, err)

	caffeine, ok := recipe.Ingredient("caffeine")
	require.True(t, ok, "positive target dose yields a caffeine row")
	assert.True(t, caffeine.Amount.Equal(dec("0.08")))
}

func TestZeroCaffeineTargetOnCaffeineFreeBase(t *testing.T) {
	base := referenceBase()
	base.Ingredients = []types.RecipeIngredient{
		{IngredientID: "sugar", Amount: dec("500")},
	}
	target := &types.CalculationTarget{Volume: dec("250")}

	recipe, err := New().Calculate(base, nil, target)
	require.NoError(t, err)

	_, ok := recipe.Ingredient("caffeine")
	assert.False(t, ok, "no caffeine row when the target dose is zero")
}

func TestNilFlavorScalesBaseOnly(t *testing.T) {
	recipe, err := New().Calculate(referenceBase(), nil, referenceTarget())
	require.NoError(t, err)

	_, ok := recipe.Ingredient("flavor-1")
	assert.False(t, ok)
	sugar, ok := recipe.Ingredient("sugar")
	require.True(t, ok)
	assert.True(t, sugar.Amount.Equal(dec("25")))
}

func TestCustomCaffeineIngredientID(t *testing.T) {
	base := referenceBase()
	base.Ingredients = []types.RecipeIngredient{
		{IngredientID: "caffeine-anhydrous", Amount: dec("1.6")},
		{IngredientID: "sugar", Amount: dec("500")},
	}

	calculator := NewWithCaffeineID("caffeine-anhydrous")
	recipe, err := calculator.Calculate(base, nil, referenceTarget())
	require.NoError(t, err)

	caffeine, ok := recipe.Ingredient("caffeine-anhydrous")
	require.True(t, ok)
	assert.True(t, caffeine.Amount.Equal(dec("0.08")))
	assert.True(t, calculator.CaffeineDoseMg(recipe).Equal(dec("80")))
}
