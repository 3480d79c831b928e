// Package safety - Limits file loading
package safety

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"sodacraft/core/types"
	"sodacraft/internal/errors"
)

// hclLimits mirrors the regulator-facing HCL limits schema:
//
//	caffeine {
//	  max_per_serving_mg   = 200
//	  warning_threshold_mg = 150
//	}
//	banned_ingredients = ["ephedrine"]
type hclLimits struct {
	Caffeine          hclCaffeine `hcl:"caffeine,block"`
	BannedIngredients []string    `hcl:"banned_ingredients,optional"`
}

type hclCaffeine struct {
	MaxPerServingMg    float64 `hcl:"max_per_serving_mg"`
	WarningThresholdMg float64 `hcl:"warning_threshold_mg"`
}

// LoadLimits reads a safety limits file. The format is chosen by
// extension: .hcl for policy files, .json for machine-written records.
func LoadLimits(path string) (*types.SafetyLimits, error) {
	var limits *types.SafetyLimits
	var err error

	switch filepath.Ext(path) {
	case ".hcl":
		limits, err = loadHCL(path)
	case ".json":
		limits, err = loadJSON(path)
	default:
		return nil, errors.Config("unsupported limits file extension: " + filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return limits, nil
}

func loadHCL(path string) (*types.SafetyLimits, error) {
	var raw hclLimits
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return nil, errors.Parsing("failed to parse limits file "+path, err)
	}

	return &types.SafetyLimits{
		Caffeine: types.CaffeineLimits{
			MaxPerServingMg:    decimal.NewFromFloat(raw.Caffeine.MaxPerServingMg),
			WarningThresholdMg: decimal.NewFromFloat(raw.Caffeine.WarningThresholdMg),
		},
		BannedIngredients: raw.BannedIngredients,
	}, nil
}

func loadJSON(path string) (*types.SafetyLimits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parsing("failed to read limits file "+path, err)
	}

	var limits types.SafetyLimits
	if err := json.Unmarshal(data, &limits); err != nil {
		return nil, errors.Parsing("failed to parse limits file "+path, err)
	}
	return &limits, nil
}
