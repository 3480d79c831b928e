// Package api - Request/response types
package api

import (
	"github.com/shopspring/decimal"

	"sodacraft/core/safety"
	"sodacraft/core/types"
)

// CalculateRequest asks for one scaled recipe.
type CalculateRequest struct {
	// BaseID selects the base formulation
	BaseID string `json:"base_id"`

	// FlavorID selects the flavor profile; empty for an unflavored drink
	FlavorID string `json:"flavor_id,omitempty"`

	// Target carries the requested volume, caffeine dose and serving size
	Target TargetPayload `json:"target"`
}

// TargetPayload mirrors types.CalculationTarget on the wire
type TargetPayload struct {
	Volume           decimal.Decimal `json:"volume"`
	TargetCaffeineMg decimal.Decimal `json:"target_caffeine_mg"`
	ServingSize      decimal.Decimal `json:"serving_size"`
}

// CalculateResponse returns the scaled recipe and its safety verdict
type CalculateResponse struct {
	// Recipe is the scaled result
	Recipe *types.ScaledRecipe `json:"recipe"`

	// Safety contains all findings
	Safety *safety.Result `json:"safety"`

	// Passed is true when no blocking finding was emitted
	Passed bool `json:"passed"`

	// Metadata contains execution context
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// ValidateRequest asks for a standalone safety evaluation
type ValidateRequest struct {
	// CaffeineMg is the caffeine dose under evaluation
	CaffeineMg decimal.Decimal `json:"caffeine_mg"`

	// IngredientIDs is the ingredient id set of the recipe
	IngredientIDs []string `json:"ingredient_ids"`
}

// ValidateResponse returns the findings
type ValidateResponse struct {
	Safety *safety.Result `json:"safety"`
	Passed bool           `json:"passed"`
}

// RecipeSummary is one catalog listing row
type RecipeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Type is set for bases, Profile for flavors
	Type    string `json:"type,omitempty"`
	Profile string `json:"profile,omitempty"`

	// CompatibleBases is set for flavors
	CompatibleBases []string `json:"compatible_bases,omitempty"`
}

// RecipesResponse lists the current catalog snapshot
type RecipesResponse struct {
	Bases   []RecipeSummary `json:"bases"`
	Flavors []RecipeSummary `json:"flavors"`
}

// ResponseMetadata contains execution context
type ResponseMetadata struct {
	// RequestID identifies this request in the logs
	RequestID string `json:"request_id"`

	// EngineVersion is the engine version that served the request
	EngineVersion string `json:"engine_version"`

	// DurationMs is the handling duration
	DurationMs int64 `json:"duration_ms"`
}
