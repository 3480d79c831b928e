// Package safety evaluates a caffeine dose and ingredient set against
// regulatory limits, producing classified findings.
package safety

import (
	"github.com/shopspring/decimal"

	"sodacraft/core/types"
)

// Severity classifies a finding
type Severity string

const (
	// SeverityBlock is a blocking finding; the recipe must not be served
	SeverityBlock Severity = "block"

	// SeverityWarning is advisory and never blocks
	SeverityWarning Severity = "warning"
)

// Finding is one classified rule result
type Finding struct {
	// Rule is the rule that produced the finding
	Rule string `json:"rule"`

	// Severity classifies the finding
	Severity Severity `json:"severity"`

	// Message is a human-readable description
	Message string `json:"message"`

	// Ingredients lists the specific offending ingredient ids, if any
	Ingredients []string `json:"ingredients,omitempty"`
}

// Input is the evaluation subject handed to every rule
type Input struct {
	// CaffeineMg is the caffeine dose under evaluation, in mg
	CaffeineMg decimal.Decimal

	// IngredientIDs is the ingredient id set of the recipe
	IngredientIDs []string
}

// Rule evaluates one safety concern independently of all others
type Rule interface {
	// Name returns the rule identifier
	Name() string

	// Evaluate returns zero or more findings for the input
	Evaluate(input Input, limits *types.SafetyLimits) []Finding
}

// Result collects all findings of one validation pass.
// An empty Errors slice is the sole pass signal; warnings never block.
type Result struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// Passed reports whether no blocking finding was emitted
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}

// ErrorMessages returns the blocking finding messages
func (r *Result) ErrorMessages() []string {
	return messages(r.Errors)
}

// WarningMessages returns the advisory finding messages
func (r *Result) WarningMessages() []string {
	return messages(r.Warnings)
}

func messages(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

// Validator runs all registered rules. It performs no I/O, holds no
// state between calls, and is safe for concurrent use.
type Validator struct {
	rules []Rule
}

// NewValidator creates a validator with the default rule set
func NewValidator() *Validator {
	return &Validator{
		rules: []Rule{
			CaffeineDoseRule{},
			BannedIngredientRule{},
		},
	}
}

// Register adds a rule to the validator
func (v *Validator) Register(rule Rule) {
	v.rules = append(v.rules, rule)
}

// Validate evaluates every rule and collects all applicable findings.
// Rules are never short-circuited against each other.
func (v *Validator) Validate(caffeineMg decimal.Decimal, ingredientIDs []string, limits *types.SafetyLimits) *Result {
	input := Input{
		CaffeineMg:    caffeineMg,
		IngredientIDs: ingredientIDs,
	}

	result := &Result{
		Errors:   []Finding{},
		Warnings: []Finding{},
	}
	for _, rule := range v.rules {
		for _, finding := range rule.Evaluate(input, limits) {
			if finding.Severity == SeverityBlock {
				result.Errors = append(result.Errors, finding)
			} else {
				result.Warnings = append(result.Warnings, finding)
			}
		}
	}
	return result
}
