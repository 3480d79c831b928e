// Package output produces human and machine-readable renderings of a
// calculation. No recipe math happens here.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"sodacraft/core/safety"
	"sodacraft/core/types"
	"sodacraft/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// CalculationResult bundles everything one calculation produced.
type CalculationResult struct {
	// BaseID and BaseName identify the base formulation
	BaseID   string `json:"base_id"`
	BaseName string `json:"base_name,omitempty"`

	// FlavorID and FlavorName identify the flavor, when one was applied
	FlavorID   string `json:"flavor_id,omitempty"`
	FlavorName string `json:"flavor_name,omitempty"`

	// Target is the calculation input
	Target *types.CalculationTarget `json:"target"`

	// Recipe is the scaled result
	Recipe *types.ScaledRecipe `json:"recipe"`

	// Safety is the validation verdict
	Safety *safety.Result `json:"safety"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the result
	Render(w io.Writer, result *CalculationResult) error
}

// New returns the formatter for the given format
func New(format Format) (Formatter, error) {
	switch format {
	case FormatCLI:
		return &CLIFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, errors.Config("unknown output format: " + string(format))
	}
}

// CLIFormatter renders a human-readable table
type CLIFormatter struct{}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// Render writes the result as an aligned table plus a safety verdict
func (f *CLIFormatter) Render(w io.Writer, result *CalculationResult) error {
	name := result.BaseName
	if result.FlavorName != "" {
		name += " + " + result.FlavorName
	}
	fmt.Fprintf(w, "%s\n\n", name)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Finished drink\t%s ml\n", result.Recipe.Volume)
	fmt.Fprintf(tw, "Syrup\t%s ml\n", result.Recipe.SyrupVolume)
	fmt.Fprintf(tw, "Water\t%s ml\n", result.Recipe.WaterVolume)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "INGREDIENT\tAMOUNT\n")
	for _, ing := range result.Recipe.Ingredients {
		fmt.Fprintf(tw, "%s\t%s g\n", ing.ID, ing.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, finding := range result.Safety.Errors {
		fmt.Fprintf(w, "ERROR: %s\n", finding.Message)
	}
	for _, finding := range result.Safety.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", finding.Message)
	}
	if result.Safety.Passed() {
		fmt.Fprintln(w, "Safety: PASS")
	} else {
		fmt.Fprintln(w, "Safety: FAIL")
	}
	return nil
}

// JSONFormatter renders machine-readable JSON
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the result as indented JSON
func (f *JSONFormatter) Render(w io.Writer, result *CalculationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
