// Package cmd - recipes command
package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sodacraft/core/catalog"
	"sodacraft/internal/config"
)

var recipesCatalogDir string

// recipesCmd represents the recipes command
var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the recipe catalog",
	RunE:  runRecipes,
}

func init() {
	recipesCmd.Flags().StringVar(&recipesCatalogDir, "catalog", "", "recipe catalog directory (overrides config)")
}

func runRecipes(cmd *cobra.Command, args []string) error {
	dir := recipesCatalogDir
	if dir == "" {
		dir = config.Get().Catalog.Dir
	}

	cat, err := catalog.LoadDir(dir)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "BASE\tNAME\tTYPE")
	for _, base := range cat.Bases() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", base.ID, base.Name, base.Type)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "FLAVOR\tNAME\tCOMPATIBLE BASES")
	for _, flavor := range cat.Flavors() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", flavor.ID, flavor.Name, strings.Join(flavor.CompatibleBases, ", "))
	}

	return tw.Flush()
}
