package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/core"
	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/internal/iocache"
	"github.com/pkgpulse/pkgpulse/internal/outwriter"
)

// categoriesCmd lists the merged category catalog.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List seed and discovered package categories.",
	Long: `Print the category catalog: the curated seed categories plus any
categories recorded by discovery runs.

Seed categories always win id collisions, so a discovery run can extend
but never redefine the curated set.

Examples:
  # See every known category
  pkgpulse categories

  # Feed ids into scripting
  pkgpulse categories --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		categories := core.GetCategoryCatalogResult(rootCtx, iocache.Manager.GetCategoryStore())
		if err := outwriter.NewOutWriter().WriteCategories(categories, cfg); err != nil {
			contract.LogFatal("Cannot write categories", err)
		}
	},
}

// categoriesInferCmd maps keywords to their best-fit category.
var categoriesInferCmd = &cobra.Command{
	Use:   "infer <keyword> [keyword...]",
	Short: "Infer the best-fit category for a set of keywords.",
	Long: `Run the keyword-to-category inference used by discovery and the
alternatives lookup, against both seed and discovered categories.

Examples:
  # Where would this package land?
  pkgpulse categories infer test mock assertion

  # No match prints a hint instead of a category
  pkgpulse categories infer quantum chromodynamics`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		id, name := core.InferCategoryResult(rootCtx, iocache.Manager.GetCategoryStore(), args)
		if id == "" {
			fmt.Println("No category matches those keywords.")
			return
		}
		fmt.Printf("%s (%s)\n", id, name)
	},
}
