package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/search"
)

var offerFlags struct {
	category string
	min      float64
	max      float64
	rating   float64
	location string
	sort     string
}

var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "List offers with filters",
	Args:  cobra.NoArgs,
	RunE:  runOffers,
}

func init() {
	f := offersCmd.Flags()
	f.StringVar(&offerFlags.category, "category", "", "Category to keep (\"all\" disables the filter)")
	f.Float64Var(&offerFlags.min, "min", 0, "Minimum price")
	f.Float64Var(&offerFlags.max, "max", 0, "Maximum price")
	f.Float64Var(&offerFlags.rating, "rating", 0, "Minimum rating")
	f.StringVar(&offerFlags.location, "location", "", "Location substring")
	f.StringVar(&offerFlags.sort, "sort", "", "Sort key: price, rating, newest, discount")
}

func runOffers(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	filters := domain.FilterOptions{
		Category: offerFlags.category,
		Rating:   offerFlags.rating,
		Location: offerFlags.location,
		SortBy:   offerFlags.sort,
	}
	if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
		r := domain.PriceRange{Min: offerFlags.min, Max: math.MaxFloat64}
		if cmd.Flags().Changed("max") {
			r.Max = offerFlags.max
		}
		filters.PriceRange = &r
	}

	offers := search.FilterOffers(cat.Offers(), filters)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), offers)
	}

	if len(offers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No offers match.")
		return nil
	}
	writeOffers(cmd.OutOrStdout(), offers)
	return nil
}
