package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jafarshop/dealmarket/internal/domain"
	"github.com/jafarshop/dealmarket/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search offers and shops the way the storefront does",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var intentCmd = &cobra.Command{
	Use:   "intent <query>",
	Short: "Show how a query is classified",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		intent := search.DetectSearchIntent(query)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"query":    query,
				"intent":   string(intent),
				"stripped": search.StripShopKeywords(query),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), intent)
		return nil
	},
}

func runSearch(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	result := search.PerformSearch(cat.Offers(), cat.Shops(), query, domain.ShopFilters{})

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Intent: %s\n", result.SearchType)
	if len(result.Offers) > 0 {
		fmt.Fprintf(out, "\nOffers (%d):\n", len(result.Offers))
		writeOffers(out, result.Offers)
	}
	if len(result.Shops) > 0 {
		fmt.Fprintf(out, "\nShops (%d):\n", len(result.Shops))
		for _, shop := range result.Shops {
			fmt.Fprintf(out, "  %-8s %-20s %.1f★  %s, %s\n",
				shop.ID, shop.Name, shop.Rating, shop.Location.City, shop.Location.State)
		}
	}
	if len(result.Offers) == 0 && len(result.Shops) == 0 {
		fmt.Fprintln(out, "No results.")
	}
	return nil
}

func writeOffers(out io.Writer, offers []domain.Offer) {
	for _, offer := range offers {
		fmt.Fprintf(out, "  %-4s %-32s %9.2f  %.1f★  %s\n",
			offer.ID, offer.Title, offer.Price, offer.Rating, offer.Vendor.Name)
	}
}
