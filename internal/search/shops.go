package search

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jafarshop/dealmarket/internal/domain"
)

// ShopKeywords are the words that mark a query as being about shops
// rather than offers. Plurals are listed explicitly.
var ShopKeywords = []string{
	"shop", "shops",
	"store", "stores",
	"seller", "sellers",
	"vendor", "vendors",
	"business", "businesses",
	"boutique", "boutiques",
	"market", "markets",
	"marketplace", "marketplaces",
	"retailer", "retailers",
	"dealer", "dealers",
}

var (
	shopKeywordWords = regexp.MustCompile(`(?i)\b(?:` + strings.Join(ShopKeywords, "|") + `)\b`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// StripShopKeywords removes whole-word shop keywords from query so that
// "fashion shops" searches on "fashion" alone.
func StripShopKeywords(query string) string {
	stripped := shopKeywordWords.ReplaceAllString(query, " ")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(stripped, " "))
}

// SearchShops matches the keyword-stripped query against shop text fields,
// then applies filters conjunctively and one sort pass. Relevance (the
// default) keeps matching order.
func SearchShops(shops []domain.Shop, query string, filters domain.ShopFilters) []domain.Shop {
	q := strings.ToLower(StripShopKeywords(query))

	out := make([]domain.Shop, 0, len(shops))
	for _, shop := range shops {
		if !shopMatches(shop, q) || !shopPassesFilters(shop, filters) {
			continue
		}
		out = append(out, shop)
	}

	sortShops(out, filters.SortBy)
	return out
}

func shopMatches(shop domain.Shop, q string) bool {
	if containsFold(shop.Name, q) ||
		containsFold(shop.Description, q) ||
		containsFold(shop.Location.Address, q) ||
		containsFold(shop.Location.City, q) ||
		containsFold(shop.Location.State, q) {
		return true
	}
	for _, category := range shop.Categories {
		if containsFold(category, q) {
			return true
		}
	}
	return false
}

func shopPassesFilters(shop domain.Shop, filters domain.ShopFilters) bool {
	if filters.City != "" && !containsFold(shop.Location.City, strings.ToLower(filters.City)) {
		return false
	}
	if filters.State != "" && !containsFold(shop.Location.State, strings.ToLower(filters.State)) {
		return false
	}
	if filters.Category != "" {
		category := strings.ToLower(filters.Category)
		if !slices.ContainsFunc(shop.Categories, func(c string) bool { return containsFold(c, category) }) {
			return false
		}
	}
	if filters.BusinessType != "" && shop.BusinessType != filters.BusinessType {
		return false
	}
	if filters.Verified != nil && shop.Verified != *filters.Verified {
		return false
	}
	if filters.Rating > 0 && shop.Rating < filters.Rating {
		return false
	}
	return true
}

func sortShops(shops []domain.Shop, sortBy string) {
	switch sortBy {
	case domain.SortByRating:
		slices.SortStableFunc(shops, func(a, b domain.Shop) int {
			return compareFloat(b.Rating, a.Rating)
		})
	case domain.SortByFollowers:
		slices.SortStableFunc(shops, func(a, b domain.Shop) int {
			return b.FollowerCount() - a.FollowerCount()
		})
	case domain.SortByOffers:
		slices.SortStableFunc(shops, func(a, b domain.Shop) int {
			return b.TotalOffers - a.TotalOffers
		})
	case domain.SortByAlphabetical:
		// Collator keeps scratch buffers, so one per call.
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(shops, func(a, b domain.Shop) int {
			return c.CompareString(a.Name, b.Name)
		})
	case domain.SortByNewest:
		slices.SortStableFunc(shops, func(a, b domain.Shop) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
