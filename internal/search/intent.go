package search

import (
	"regexp"
	"strings"

	"github.com/jafarshop/dealmarket/internal/domain"
)

type intentRule struct {
	name   string
	match  func(q string) bool
	intent domain.SearchIntent
}

var (
	shopSuffixPattern    = regexp.MustCompile(`\b\w+\s+(?:shop|store|seller|vendor|business|boutique)s?\b`)
	locationPrepositions = regexp.MustCompile(`\b(?:in|at|near|from)\s+\w+`)
)

// intentRules are evaluated top to bottom; the first match wins, so a
// shop keyword always beats a location phrase.
var intentRules = []intentRule{
	{
		name: "shop-keyword",
		match: func(q string) bool {
			for _, keyword := range ShopKeywords {
				if strings.Contains(q, keyword) {
					return true
				}
			}
			return false
		},
		intent: domain.SearchIntentShops,
	},
	{
		name:   "shop-suffix",
		match:  shopSuffixPattern.MatchString,
		intent: domain.SearchIntentShops,
	},
	{
		name:   "location",
		match:  locationPrepositions.MatchString,
		intent: domain.SearchIntentMixed,
	},
}

// DetectSearchIntent classifies query as targeting offers, shops, or both.
func DetectSearchIntent(query string) domain.SearchIntent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, rule := range intentRules {
		if rule.match(q) {
			return rule.intent
		}
	}
	return domain.SearchIntentOffers
}

// PerformSearch dispatches query by its detected intent. Mixed searches fill
// offers and shops independently; the two lists are never merged or ranked
// against each other.
func PerformSearch(offers []domain.Offer, shops []domain.Shop, query string, shopFilters domain.ShopFilters) domain.SearchResult {
	intent := DetectSearchIntent(query)
	result := domain.SearchResult{
		Offers:     []domain.Offer{},
		Shops:      []domain.Shop{},
		SearchType: intent,
	}

	switch intent {
	case domain.SearchIntentShops:
		result.Shops = SearchShops(shops, query, shopFilters)
		result.IsShopSearch = true
	case domain.SearchIntentMixed:
		result.Offers = SearchOffers(offers, query)
		result.Shops = SearchShops(shops, query, shopFilters)
		result.IsShopSearch = true
	default:
		result.Offers = SearchOffers(offers, query)
	}
	return result
}
