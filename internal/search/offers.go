package search

import (
	"slices"
	"strings"

	"github.com/jafarshop/dealmarket/internal/domain"
)

// AllCategories disables the category predicate, same as an empty category
const AllCategories = "all"

// FilterOffers applies the filter predicates conjunctively (category, price
// range, rating floor, location) and then at most one stable sort pass keyed
// by filters.SortBy. The input slice is never modified; an unknown sort key
// leaves the filtered order untouched.
func FilterOffers(offers []domain.Offer, filters domain.FilterOptions) []domain.Offer {
	location := strings.ToLower(filters.Location)

	out := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if filters.Category != "" && filters.Category != AllCategories && offer.Category != filters.Category {
			continue
		}
		if filters.PriceRange != nil && !filters.PriceRange.Contains(offer.Price) {
			continue
		}
		if filters.Rating > 0 && offer.Rating < filters.Rating {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(offer.Location), location) {
			continue
		}
		out = append(out, offer)
	}

	sortOffers(out, filters.SortBy)
	return out
}

func sortOffers(offers []domain.Offer, sortBy string) {
	switch sortBy {
	case domain.SortByPrice:
		slices.SortStableFunc(offers, func(a, b domain.Offer) int {
			return compareFloat(a.Price, b.Price)
		})
	case domain.SortByRating:
		slices.SortStableFunc(offers, func(a, b domain.Offer) int {
			return compareFloat(b.Rating, a.Rating)
		})
	case domain.SortByNewest:
		slices.SortStableFunc(offers, func(a, b domain.Offer) int {
			return compareBool(b.IsNew, a.IsNew)
		})
	case domain.SortByDiscount:
		slices.SortStableFunc(offers, func(a, b domain.Offer) int {
			return compareFloat(b.DiscountOrZero(), a.DiscountOrZero())
		})
	}
}

// SearchOffers returns the offers whose text fields contain query,
// case-insensitively. An empty query matches every offer.
func SearchOffers(offers []domain.Offer, query string) []domain.Offer {
	q := strings.ToLower(query)

	out := make([]domain.Offer, 0, len(offers))
	for _, offer := range offers {
		if offerMatches(offer, q) {
			out = append(out, offer)
		}
	}
	return out
}

func offerMatches(offer domain.Offer, q string) bool {
	if containsFold(offer.Title, q) ||
		containsFold(offer.Description, q) ||
		containsFold(offer.ShortDescription, q) ||
		containsFold(offer.Category, q) ||
		containsFold(offer.Vendor.Name, q) ||
		containsFold(offer.Location, q) {
		return true
	}
	for _, tag := range offer.Tags {
		if containsFold(tag, q) {
			return true
		}
	}
	return false
}

// containsFold expects q already lower-cased
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareBool orders false before true
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
