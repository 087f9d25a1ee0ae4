package search

import "github.com/jafarshop/dealmarket/internal/domain"

// FeaturedOffers returns up to limit featured offers in catalog order.
// A non-positive limit returns all of them.
func FeaturedOffers(offers []domain.Offer, limit int) []domain.Offer {
	out := make([]domain.Offer, 0)
	for _, offer := range offers {
		if !offer.IsFeatured {
			continue
		}
		out = append(out, offer)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// RelatedOffers returns up to limit other offers in the same category
func RelatedOffers(offers []domain.Offer, offer domain.Offer, limit int) []domain.Offer {
	out := make([]domain.Offer, 0)
	for _, candidate := range offers {
		if candidate.ID == offer.ID || candidate.Category != offer.Category {
			continue
		}
		out = append(out, candidate)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// CategoryCounts counts offers per category
func CategoryCounts(offers []domain.Offer) map[string]int {
	counts := make(map[string]int)
	for _, offer := range offers {
		counts[offer.Category]++
	}
	return counts
}
