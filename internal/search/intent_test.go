package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jafarshop/dealmarket/internal/domain"
)

func TestDetectSearchIntent(t *testing.T) {
	tests := []struct {
		query string
		want  domain.SearchIntent
	}{
		{"fashion shops near downtown", domain.SearchIntentShops},
		{"deals in San Francisco", domain.SearchIntentMixed},
		{"red shoes", domain.SearchIntentOffers},
		{"coffee STORE", domain.SearchIntentShops},
		{"local boutiques", domain.SearchIntentShops},
		{"supermarket coupons", domain.SearchIntentShops},
		{"pizza near me", domain.SearchIntentMixed},
		{"gifts from Austin", domain.SearchIntentMixed},
		{"bargain", domain.SearchIntentOffers},
		{"", domain.SearchIntentOffers},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSearchIntent(tt.query))
		})
	}
}

func TestPerformSearch(t *testing.T) {
	offers := testOffers()
	shops := testShops()

	t.Run("offers intent fills only offers", func(t *testing.T) {
		result := PerformSearch(offers, shops, "headphones", domain.ShopFilters{})

		assert.Equal(t, domain.SearchIntentOffers, result.SearchType)
		assert.False(t, result.IsShopSearch)
		assert.Equal(t, []string{"o1"}, ids(result.Offers))
		assert.Empty(t, result.Shops)
	})

	t.Run("shops intent fills only shops", func(t *testing.T) {
		result := PerformSearch(offers, shops, "fashion shops", domain.ShopFilters{})

		assert.Equal(t, domain.SearchIntentShops, result.SearchType)
		assert.True(t, result.IsShopSearch)
		assert.Empty(t, result.Offers)
		assert.Equal(t, []string{"s1", "s3"}, shopIDs(result.Shops))
	})

	t.Run("mixed intent fills both independently", func(t *testing.T) {
		result := PerformSearch(offers, shops, "in", domain.ShopFilters{})

		// "in" alone is not a location phrase
		assert.Equal(t, domain.SearchIntentOffers, result.SearchType)

		result = PerformSearch(offers, shops, "from seattle", domain.ShopFilters{})
		assert.Equal(t, domain.SearchIntentMixed, result.SearchType)
		assert.True(t, result.IsShopSearch)
		assert.Empty(t, result.Offers)
		assert.Empty(t, result.Shops)
	})

	t.Run("shop filters are forwarded", func(t *testing.T) {
		result := PerformSearch(offers, shops, "fashion shops", domain.ShopFilters{City: "austin"})
		assert.Equal(t, []string{"s3"}, shopIDs(result.Shops))
	})
}

func TestFilterTickets(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC) }
	tickets := []domain.Ticket{
		{ID: "T1", Title: "Refund request", Category: "billing", Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen, UserName: "Ana", UpdatedAt: at(1)},
		{ID: "T2", Title: "Login issue", Category: "account", Priority: domain.TicketPriorityLow, Status: domain.TicketStatusResolved, UserName: "Ben", UpdatedAt: at(5)},
		{ID: "T3", Title: "Coupon not applied", Category: "Billing", Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen, UserEmail: "ana@example.com", UpdatedAt: at(3)},
	}

	ticketIDs := func(ts []domain.Ticket) []string {
		out := make([]string, len(ts))
		for i, tk := range ts {
			out[i] = tk.ID
		}
		return out
	}

	assert.Equal(t, []string{"T2", "T3", "T1"}, ticketIDs(FilterTickets(tickets, domain.TicketFilters{})))
	assert.Equal(t, []string{"T3", "T1"}, ticketIDs(FilterTickets(tickets, domain.TicketFilters{Category: "billing"})))
	assert.Equal(t, []string{"T3", "T1"}, ticketIDs(FilterTickets(tickets, domain.TicketFilters{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh})))
	assert.Equal(t, []string{"T3", "T1"}, ticketIDs(FilterTickets(tickets, domain.TicketFilters{Query: "ana"})))
	assert.Equal(t, []string{"T1", "T2", "T3"}, ticketIDs(tickets), "input order is untouched")
}
