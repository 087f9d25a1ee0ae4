package search

import (
	"slices"
	"strings"

	"github.com/jafarshop/dealmarket/internal/domain"
)

// FilterTickets narrows tickets by status, priority, category and a free-text
// query over id, title, description and requester, newest activity first.
func FilterTickets(tickets []domain.Ticket, filters domain.TicketFilters) []domain.Ticket {
	q := strings.ToLower(strings.TrimSpace(filters.Query))

	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if filters.Status != "" && ticket.Status != filters.Status {
			continue
		}
		if filters.Priority != "" && ticket.Priority != filters.Priority {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(ticket.Category, filters.Category) {
			continue
		}
		if q != "" && !ticketMatches(ticket, q) {
			continue
		}
		out = append(out, ticket)
	}

	SortTicketsByActivity(out)
	return out
}

// SortTicketsByActivity orders tickets by UpdatedAt, most recent first
func SortTicketsByActivity(tickets []domain.Ticket) {
	slices.SortStableFunc(tickets, func(a, b domain.Ticket) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

func ticketMatches(ticket domain.Ticket, q string) bool {
	return containsFold(ticket.ID, q) ||
		containsFold(ticket.Title, q) ||
		containsFold(ticket.Description, q) ||
		containsFold(ticket.UserName, q) ||
		containsFold(ticket.UserEmail, q)
}
