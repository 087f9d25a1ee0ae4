package domain

// TicketStatus represents the lifecycle state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// IsValid checks if the ticket status is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusResolved,
		TicketStatusClosed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a ticket may move to newStatus.
// Any valid status is reachable from any other; only the timestamps
// recorded on entering resolved/closed depend on the path taken.
func (s TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	return newStatus.IsValid()
}

// TicketPriority represents how urgent a ticket is
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// IsValid checks if the priority is valid
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	default:
		return false
	}
}

// BusinessType classifies a shop
type BusinessType string

const (
	BusinessTypeIndividual BusinessType = "individual"
	BusinessTypeBusiness   BusinessType = "business"
	BusinessTypeEnterprise BusinessType = "enterprise"
)

// IsValid checks if the business type is valid
func (b BusinessType) IsValid() bool {
	switch b {
	case BusinessTypeIndividual, BusinessTypeBusiness, BusinessTypeEnterprise:
		return true
	default:
		return false
	}
}

// SubjectType is the kind of entity a review is written about
type SubjectType string

const (
	SubjectTypeOffer SubjectType = "offer"
	SubjectTypeShop  SubjectType = "shop"
)

// IsValid checks if the subject type is valid
func (t SubjectType) IsValid() bool {
	return t == SubjectTypeOffer || t == SubjectTypeShop
}

// SearchIntent classifies what a free-text query is looking for
type SearchIntent string

const (
	SearchIntentOffers SearchIntent = "offers"
	SearchIntentShops  SearchIntent = "shops"
	SearchIntentMixed  SearchIntent = "mixed"
)

// Offer sort keys
const (
	SortByPrice    = "price"
	SortByRating   = "rating"
	SortByNewest   = "newest"
	SortByDiscount = "discount"
)

// Shop sort keys (SortByRating and SortByNewest are shared)
const (
	SortByFollowers    = "followers"
	SortByOffers       = "offers"
	SortByAlphabetical = "alphabetical"
	SortByRelevance    = "relevance"
)
