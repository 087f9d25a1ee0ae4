package domain

import (
	"time"
)

// Vendor is the seller attached to an offer
type Vendor struct {
	Name     string  `json:"name" yaml:"name"`
	Rating   float64 `json:"rating" yaml:"rating"`
	Verified bool    `json:"verified" yaml:"verified"`
}

// Offer represents a purchasable deal listing
type Offer struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	ShortDescription string   `json:"shortDescription,omitempty" yaml:"shortDescription"`
	Price            float64  `json:"price" yaml:"price"`
	OriginalPrice    *float64 `json:"originalPrice,omitempty" yaml:"originalPrice"`
	Discount         *float64 `json:"discount,omitempty" yaml:"discount"`
	Category         string   `json:"category" yaml:"category"`
	Images           []string `json:"images" yaml:"images"`
	Vendor           Vendor   `json:"vendor" yaml:"vendor"`
	Rating           float64  `json:"rating" yaml:"rating"`
	ReviewCount      int      `json:"reviewCount" yaml:"reviewCount"`
	IsNew            bool     `json:"isNew" yaml:"isNew"`
	IsFeatured       bool     `json:"isFeatured" yaml:"isFeatured"`
	Location         string   `json:"location,omitempty" yaml:"location"`
	Tags             []string `json:"tags" yaml:"tags"`
}

// CoverImage returns the first image, or "" when the offer has none
func (o Offer) CoverImage() string {
	if len(o.Images) == 0 {
		return ""
	}
	return o.Images[0]
}

// DiscountOrZero treats a missing discount as 0
func (o Offer) DiscountOrZero() float64 {
	if o.Discount == nil {
		return 0
	}
	return *o.Discount
}

// ShopLocation is a shop address decomposed for filtering
type ShopLocation struct {
	Address string `json:"address,omitempty" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zipCode" yaml:"zipCode"`
}

// ShopStats holds display counters for a shop
type ShopStats struct {
	FollowerCount int     `json:"followerCount" yaml:"followerCount"`
	ResponseTime  string  `json:"responseTime,omitempty" yaml:"responseTime"`
	ResponseRate  float64 `json:"responseRate,omitempty" yaml:"responseRate"`
	TotalSales    int     `json:"totalSales,omitempty" yaml:"totalSales"`
}

// Shop represents a seller storefront
type Shop struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Description  string       `json:"description" yaml:"description"`
	Logo         string       `json:"logo,omitempty" yaml:"logo"`
	Rating       float64      `json:"rating" yaml:"rating"`
	ReviewCount  int          `json:"reviewCount" yaml:"reviewCount"`
	Verified     bool         `json:"verified" yaml:"verified"`
	Location     ShopLocation `json:"location" yaml:"location"`
	BusinessType BusinessType `json:"businessType" yaml:"businessType"`
	Categories   []string     `json:"categories" yaml:"categories"`
	TotalOffers  int          `json:"totalOffers" yaml:"totalOffers"`
	Stats        *ShopStats   `json:"stats,omitempty" yaml:"stats"`
	CreatedAt    time.Time    `json:"createdAt" yaml:"createdAt"`
}

// FollowerCount returns the follower count, 0 when stats are missing
func (s Shop) FollowerCount() int {
	if s.Stats == nil {
		return 0
	}
	return s.Stats.FollowerCount
}

// Assignment names the admin handling a ticket
type Assignment struct {
	AdminID   string `json:"adminId" yaml:"adminId"`
	AdminName string `json:"adminName" yaml:"adminName"`
}

// TicketMessage is one entry in a ticket conversation.
// TicketID is a lookup back-reference only.
type TicketMessage struct {
	ID         string    `json:"id" yaml:"id"`
	TicketID   string    `json:"ticketId" yaml:"ticketId"`
	AuthorID   string    `json:"authorId" yaml:"authorId"`
	AuthorName string    `json:"authorName" yaml:"authorName"`
	IsAdmin    bool      `json:"isAdmin" yaml:"isAdmin"`
	Message    string    `json:"message" yaml:"message"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
}

// Ticket represents a user-filed support case
type Ticket struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	Priority    TicketPriority  `json:"priority" yaml:"priority"`
	Status      TicketStatus    `json:"status" yaml:"status"`
	UserID      string          `json:"userId" yaml:"userId"`
	UserName    string          `json:"userName" yaml:"userName"`
	UserEmail   string          `json:"userEmail" yaml:"userEmail"`
	AssignedTo  *Assignment     `json:"assignedTo,omitempty" yaml:"assignedTo"`
	Messages    []TicketMessage `json:"messages" yaml:"messages"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" yaml:"updatedAt"`
	ResolvedAt  *time.Time      `json:"resolvedAt,omitempty" yaml:"resolvedAt"`
	ClosedAt    *time.Time      `json:"closedAt,omitempty" yaml:"closedAt"`
}

// ReviewPhoto is a materialized review attachment
type ReviewPhoto struct {
	ID       string `json:"id"`
	URI      string `json:"uri"`
	Filename string `json:"filename"`
}

// Review is a rating left on an offer or a shop
type Review struct {
	ID          string        `json:"id"`
	SubjectID   string        `json:"subjectId"`
	SubjectType SubjectType   `json:"subjectType"`
	UserID      string        `json:"userId"`
	UserName    string        `json:"userName"`
	Rating      int           `json:"rating"`
	Title       string        `json:"title"`
	Comment     string        `json:"comment"`
	Photos      []ReviewPhoto `json:"photos"`
	Helpful     int           `json:"helpful"`
	Verified    bool          `json:"verified"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ReviewStats aggregates the reviews of one subject
type ReviewStats struct {
	TotalReviews       int         `json:"totalReviews"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
}

// Address is the postal address on a user profile
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Preferences holds user settings
type Preferences struct {
	Notifications      bool     `json:"notifications"`
	Newsletter         bool     `json:"newsletter"`
	Currency           string   `json:"currency,omitempty"`
	Language           string   `json:"language,omitempty"`
	FavoriteCategories []string `json:"favoriteCategories,omitempty"`
}

// UserProfile is the single profile of the current session
type UserProfile struct {
	ID          string      `json:"id,omitempty"`
	Email       string      `json:"email,omitempty"`
	Name        string      `json:"name,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`
	Address     Address     `json:"address"`
	Preferences Preferences `json:"preferences"`
	JoinedAt    time.Time   `json:"joinedAt,omitempty"`
}

// IsLoggedIn reports whether both id and email are present
func (p UserProfile) IsLoggedIn() bool {
	return p.ID != "" && p.Email != ""
}

// PriceRange is an inclusive [Min, Max] price window
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the range, bounds included
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterOptions are transient offer query criteria
type FilterOptions struct {
	Category   string      `json:"category,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Rating     float64     `json:"rating,omitempty"`
	Location   string      `json:"location,omitempty"`
	SortBy     string      `json:"sortBy,omitempty"`
}

// ShopFilters are transient shop query criteria
type ShopFilters struct {
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	Category     string       `json:"category,omitempty"`
	BusinessType BusinessType `json:"businessType,omitempty"`
	Verified     *bool        `json:"verified,omitempty"`
	Rating       float64      `json:"rating,omitempty"`
	SortBy       string       `json:"sortBy,omitempty"`
}

// TicketFilters narrow the admin ticket list
type TicketFilters struct {
	Status   TicketStatus   `json:"status,omitempty"`
	Priority TicketPriority `json:"priority,omitempty"`
	Category string         `json:"category,omitempty"`
	Query    string         `json:"query,omitempty"`
}

// SearchResult is the outcome of a combined offers/shops search
type SearchResult struct {
	Offers       []Offer      `json:"offers"`
	Shops        []Shop       `json:"shops"`
	SearchType   SearchIntent `json:"searchType"`
	IsShopSearch bool         `json:"isShopSearch"`
}
