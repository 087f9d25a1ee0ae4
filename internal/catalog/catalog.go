package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jafarshop/dealmarket/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Catalog is the read-only universe of offers, shops and seed tickets.
// Accessors hand out copies; nothing in the process mutates the catalog.
type Catalog struct {
	offers  []domain.Offer
	shops   []domain.Shop
	tickets []domain.Ticket
}

type seedFile struct {
	Offers  []domain.Offer  `yaml:"offers"`
	Shops   []domain.Shop   `yaml:"shops"`
	Tickets []domain.Ticket `yaml:"tickets"`
}

// Load reads the seed file at path, or the embedded default seed when
// path is empty
func Load(path string) (*Catalog, error) {
	data := defaultSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes a YAML seed document
func Parse(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	if err := validate(seed); err != nil {
		return nil, err
	}

	return New(seed.Offers, seed.Shops, seed.Tickets), nil
}

// New builds a catalog from in-memory collections
func New(offers []domain.Offer, shops []domain.Shop, tickets []domain.Ticket) *Catalog {
	return &Catalog{
		offers:  slices.Clone(offers),
		shops:   slices.Clone(shops),
		tickets: slices.Clone(tickets),
	}
}

func validate(seed seedFile) error {
	offerIDs := make(map[string]bool, len(seed.Offers))
	for _, offer := range seed.Offers {
		if offer.ID == "" {
			return fmt.Errorf("offer %q has no id", offer.Title)
		}
		if offerIDs[offer.ID] {
			return fmt.Errorf("duplicate offer id %s", offer.ID)
		}
		if offer.Price < 0 {
			return fmt.Errorf("offer %s has a negative price", offer.ID)
		}
		offerIDs[offer.ID] = true
	}

	shopIDs := make(map[string]bool, len(seed.Shops))
	for _, shop := range seed.Shops {
		if shop.ID == "" {
			return fmt.Errorf("shop %q has no id", shop.Name)
		}
		if shopIDs[shop.ID] {
			return fmt.Errorf("duplicate shop id %s", shop.ID)
		}
		if shop.BusinessType != "" && !shop.BusinessType.IsValid() {
			return fmt.Errorf("shop %s has unknown business type %q", shop.ID, shop.BusinessType)
		}
		shopIDs[shop.ID] = true
	}

	for _, ticket := range seed.Tickets {
		if !ticket.Status.IsValid() {
			return fmt.Errorf("ticket %s has unknown status %q", ticket.ID, ticket.Status)
		}
		if !ticket.Priority.IsValid() {
			return fmt.Errorf("ticket %s has unknown priority %q", ticket.ID, ticket.Priority)
		}
	}
	return nil
}

// Offers returns every offer in catalog order
func (c *Catalog) Offers() []domain.Offer {
	return slices.Clone(c.offers)
}

// Shops returns every shop in catalog order
func (c *Catalog) Shops() []domain.Shop {
	return slices.Clone(c.shops)
}

// Tickets returns the seed tickets
func (c *Catalog) Tickets() []domain.Ticket {
	return slices.Clone(c.tickets)
}

func (c *Catalog) Offer(id string) (domain.Offer, bool) {
	for _, offer := range c.offers {
		if offer.ID == id {
			return offer, true
		}
	}
	return domain.Offer{}, false
}

func (c *Catalog) Shop(id string) (domain.Shop, bool) {
	for _, shop := range c.shops {
		if shop.ID == id {
			return shop, true
		}
	}
	return domain.Shop{}, false
}

// ShopOffers returns the offers sold under the shop's name
func (c *Catalog) ShopOffers(shopName string) []domain.Offer {
	out := make([]domain.Offer, 0)
	for _, offer := range c.offers {
		if offer.Vendor.Name == shopName {
			out = append(out, offer)
		}
	}
	return out
}
