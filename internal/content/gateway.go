package content

import (
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

// GatewayCard is one of the two homepage panels linking to the public store
// or the wholesale portal.
type GatewayCard struct {
	ImageURL    string
	Title       string
	Description string
	ButtonText  string
	ButtonURL   string
}

// External reports whether the button leaves the site.
func (g GatewayCard) External() bool {
	return strings.HasPrefix(g.ButtonURL, "http")
}

var (
	DefaultStoreGateway = GatewayCard{
		ImageURL:    "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?q=80&w=1200&auto=format&fit=crop",
		Title:       "Shop Our Public Store",
		Description: "Get the freshest Tasmanian seafood and pickup in store today. Browse our public store.",
		ButtonText:  "Available in Store",
		ButtonURL:   "/products",
	}
	DefaultWholesaleGateway = GatewayCard{
		ImageURL:    "https://images.unsplash.com/photo-1577219491135-ce391730fb2c?q=80&w=1200&auto=format&fit=crop",
		Title:       "Wholesale & Chef's Portal",
		Description: "For our restaurant, chef, and wholesale partners. Log in to your Fresho account or apply for a new trade account here.",
		ButtonText:  "Enter Portal",
		ButtonURL:   "https://www.fresho.com/",
	}
)

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// GatewayCards returns both cards with every empty field replaced by its
// fallback copy or image.
func GatewayCards(c *models.HomepageContent) [2]GatewayCard {
	if c == nil {
		return [2]GatewayCard{DefaultStoreGateway, DefaultWholesaleGateway}
	}
	return [2]GatewayCard{
		{
			ImageURL:    orDefault(c.Gateway1ImageURL, DefaultStoreGateway.ImageURL),
			Title:       orDefault(c.Gateway1Title, DefaultStoreGateway.Title),
			Description: orDefault(c.Gateway1Description, DefaultStoreGateway.Description),
			ButtonText:  orDefault(c.Gateway1ButtonText, DefaultStoreGateway.ButtonText),
			ButtonURL:   orDefault(c.Gateway1ButtonURL, DefaultStoreGateway.ButtonURL),
		},
		{
			ImageURL:    orDefault(c.Gateway2ImageURL, DefaultWholesaleGateway.ImageURL),
			Title:       orDefault(c.Gateway2Title, DefaultWholesaleGateway.Title),
			Description: orDefault(c.Gateway2Description, DefaultWholesaleGateway.Description),
			ButtonText:  orDefault(c.Gateway2ButtonText, DefaultWholesaleGateway.ButtonText),
			ButtonURL:   orDefault(c.Gateway2ButtonURL, DefaultWholesaleGateway.ButtonURL),
		},
	}
}
