// Package content holds the presentation rules shared by the public pages
// and the admin forms: default copy, product filtering, slugs and the
// homepage gateway cards.
package content

import (
	"regexp"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

const (
	AllProducts    = "All Products"
	OutOfStock     = "Out of Stock"
	DefaultAuthor  = "Wilson's Seafoods Team"
	DefaultPhone   = "(03) 6272 6600"
	SiteName       = "Wilson's Seafoods"
	DefaultOGImage = "/static/images/logo.png"
)

var DefaultCategories = []string{"Fresh Fish", "Shellfish", "Frozen"}

var DefaultOpeningHours = []models.OpeningHour{
	{Day: "Monday - Friday", Time: "8:00am - 5:30pm"},
	{Day: "Saturday", Time: "8:00am - 1:00pm"},
	{Day: "Sunday", Time: "Closed"},
}

var DefaultHomepage = models.HomepageContent{
	HeroTitle:        "Fresh Tasmanian Seafood",
	HeroSubtitle:     "Locally sourced, sustainably caught, and delivered fresh daily to Glenorchy.",
	AnnouncementText: "",
	AboutText:        "Wilson's Seafoods is a family-owned business bringing the best of Tasmania's waters to your table. We work directly with local fishers to offer premium fish, shellfish and more.",
	AboutImageURL:    "https://images.unsplash.com/photo-1534604973900-c43ab4c2e0ab?q=80&w=1200&auto=format&fit=crop",
}

// HomepageOrDefault fills empty hero and about fields from DefaultHomepage.
// The announcement is left empty when unset.
func HomepageOrDefault(c *models.HomepageContent) models.HomepageContent {
	if c == nil {
		return DefaultHomepage
	}
	out := *c
	out.HeroTitle = orDefault(out.HeroTitle, DefaultHomepage.HeroTitle)
	out.HeroSubtitle = orDefault(out.HeroSubtitle, DefaultHomepage.HeroSubtitle)
	out.AboutText = orDefault(out.AboutText, DefaultHomepage.AboutText)
	out.AboutImageURL = orDefault(out.AboutImageURL, DefaultHomepage.AboutImageURL)
	return out
}

// About returns the about text and image, falling back per field.
func About(c *models.HomepageContent) (text, imageURL string) {
	text, imageURL = DefaultHomepage.AboutText, DefaultHomepage.AboutImageURL
	if c == nil {
		return text, imageURL
	}
	if c.AboutText != "" {
		text = c.AboutText
	}
	if c.AboutImageURL != "" {
		imageURL = c.AboutImageURL
	}
	return text, imageURL
}

// Categories returns the configured categories or the defaults.
func Categories(s *models.SiteSettings) []string {
	if s == nil || len(s.Categories) == 0 {
		return DefaultCategories
	}
	return s.Categories
}

// FilterCategories returns the categories for the public filter bar with
// "All Products" first.
func FilterCategories(s *models.SiteSettings) []string {
	cats := Categories(s)
	for _, c := range cats {
		if c == AllProducts {
			return cats
		}
	}
	return append([]string{AllProducts}, cats...)
}

func OpeningHours(s *models.SiteSettings) []models.OpeningHour {
	if s == nil || len(s.OpeningHours) == 0 {
		return DefaultOpeningHours
	}
	return s.OpeningHours
}

func PhoneNumber(s *models.SiteSettings) string {
	if s == nil || s.PhoneNumber == "" {
		return DefaultPhone
	}
	return s.PhoneNumber
}

// FilterProducts applies the public product page filters: a case-insensitive
// substring match on name, then category equality. The "All Products"
// selection (or an empty one) excludes the "Out of Stock" category.
func FilterProducts(products []models.Product, search, category string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	if category == "" {
		category = AllProducts
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category == AllProducts {
			if p.Category == OutOfStock {
				continue
			}
		} else if p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, replaces runs of non-alphanumerics with a hyphen and
// trims hyphens from both ends.
func Slugify(s string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
