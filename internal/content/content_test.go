package content

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	products := []models.Product{
		{Name: "Atlantic Salmon", Category: "Fresh Fish"},
		{Name: "Blue Mussels", Category: "Shellfish"},
		{Name: "Smoked Salmon", Category: "Out of Stock"},
		{Name: "Frozen Prawns", Category: "Frozen"},
	}

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{"all hides out of stock", "", AllProducts, []string{"Atlantic Salmon", "Blue Mussels", "Frozen Prawns"}},
		{"empty category means all", "", "", []string{"Atlantic Salmon", "Blue Mussels", "Frozen Prawns"}},
		{"search is case insensitive", "SALMON", AllProducts, []string{"Atlantic Salmon"}},
		{"category match", "", "Shellfish", []string{"Blue Mussels"}},
		{"out of stock category is selectable", "", OutOfStock, []string{"Smoked Salmon"}},
		{"search and category", "salmon", OutOfStock, []string{"Smoked Salmon"}},
		{"no match", "lobster", AllProducts, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterProducts(products, tt.search, tt.category)))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Oyster Season 2024!":          "oyster-season-2024",
		"  --Hello,   World--  ":       "hello-world",
		"Wilson's Seafoods":            "wilson-s-seafoods",
		"already-a-slug":               "already-a-slug",
		"???":                          "",
		"Crayfish & Scallops: a Guide": "crayfish-scallops-a-guide",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestGatewayCardsFallbackPerField(t *testing.T) {
	cards := GatewayCards(nil)
	assert.Equal(t, DefaultStoreGateway, cards[0])
	assert.Equal(t, DefaultWholesaleGateway, cards[1])

	cards = GatewayCards(&models.HomepageContent{
		Gateway1Title:     "Visit the shop",
		Gateway2ButtonURL: "https://example.com/trade",
		Gateway2ImageURL:  "   ",
	})
	assert.Equal(t, "Visit the shop", cards[0].Title)
	assert.Equal(t, DefaultStoreGateway.Description, cards[0].Description)
	assert.Equal(t, DefaultStoreGateway.ButtonURL, cards[0].ButtonURL)
	assert.Equal(t, "https://example.com/trade", cards[1].ButtonURL)
	assert.Equal(t, DefaultWholesaleGateway.ImageURL, cards[1].ImageURL)

	assert.False(t, cards[0].External())
	assert.True(t, cards[1].External())
}

func TestHomepageOrDefault(t *testing.T) {
	assert.Equal(t, DefaultHomepage, HomepageOrDefault(nil))

	got := HomepageOrDefault(&models.HomepageContent{HeroTitle: "Catch of the day", AnnouncementText: "Closed Monday"})
	assert.Equal(t, "Catch of the day", got.HeroTitle)
	assert.Equal(t, DefaultHomepage.HeroSubtitle, got.HeroSubtitle)
	assert.Equal(t, DefaultHomepage.AboutText, got.AboutText)
	assert.Equal(t, "Closed Monday", got.AnnouncementText)

	got = HomepageOrDefault(&models.HomepageContent{})
	assert.Empty(t, got.AnnouncementText)
}

func TestSettingsFallbacks(t *testing.T) {
	assert.Equal(t, DefaultCategories, Categories(nil))
	assert.Equal(t, DefaultOpeningHours, OpeningHours(&models.SiteSettings{}))
	assert.Equal(t, DefaultPhone, PhoneNumber(nil))

	s := &models.SiteSettings{Categories: []string{"Oysters"}, PhoneNumber: "123"}
	assert.Equal(t, []string{"Oysters"}, Categories(s))
	assert.Equal(t, "123", PhoneNumber(s))

	assert.Equal(t, []string{AllProducts, "Oysters"}, FilterCategories(s))
	withAll := &models.SiteSettings{Categories: []string{AllProducts, "Oysters"}}
	assert.Equal(t, []string{AllProducts, "Oysters"}, FilterCategories(withAll))
}

func TestAbout(t *testing.T) {
	text, img := About(nil)
	assert.Equal(t, DefaultHomepage.AboutText, text)
	assert.Equal(t, DefaultHomepage.AboutImageURL, img)

	text, img = About(&models.HomepageContent{AboutText: "Since 1980"})
	assert.Equal(t, "Since 1980", text)
	assert.Equal(t, DefaultHomepage.AboutImageURL, img)
}

func TestMetaDescription(t *testing.T) {
	p := &models.BlogPost{Title: "Oysters", Excerpt: "Short", MetaDescription: "Meta"}
	assert.Equal(t, "Meta", MetaDescription(p))
	p.MetaDescription = ""
	assert.Equal(t, "Short", MetaDescription(p))
	p.Excerpt = ""
	assert.Equal(t, "Read Oysters on Wilson's Seafoods blog", MetaDescription(p))
}

func TestOGImage(t *testing.T) {
	assert.Equal(t, DefaultOGImage, OGImage(&models.BlogPost{}))
	assert.Equal(t, "https://cdn/x.jpg", OGImage(&models.BlogPost{FeaturedImageURL: "https://cdn/x.jpg"}))
}

func TestSanitizeHTML(t *testing.T) {
	got := string(SanitizeHTML(`<p class="lead">Hi<script>alert(1)</script></p><img src="x" onerror="alert(1)"><a href="https://example.com" target="_blank">link</a>`))
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "onerror")
	assert.Contains(t, got, `<p class="lead">Hi</p>`)
	assert.Contains(t, got, `target="_blank"`)
}

func TestArticleJSONLD(t *testing.T) {
	published := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	p := &models.BlogPost{Title: "</script><b>", Excerpt: "Fresh", PublishedAt: &published}

	js, err := ArticleJSONLD(p, "https://wilsons.example")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(js), "</script>"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &doc))
	assert.Equal(t, "Article", doc["@type"])
	assert.Equal(t, "</script><b>", doc["headline"])
	assert.Equal(t, doc["datePublished"], doc["dateModified"])

	author := doc["author"].(map[string]any)
	assert.Equal(t, SiteName, author["name"])
	logo := doc["publisher"].(map[string]any)["logo"].(map[string]any)
	assert.Equal(t, "https://wilsons.example"+DefaultOGImage, logo["url"])
}
