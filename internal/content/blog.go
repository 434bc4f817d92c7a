package content

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

var ugcPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("target").OnElements("a")
	p.RequireNoFollowOnLinks(false)
	return p
}()

// SanitizeHTML strips editor output down to safe markup for rendering.
func SanitizeHTML(raw string) template.HTML {
	return template.HTML(ugcPolicy.Sanitize(raw))
}

// MetaDescription falls back from meta description to excerpt to a generic
// line mentioning the title.
func MetaDescription(p *models.BlogPost) string {
	if p.MetaDescription != "" {
		return p.MetaDescription
	}
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return "Read " + p.Title + " on " + SiteName + " blog"
}

func OGImage(p *models.BlogPost) string {
	if p.FeaturedImageURL != "" {
		return p.FeaturedImageURL
	}
	return DefaultOGImage
}

type jsonLDOrg struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo *jsonLDLogo `json:"logo,omitempty"`
}

type jsonLDLogo struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type articleJSONLD struct {
	Context       string     `json:"@context"`
	Type          string     `json:"@type"`
	Headline      string     `json:"headline"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	DatePublished *time.Time `json:"datePublished,omitempty"`
	DateModified  *time.Time `json:"dateModified,omitempty"`
	Author        jsonLDOrg  `json:"author"`
	Publisher     jsonLDOrg  `json:"publisher"`
}

// ArticleJSONLD renders schema.org Article data for a published post.
// siteURL is used to build an absolute logo URL.
func ArticleJSONLD(p *models.BlogPost, siteURL string) (template.JS, error) {
	modified := p.UpdatedAt
	if modified == nil {
		modified = p.PublishedAt
	}
	author := p.Author
	if author == "" {
		author = SiteName
	}
	doc := articleJSONLD{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      p.Title,
		Description:   p.Excerpt,
		Image:         p.FeaturedImageURL,
		DatePublished: p.PublishedAt,
		DateModified:  modified,
		Author:        jsonLDOrg{Type: "Organization", Name: author},
		Publisher: jsonLDOrg{
			Type: "Organization",
			Name: SiteName,
			Logo: &jsonLDLogo{Type: "ImageObject", URL: siteURL + DefaultOGImage},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	// json.Marshal escapes <, > and & so the payload is safe inside <script>.
	return template.JS(raw), nil
}
