package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/actions"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/content"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

const (
	publicSession = "public-session"
	// homeLimit caps both the featured products and the reviews on the home page.
	homeLimit = 6
)

type PublicHandler struct {
	Public       *store.PublicView
	Actions      *actions.Actions
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	SiteURL      string
}

// page fills in the data every public page shares and renders name.
func (h *PublicHandler) page(w http.ResponseWriter, r *http.Request, status int, name string, settings *models.SiteSettings, data map[string]interface{}) {
	publicSession, _ := h.SessionStore.Get(r, publicSession)
	adminSession, _ := h.SessionStore.Get(r, adminSession)

	isAdmin := false
	if auth, ok := adminSession.Values["authenticated"].(bool); ok && auth {
		isAdmin = true
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	if settings == nil {
		settings = h.settings(r.Context())
	}
	data["Settings"] = settings
	data["Phone"] = content.PhoneNumber(settings)
	data["Hours"] = content.OpeningHours(settings)
	flashes := GetFlash(publicSession)
	data["Flashes"] = flashes
	data["IsAdmin"] = isAdmin
	data["SiteURL"] = h.SiteURL
	if _, ok := data["Title"]; !ok {
		data["Title"] = content.SiteName
	}
	// Flashes and the admin link are per visitor, so that page must not be
	// cached. Everything else leaves the session cookie alone.
	if len(flashes) > 0 || isAdmin {
		w.Header().Set("Cache-Control", "private, no-store")
	}
	if len(flashes) > 0 {
		if err := publicSession.Save(r, w); err != nil {
			slog.Error("Failed to save session", "error", err)
		}
	}
	h.Templates.Render(w, status, name, data)
}

// settings returns the site settings, or an empty row when they can't be
// read so pages fall back to defaults.
func (h *PublicHandler) settings(ctx context.Context) *models.SiteSettings {
	s, err := h.Public.SiteSettings(ctx)
	if err != nil {
		slog.Error("Failed to load site settings", "error", err)
		return &models.SiteSettings{}
	}
	return s
}

func (h *PublicHandler) Index(w http.ResponseWriter, r *http.Request) {
	var (
		featured []models.Product
		reviews  []models.Review
		settings *models.SiteSettings
		home     *models.HomepageContent
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		featured, err = h.Public.FeaturedProducts(ctx, homeLimit)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = h.Public.RecentReviews(ctx, homeLimit)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = h.Public.SiteSettings(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		home, err = h.Public.HomepageContent(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to load home page data", "error", err)
	}
	if settings == nil {
		settings = &models.SiteSettings{}
	}

	h.page(w, r, http.StatusOK, "home.html", settings, map[string]interface{}{
		"Featured": featured,
		"Reviews":  reviews,
		"Content":  content.HomepageOrDefault(home),
		"Gateways": content.GatewayCards(home),
	})
}
