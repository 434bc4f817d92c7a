package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/content"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

func (h *PublicHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.Public.VisibleProducts(r.Context())
	if err != nil {
		slog.Error("Failed to load products", "error", err)
	}
	settings := h.settings(r.Context())

	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = content.AllProducts
	}

	h.page(w, r, http.StatusOK, "products.html", settings, map[string]interface{}{
		"Title":      "Our Products | " + content.SiteName,
		"Products":   content.FilterProducts(products, search, category),
		"Categories": content.FilterCategories(settings),
		"Search":     search,
		"Category":   category,
	})
}

func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	home, err := h.Public.HomepageContent(r.Context())
	if err != nil {
		slog.Error("Failed to load homepage content", "error", err)
	}
	text, image := content.About(home)
	h.page(w, r, http.StatusOK, "about.html", nil, map[string]interface{}{
		"Title":         "About Us | " + content.SiteName,
		"AboutText":     text,
		"AboutImageURL": image,
	})
}

func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "contact.html", nil, map[string]interface{}{
		"Title":     "Contact Us | " + content.SiteName,
		"CsrfField": csrf.TemplateField(r),
	})
}

func (h *PublicHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, publicSession)

	res := h.Actions.SubmitContact(r.Context(), models.ContactSubmission{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	})
	flashResult(session, res, "Thanks for your message! We'll be in touch soon.")

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Public.PublishedPosts(r.Context())
	if err != nil {
		slog.Error("Failed to load blog posts", "error", err)
	}
	h.page(w, r, http.StatusOK, "blog.html", nil, map[string]interface{}{
		"Title":       "Blog | " + content.SiteName,
		"Description": "News, recipes and seafood tips from " + content.SiteName + ".",
		"Posts":       posts,
	})
}

func (h *PublicHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Public.PostBySlug(r.Context(), r.PathValue("slug"))
	if errors.Is(err, store.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("Failed to load blog post", "error", err, "slug", r.PathValue("slug"))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	jsonLD, err := content.ArticleJSONLD(post, h.SiteURL)
	if err != nil {
		slog.Error("Failed to build article metadata", "error", err, "slug", post.Slug)
	}

	h.page(w, r, http.StatusOK, "blog_post.html", nil, map[string]interface{}{
		"Title":       post.Title + " | " + content.SiteName,
		"Description": content.MetaDescription(post),
		"OGImage":     content.OGImage(post),
		"Post":        post,
		"Body":        content.SanitizeHTML(post.Content),
		"JSONLD":      jsonLD,
	})
}

func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusNotFound, "not_found.html", nil, map[string]interface{}{
		"Title": "Page not found | " + content.SiteName,
	})
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// Healthz reports whether the database answers.
func Healthz(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}
}
