package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/actions"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/backend"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/config"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/handlers"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/web"
)

func main() {
	// Debug until the configured level is known.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, handlerOpts)))

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	handlerOpts.Level = cfg.LogLevel
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, handlerOpts)))

	// 2. Init DB and bucket
	client, err := backend.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	sessionStore.Options.MaxAge = 7 * 24 * 60 * 60
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	var templateFS fs.FS = web.Templates()
	if cfg.TemplatesDir != "" {
		templateFS = os.DirFS(cfg.TemplatesDir)
	}
	templates := handlers.NewTemplateCache()
	if err := templates.Load(templateFS); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	acts := actions.New(client.Store, client.Bucket)
	adminHandler := &handlers.AdminHandler{
		Store:        client.Store,
		Actions:      acts,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	publicHandler := &handlers.PublicHandler{
		Public:       client.Public(),
		Actions:      acts,
		SessionStore: sessionStore,
		Templates:    templates,
		SiteURL:      cfg.SiteURL,
	}

	// The CSRF middleware sets its cookie on every response it wraps, so
	// static files and cacheable pages are served from a mux outside it.
	site := http.NewServeMux()
	mux := http.NewServeMux()

	// Static Files
	var static http.Handler = http.FileServerFS(web.Static())
	if cfg.StaticDir != "" {
		static = http.FileServer(http.Dir(cfg.StaticDir))
	}
	site.Handle("GET /static/", http.StripPrefix("/static", static))
	if local, ok := client.Bucket.(*storage.LocalBucket); ok {
		site.Handle("GET /uploads/", http.StripPrefix("/uploads", local.Handler()))
	}
	site.HandleFunc("GET /healthz", handlers.Healthz(client.Store.DB))

	// Rate Limiters: one contact message per minute, one login attempt every few seconds
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)
	loginLimiter := handlers.NewRateLimiter(3 * time.Second)

	// Public Routes
	const short, long = 5 * time.Minute, 10 * time.Minute
	site.HandleFunc("GET /{$}", handlers.CacheFor(short, publicHandler.Index))
	site.HandleFunc("GET /products", handlers.CacheFor(short, publicHandler.Products))
	site.HandleFunc("GET /about", handlers.CacheFor(long, publicHandler.About))
	site.HandleFunc("GET /blog", handlers.CacheFor(long, publicHandler.Blog))
	site.HandleFunc("GET /blog/{slug}", handlers.CacheFor(long, publicHandler.BlogPost))
	mux.HandleFunc("GET /contact", publicHandler.Contact)
	mux.HandleFunc("POST /contact", rateLimiter.Middleware(publicHandler.SubmitContact))
	mux.HandleFunc("/", publicHandler.NotFound)

	// Admin Routes
	open := func(h http.HandlerFunc) http.Handler {
		return handlers.NoIndexMiddleware(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return handlers.NoIndexMiddleware(adminHandler.AuthMiddleware(h))
	}

	mux.Handle("GET /admin/login", open(adminHandler.LoginGet))
	mux.Handle("POST /admin/login", open(loginLimiter.Middleware(adminHandler.LoginPost)))
	mux.Handle("POST /admin/logout", open(adminHandler.Logout))

	mux.Handle("GET /admin", protected(adminHandler.Dashboard))

	mux.Handle("GET /admin/products", protected(adminHandler.ListProducts))
	mux.Handle("POST /admin/products", protected(adminHandler.CreateProduct))
	mux.Handle("POST /admin/products/order", protected(adminHandler.ReorderProducts))
	mux.Handle("POST /admin/products/bulk", protected(adminHandler.BulkUpdateProducts))
	mux.Handle("GET /admin/products/{id}/edit", protected(adminHandler.EditProductForm))
	mux.Handle("POST /admin/products/{id}", protected(adminHandler.UpdateProduct))
	mux.Handle("POST /admin/products/{id}/image", protected(adminHandler.ReplaceProductImage))
	mux.Handle("POST /admin/products/{id}/toggle", protected(adminHandler.ToggleProduct))
	mux.Handle("POST /admin/products/{id}/delete", protected(adminHandler.DeleteProduct))

	mux.Handle("GET /admin/homepage", protected(adminHandler.HomepageEditor))
	mux.Handle("POST /admin/homepage/field", protected(adminHandler.UpdateHomepageField))
	mux.Handle("POST /admin/homepage/image", protected(adminHandler.UploadHomepageImage))

	mux.Handle("GET /admin/blog", protected(adminHandler.ListBlogPosts))
	mux.Handle("GET /admin/blog/new", protected(adminHandler.NewBlogPostForm))
	mux.Handle("POST /admin/blog", protected(adminHandler.CreateBlogPost))
	mux.Handle("POST /admin/blog/upload", protected(adminHandler.UploadBlogImage))
	mux.Handle("GET /admin/blog/{id}", protected(adminHandler.EditBlogPostForm))
	mux.Handle("POST /admin/blog/{id}", protected(adminHandler.UpdateBlogPost))
	mux.Handle("POST /admin/blog/{id}/delete", protected(adminHandler.DeleteBlogPost))

	mux.Handle("GET /admin/reviews", protected(adminHandler.ListReviews))
	mux.Handle("POST /admin/reviews/{id}/delete", protected(adminHandler.DeleteReview))
	mux.Handle("GET /admin/messages", protected(adminHandler.ListMessages))
	mux.Handle("POST /admin/messages/{id}/delete", protected(adminHandler.DeleteMessage))

	mux.Handle("GET /admin/settings", protected(adminHandler.SettingsEditor))
	mux.Handle("POST /admin/settings/image", protected(adminHandler.UploadSettingsImage))
	mux.Handle("POST /admin/settings/categories", protected(adminHandler.UpdateCategories))
	mux.Handle("POST /admin/settings/social", protected(adminHandler.UpdateSocialLinks))
	mux.Handle("POST /admin/settings/contact", protected(adminHandler.UpdateContactInfo))
	mux.Handle("POST /admin/settings/hours", protected(adminHandler.UpdateOpeningHours))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		// Trust local development origins
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	site.Handle("/", CSRF(mux))

	// Chain: Logger -> Security Headers -> Site (CSRF -> Mux for forms and admin)
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(site),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "db", cfg.DBDriver, "storage", cfg.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
