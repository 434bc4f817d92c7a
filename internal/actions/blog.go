package actions

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/content"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

// BlogForm is what the post editor submits.
type BlogForm struct {
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	MetaDescription  string
	Author           string
	Category         string
	FeaturedImageURL string
	Published        bool
}

func (f BlogForm) post() models.BlogPost {
	slug := content.Slugify(f.Slug)
	if slug == "" {
		slug = content.Slugify(f.Title)
	}
	author := strings.TrimSpace(f.Author)
	if author == "" {
		author = content.DefaultAuthor
	}
	return models.BlogPost{
		Title:            strings.TrimSpace(f.Title),
		Slug:             slug,
		Content:          f.Content,
		Excerpt:          strings.TrimSpace(f.Excerpt),
		MetaDescription:  strings.TrimSpace(f.MetaDescription),
		Author:           author,
		Category:         strings.TrimSpace(f.Category),
		FeaturedImageURL: strings.TrimSpace(f.FeaturedImageURL),
		Published:        f.Published,
	}
}

func (a *Actions) blogObjectName(ext string) string {
	return storage.NewBlogObjectName(ext, a.now())
}

// featuredImage uploads img when one was sent. An uploaded file wins over a
// typed URL.
func (a *Actions) featuredImage(ctx context.Context, p *models.BlogPost, img *storage.Image) (string, *Result) {
	if img == nil || img.Size == 0 {
		return "", nil
	}
	url, key, err := a.uploadImage(ctx, img, a.blogObjectName)
	if err != nil {
		slog.Error("Failed to upload blog image", "error", err)
		r := uploadFailure(err)
		return "", &r
	}
	p.FeaturedImageURL = url
	return key, nil
}

func blogWriteFailure(err error, msg string) Result {
	if errors.Is(err, store.ErrDuplicateSlug) {
		return fail("A post with this slug already exists")
	}
	return notFoundOr(err, msg)
}

func (a *Actions) CreateBlogPost(ctx context.Context, f BlogForm, img *storage.Image) Result {
	p := f.post()
	if err := a.validate.Struct(p); err != nil {
		return fail(validationMessage(err))
	}

	key, r := a.featuredImage(ctx, &p, img)
	if r != nil {
		return *r
	}

	if err := a.Store.CreateBlogPost(ctx, &p); err != nil {
		slog.Error("Failed to create blog post", "error", err, "slug", p.Slug)
		a.removeObject(ctx, key)
		return blogWriteFailure(err, "Failed to create blog post")
	}

	slog.Info("Blog post created", "id", p.ID, "slug", p.Slug, "published", p.Published)
	return Result{Success: true, ID: p.ID}
}

func (a *Actions) UpdateBlogPost(ctx context.Context, id int, f BlogForm, img *storage.Image) Result {
	p := f.post()
	p.ID = id
	if err := a.validate.Struct(p); err != nil {
		return fail(validationMessage(err))
	}

	existing, err := a.Store.GetBlogPostByID(ctx, id)
	if err != nil {
		slog.Error("Failed to load blog post for update", "error", err, "id", id)
		return notFoundOr(err, "Failed to update blog post")
	}

	key, r := a.featuredImage(ctx, &p, img)
	if r != nil {
		return *r
	}

	if err := a.Store.UpdateBlogPost(ctx, &p); err != nil {
		slog.Error("Failed to update blog post", "error", err, "id", id)
		a.removeObject(ctx, key)
		return blogWriteFailure(err, "Failed to update blog post")
	}
	// The old featured image may also be embedded in the body.
	if !strings.Contains(p.Content, existing.FeaturedImageURL) {
		a.removeReplaced(ctx, existing.FeaturedImageURL, p.FeaturedImageURL)
	}
	return Result{Success: true, ID: id}
}

// UploadBlogImage stores an image for use inside post content.
func (a *Actions) UploadBlogImage(ctx context.Context, img *storage.Image) Result {
	url, _, err := a.uploadImage(ctx, img, a.blogObjectName)
	if err != nil {
		slog.Error("Failed to upload blog image", "error", err)
		return uploadFailure(err)
	}
	return Result{Success: true, URL: url}
}

func (a *Actions) DeleteBlogPost(ctx context.Context, id int) Result {
	if err := a.Store.DeleteBlogPost(ctx, id); err != nil {
		slog.Error("Failed to delete blog post", "error", err, "id", id)
		return notFoundOr(err, "Failed to delete blog post")
	}
	return ok()
}
