package store

import (
	"context"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

// PublicView is the anonymous, read-only slice of the store used by public
// pages. It only exposes visible products and published posts.
type PublicView struct {
	s *Store
}

func (s *Store) Public() *PublicView {
	return &PublicView{s: s}
}

func (v *PublicView) VisibleProducts(ctx context.Context) ([]models.Product, error) {
	return v.s.GetVisibleProducts(ctx)
}

func (v *PublicView) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return v.s.GetFeaturedProducts(ctx, limit)
}

func (v *PublicView) PublishedPosts(ctx context.Context) ([]models.BlogPost, error) {
	return v.s.GetPublishedBlogPosts(ctx)
}

func (v *PublicView) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return v.s.GetPublishedBlogPostBySlug(ctx, slug)
}

func (v *PublicView) RecentReviews(ctx context.Context, limit int) ([]models.Review, error) {
	return v.s.GetRecentReviews(ctx, limit)
}

func (v *PublicView) HomepageContent(ctx context.Context) (*models.HomepageContent, error) {
	return v.s.GetHomepageContent(ctx)
}

func (v *PublicView) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	return v.s.GetSiteSettings(ctx)
}

// SubmitContact is the one write anonymous visitors may perform.
func (v *PublicView) SubmitContact(ctx context.Context, m *models.ContactSubmission) error {
	return v.s.CreateContactSubmission(ctx, m)
}
