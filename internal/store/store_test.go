package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	t.Cleanup(func() { st.Close() })
	return st
}

func addProduct(t *testing.T, st *Store, name string, mutate ...func(*models.Product)) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: "$10/kg", ImageURL: "/uploads/public/" + name + ".jpg", IsVisible: true}
	for _, m := range mutate {
		m(p)
	}
	require.NoError(t, st.CreateProduct(context.Background(), p))
	return p
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	_, err := NewStore("mysql", "whatever")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{Driver: DriverPostgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b IN ($2, $3)", pg.rebind("SELECT * FROM t WHERE a = ? AND b IN (?, ?)"))

	lite := &Store{Driver: DriverSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Migrate())

	var n int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM homepage_content`).Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM site_settings`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestCreateProductAppendsToSortOrder(t *testing.T) {
	st := newTestStore(t)

	first := addProduct(t, st, "flathead")
	second := addProduct(t, st, "oysters")
	third := addProduct(t, st, "salmon")

	assert.Equal(t, 0, first.SortOrder)
	assert.Equal(t, 1, second.SortOrder)
	assert.Equal(t, 2, third.SortOrder)

	all, err := st.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[2].ID)
	assert.False(t, all[0].CreatedAt.IsZero())
}

func TestToggleVisibilityTwiceRestores(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p := addProduct(t, st, "mussels")

	visible, err := st.ToggleProductVisibility(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, visible)

	visible, err = st.ToggleProductVisibility(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, visible)

	got, err := st.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVisible)
}

func TestToggleVisibilityMissingProduct(t *testing.T) {
	st := newTestStore(t)
	_, err := st.ToggleProductVisibility(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReorderProducts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	a := addProduct(t, st, "a")
	b := addProduct(t, st, "b")
	c := addProduct(t, st, "c")

	require.NoError(t, st.ReorderProducts(ctx, []int{c.ID, a.ID, b.ID}))

	all, err := st.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, want := range []int{c.ID, a.ID, b.ID} {
		assert.Equal(t, want, all[i].ID)
		assert.Equal(t, i, all[i].SortOrder)
	}
}

func TestReorderProductsRollsBackOnMissingID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	a := addProduct(t, st, "a")
	b := addProduct(t, st, "b")

	err := st.ReorderProducts(ctx, []int{b.ID, 999, a.ID})
	require.ErrorIs(t, err, ErrNotFound)

	all, err := st.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, 0, all[0].SortOrder)
	assert.Equal(t, 1, all[1].SortOrder)
}

func TestUpdateProductPatchesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p := addProduct(t, st, "crayfish", func(p *models.Product) {
		p.Category = "Shellfish"
		p.Description = "Southern rock lobster"
	})

	err := st.UpdateProduct(ctx, p.ID, models.ProductPatch{Price: strPtr("$120/kg"), IsFresh: boolPtr(true)})
	require.NoError(t, err)

	got, err := st.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "crayfish", got.Name)
	assert.Equal(t, "$120/kg", got.Price)
	assert.Equal(t, "Shellfish", got.Category)
	assert.Equal(t, "Southern rock lobster", got.Description)
	assert.True(t, got.IsFresh)
}

func TestUpdateProductsBulk(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	a := addProduct(t, st, "a")
	b := addProduct(t, st, "b")
	c := addProduct(t, st, "c")

	require.NoError(t, st.UpdateProducts(ctx, []int{a.ID, c.ID}, models.ProductPatch{IsVisible: boolPtr(false)}))

	visible, err := st.GetVisibleProducts(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, b.ID, visible[0].ID)

	err = st.UpdateProducts(ctx, []int{999}, models.ProductPatch{IsVisible: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFeaturedProducts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	featured := func(p *models.Product) { p.Featured = true }

	want := addProduct(t, st, "featured", featured)
	addProduct(t, st, "plain")
	addProduct(t, st, "hidden", featured, func(p *models.Product) { p.IsVisible = false })
	addProduct(t, st, "sold out", featured, func(p *models.Product) { p.Category = "Out of Stock" })

	got, err := st.GetFeaturedProducts(ctx, 6)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	keep := addProduct(t, st, "keep")
	drop := addProduct(t, st, "drop")

	require.NoError(t, st.DeleteProduct(ctx, drop.ID))

	_, err := st.GetProductByID(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.GetProductByID(ctx, keep.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, st.DeleteProduct(ctx, drop.ID), ErrNotFound)
}

func TestBlogPublishStamping(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	post := &models.BlogPost{Title: "Oyster season", Slug: "oyster-season", Author: "Team"}
	require.NoError(t, st.CreateBlogPost(ctx, post))

	draft, err := st.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
	assert.Nil(t, draft.UpdatedAt)

	post.Published = true
	require.NoError(t, st.UpdateBlogPost(ctx, post))
	first, err := st.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)
	require.NotNil(t, first.UpdatedAt)

	// CURRENT_TIMESTAMP has one second resolution in sqlite.
	time.Sleep(1100 * time.Millisecond)

	post.Content = "<p>Updated</p>"
	require.NoError(t, st.UpdateBlogPost(ctx, post))
	second, err := st.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, second.PublishedAt.After(*first.PublishedAt))
	assert.True(t, second.UpdatedAt.After(*first.UpdatedAt))

	post.Published = false
	require.NoError(t, st.UpdateBlogPost(ctx, post))
	unpublished, err := st.GetBlogPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, unpublished.PublishedAt)
	assert.True(t, unpublished.PublishedAt.Equal(*second.PublishedAt))

	_, err = st.GetPublishedBlogPostBySlug(ctx, "oyster-season")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBlogDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.CreateBlogPost(ctx, &models.BlogPost{Title: "One", Slug: "same"}))
	err := st.CreateBlogPost(ctx, &models.BlogPost{Title: "Two", Slug: "same"})
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	other := &models.BlogPost{Title: "Three", Slug: "other"}
	require.NoError(t, st.CreateBlogPost(ctx, other))
	other.Slug = "same"
	assert.ErrorIs(t, st.UpdateBlogPost(ctx, other), ErrDuplicateSlug)
}

func TestDeleteBlogPost(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	keep := &models.BlogPost{Title: "Keep", Slug: "keep"}
	drop := &models.BlogPost{Title: "Drop", Slug: "drop"}
	require.NoError(t, st.CreateBlogPost(ctx, keep))
	require.NoError(t, st.CreateBlogPost(ctx, drop))

	require.NoError(t, st.DeleteBlogPost(ctx, drop.ID))

	_, err := st.GetBlogPostByID(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := st.GetBlogPostByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Title)

	assert.ErrorIs(t, st.DeleteBlogPost(ctx, drop.ID), ErrNotFound)
}

func TestPublishedBlogPostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	older := &models.BlogPost{Title: "Older", Slug: "older", Published: true}
	require.NoError(t, st.CreateBlogPost(ctx, older))
	require.NoError(t, st.CreateBlogPost(ctx, &models.BlogPost{Title: "Draft", Slug: "draft"}))
	time.Sleep(1100 * time.Millisecond)
	newer := &models.BlogPost{Title: "Newer", Slug: "newer", Published: true}
	require.NoError(t, st.CreateBlogPost(ctx, newer))

	posts, err := st.GetPublishedBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	got, err := st.GetPublishedBlogPostBySlug(ctx, "newer")
	require.NoError(t, err)
	assert.Equal(t, "Newer", got.Title)
}

func TestReviewsAndMessages(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for i := 0; i < 8; i++ {
		require.NoError(t, st.CreateReview(ctx, &models.Review{CustomerName: "C", Rating: 5, ReviewText: "Great", IsApproved: true}))
	}
	recent, err := st.GetRecentReviews(ctx, 6)
	require.NoError(t, err)
	assert.Len(t, recent, 6)
	all, err := st.GetRecentReviews(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 8)

	require.NoError(t, st.DeleteReview(ctx, all[0].ID))
	assert.ErrorIs(t, st.DeleteReview(ctx, all[0].ID), ErrNotFound)

	left, err := st.GetRecentReviews(ctx, 0)
	require.NoError(t, err)
	require.Len(t, left, 7)
	for i, r := range left {
		assert.Equal(t, all[i+1].ID, r.ID)
	}

	m := &models.ContactSubmission{Name: "Jo", Email: "jo@example.com", Message: "Do you have scallops?"}
	other := &models.ContactSubmission{Name: "Sam", Email: "sam@example.com", Message: "Open on Sunday?"}
	require.NoError(t, st.Public().SubmitContact(ctx, m))
	require.NoError(t, st.Public().SubmitContact(ctx, other))
	assert.NotZero(t, m.ID)

	msgs, err := st.GetContactSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	require.NoError(t, st.DeleteContactSubmission(ctx, m.ID))
	assert.ErrorIs(t, st.DeleteContactSubmission(ctx, m.ID), ErrNotFound)
	msgs, err = st.GetContactSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, other.ID, msgs[0].ID)
	assert.Equal(t, "Open on Sunday?", msgs[0].Message)
}

func TestHomepageContent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	c, err := st.GetHomepageContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.HomepageContent{}, *c)

	require.NoError(t, st.UpdateHomepageField(ctx, "hero_title", "Fresh today"))
	require.NoError(t, st.UpdateHomepageField(ctx, "gateway2_image_url", "https://example.com/g2.jpg"))
	assert.Error(t, st.UpdateHomepageField(ctx, "id", "2"))
	assert.Error(t, st.UpdateHomepageField(ctx, "hero_title = 'x', about_text", "y"))

	c, err = st.GetHomepageContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fresh today", c.HeroTitle)
	assert.Equal(t, "https://example.com/g2.jpg", c.Gateway2ImageURL)

	c.AboutText = "About us"
	require.NoError(t, st.SaveHomepageContent(ctx, c))
	c, err = st.GetHomepageContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "About us", c.AboutText)
	assert.Equal(t, "Fresh today", c.HeroTitle)
}

func TestSiteSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	s, err := st.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.OpeningHours)

	hours := []models.OpeningHour{{Day: "Monday", Time: "8-5"}, {Day: "Sunday", Time: "Closed"}}
	require.NoError(t, st.UpdateCategories(ctx, []string{"Fresh Fish", "Frozen"}))
	require.NoError(t, st.UpdateSocialLinks(ctx, models.SocialLinks{Facebook: "https://facebook.com/wilsons"}))
	require.NoError(t, st.UpdateOpeningHours(ctx, hours))
	require.NoError(t, st.UpdateContactInfo(ctx, "12 345 678 901", "(03) 1234 5678"))
	require.NoError(t, st.UpdateSettingsImage(ctx, "logo_url", "/uploads/public/logo.png"))
	assert.Error(t, st.UpdateSettingsImage(ctx, "abn", "x"))

	s, err = st.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fresh Fish", "Frozen"}, s.Categories)
	assert.Equal(t, "https://facebook.com/wilsons", s.SocialLinks.Facebook)
	assert.Equal(t, hours, s.OpeningHours)
	assert.Equal(t, "12 345 678 901", s.ABN)
	assert.Equal(t, "(03) 1234 5678", s.PhoneNumber)
	assert.Equal(t, "/uploads/public/logo.png", s.LogoURL)

	s.Categories = nil
	require.NoError(t, st.SaveSiteSettings(ctx, s))
	s, err = st.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Categories)
	assert.Equal(t, "(03) 1234 5678", s.PhoneNumber)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	u, err := st.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, st.CreateUser(ctx, "admin", "hash"))
	u, err = st.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "hash", u.Password)

	assert.Error(t, st.CreateUser(ctx, "admin", "other"))
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	addProduct(t, st, "a", func(p *models.Product) { p.IsFresh = true })
	addProduct(t, st, "b", func(p *models.Product) { p.IsVisible = false })
	require.NoError(t, st.CreateBlogPost(ctx, &models.BlogPost{Title: "P", Slug: "p", Published: true}))
	require.NoError(t, st.CreateBlogPost(ctx, &models.BlogPost{Title: "D", Slug: "d"}))
	require.NoError(t, st.CreateReview(ctx, &models.Review{CustomerName: "A", Rating: 5, ReviewText: "x"}))
	require.NoError(t, st.CreateReview(ctx, &models.Review{CustomerName: "B", Rating: 4, ReviewText: "y"}))

	stats, err := st.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.FreshProducts)
	assert.Equal(t, 1, stats.HiddenProducts)
	assert.Equal(t, 2, stats.TotalPosts)
	assert.Equal(t, 1, stats.PublishedPosts)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
}
