package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.NewStore(store.DriverSQLite, filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadExampleFile(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "seed.example.yaml"))
	require.NoError(t, err)
	defer f.Close()

	data, err := Load(f)
	require.NoError(t, err)
	require.NotNil(t, data.Homepage)
	require.NotNil(t, data.Settings)
	assert.Equal(t, "Fresh Tasmanian Seafood", data.Homepage.HeroTitle)
	assert.Contains(t, data.Settings.Categories, "Out of Stock")
	assert.Len(t, data.Settings.OpeningHours, 3)
	assert.Len(t, data.Reviews, 2)

	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, Apply(ctx, st, data))

	home, err := st.GetHomepageContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/products", home.Gateway1ButtonURL)

	settings, err := st.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "(03) 6272 6600", settings.PhoneNumber)
	assert.Equal(t, "https://www.facebook.com/wilsonsseafoods", settings.SocialLinks.Facebook)

	reviews, err := st.GetRecentReviews(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestLoadEmpty(t *testing.T) {
	data, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, data.Homepage)
	assert.Nil(t, data.Settings)
	assert.Empty(t, data.Reviews)

	require.NoError(t, Apply(context.Background(), newStore(t), data))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("homepage:\n  hero_tittle: Oops\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("products: []\n"))
	assert.Error(t, err)
}

func TestApplyRejectsBadRating(t *testing.T) {
	data, err := Load(strings.NewReader(`
reviews:
  - customer_name: A
    rating: 5
    review_text: Good
  - customer_name: B
    rating: 9
    review_text: Too good
`))
	require.NoError(t, err)

	err = Apply(context.Background(), newStore(t), data)
	require.Error(t, err)
	assert.Equal(t, "review 2: rating must be between 1 and 5", err.Error())
}

func TestApplyKeepsUnsetSections(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, st.UpdateContactInfo(ctx, "11 222", "0400"))

	data, err := Load(strings.NewReader("homepage:\n  hero_title: Hello\n"))
	require.NoError(t, err)
	require.NoError(t, Apply(ctx, st, data))

	settings, err := st.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0400", settings.PhoneNumber)

	home, err := st.GetHomepageContent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello", home.HeroTitle)
}
