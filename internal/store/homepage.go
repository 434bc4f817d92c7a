package store

import (
	"context"
	"fmt"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

// HomepageTextFields are the homepage_content columns editable as text.
var HomepageTextFields = []string{
	"hero_title", "hero_subtitle", "announcement_text", "about_text",
	"gateway1_title", "gateway1_description", "gateway1_button_text", "gateway1_button_url",
	"gateway2_title", "gateway2_description", "gateway2_button_text", "gateway2_button_url",
}

// HomepageImageFields are the homepage_content columns that hold image URLs.
var HomepageImageFields = []string{"about_image_url", "gateway1_image_url", "gateway2_image_url"}

func IsHomepageField(field string) bool {
	return contains(HomepageTextFields, field) || contains(HomepageImageFields, field)
}

func IsHomepageImageField(field string) bool {
	return contains(HomepageImageFields, field)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (s *Store) GetHomepageContent(ctx context.Context) (*models.HomepageContent, error) {
	query := `SELECT hero_title, hero_subtitle, announcement_text, about_text, about_image_url,
		gateway1_image_url, gateway1_title, gateway1_description, gateway1_button_text, gateway1_button_url,
		gateway2_image_url, gateway2_title, gateway2_description, gateway2_button_text, gateway2_button_url
		FROM homepage_content WHERE id = 1`
	var c models.HomepageContent
	err := s.DB.QueryRowContext(ctx, query).Scan(&c.HeroTitle, &c.HeroSubtitle, &c.AnnouncementText, &c.AboutText, &c.AboutImageURL,
		&c.Gateway1ImageURL, &c.Gateway1Title, &c.Gateway1Description, &c.Gateway1ButtonText, &c.Gateway1ButtonURL,
		&c.Gateway2ImageURL, &c.Gateway2Title, &c.Gateway2Description, &c.Gateway2ButtonText, &c.Gateway2ButtonURL)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// GetHomepageField reads a single column of the singleton row.
func (s *Store) GetHomepageField(ctx context.Context, field string) (string, error) {
	if !IsHomepageField(field) {
		return "", fmt.Errorf("unknown homepage field %q", field)
	}
	var v string
	if err := s.DB.QueryRowContext(ctx, `SELECT `+field+` FROM homepage_content WHERE id = 1`).Scan(&v); err != nil {
		return "", notFound(err)
	}
	return v, nil
}

// UpdateHomepageField sets a single column on the singleton row. field must
// be one of HomepageTextFields or HomepageImageFields.
func (s *Store) UpdateHomepageField(ctx context.Context, field, value string) error {
	if !IsHomepageField(field) {
		return fmt.Errorf("unknown homepage field %q", field)
	}
	res, err := s.DB.ExecContext(ctx, s.rebind(`UPDATE homepage_content SET `+field+` = ? WHERE id = 1`), value)
	if err != nil {
		return fmt.Errorf("update homepage %s: %w", field, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveHomepageContent upserts the whole singleton row.
func (s *Store) SaveHomepageContent(ctx context.Context, c *models.HomepageContent) error {
	query := `
		INSERT INTO homepage_content (id, hero_title, hero_subtitle, announcement_text, about_text, about_image_url,
			gateway1_image_url, gateway1_title, gateway1_description, gateway1_button_text, gateway1_button_url,
			gateway2_image_url, gateway2_title, gateway2_description, gateway2_button_text, gateway2_button_url)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			hero_title = excluded.hero_title, hero_subtitle = excluded.hero_subtitle,
			announcement_text = excluded.announcement_text, about_text = excluded.about_text,
			about_image_url = excluded.about_image_url,
			gateway1_image_url = excluded.gateway1_image_url, gateway1_title = excluded.gateway1_title,
			gateway1_description = excluded.gateway1_description, gateway1_button_text = excluded.gateway1_button_text,
			gateway1_button_url = excluded.gateway1_button_url,
			gateway2_image_url = excluded.gateway2_image_url, gateway2_title = excluded.gateway2_title,
			gateway2_description = excluded.gateway2_description, gateway2_button_text = excluded.gateway2_button_text,
			gateway2_button_url = excluded.gateway2_button_url
	`
	_, err := s.DB.ExecContext(ctx, s.rebind(query),
		c.HeroTitle, c.HeroSubtitle, c.AnnouncementText, c.AboutText, c.AboutImageURL,
		c.Gateway1ImageURL, c.Gateway1Title, c.Gateway1Description, c.Gateway1ButtonText, c.Gateway1ButtonURL,
		c.Gateway2ImageURL, c.Gateway2Title, c.Gateway2Description, c.Gateway2ButtonText, c.Gateway2ButtonURL)
	if err != nil {
		return fmt.Errorf("save homepage content: %w", err)
	}
	return nil
}
