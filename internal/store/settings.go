package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

// SettingsImageFields are the site_settings columns that hold image URLs.
var SettingsImageFields = []string{"logo_url", "background_url"}

func IsSettingsImageField(field string) bool {
	return contains(SettingsImageFields, field)
}

func (s *Store) GetSiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	query := `SELECT logo_url, background_url, categories, social_links, abn, phone_number, opening_hours
		FROM site_settings WHERE id = 1`
	var st models.SiteSettings
	var categories, social, hours []byte
	err := s.DB.QueryRowContext(ctx, query).Scan(&st.LogoURL, &st.BackgroundURL, &categories, &social, &st.ABN, &st.PhoneNumber, &hours)
	if err != nil {
		return nil, notFound(err)
	}
	if err := decodeJSONColumn(categories, &st.Categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if err := decodeJSONColumn(social, &st.SocialLinks); err != nil {
		return nil, fmt.Errorf("decode social_links: %w", err)
	}
	if err := decodeJSONColumn(hours, &st.OpeningHours); err != nil {
		return nil, fmt.Errorf("decode opening_hours: %w", err)
	}
	return &st, nil
}

func decodeJSONColumn(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (s *Store) updateSettings(ctx context.Context, set string, args ...any) error {
	res, err := s.DB.ExecContext(ctx, s.rebind(`UPDATE site_settings SET `+set+` WHERE id = 1`), args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) updateSettingsJSON(ctx context.Context, column string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", column, err)
	}
	if err := s.updateSettings(ctx, column+` = ?`, string(raw)); err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	return nil
}

// UpdateSettingsImage sets logo_url or background_url.
func (s *Store) GetSettingsImage(ctx context.Context, field string) (string, error) {
	if !IsSettingsImageField(field) {
		return "", fmt.Errorf("unknown settings image field %q", field)
	}
	var v string
	if err := s.DB.QueryRowContext(ctx, `SELECT `+field+` FROM site_settings WHERE id = 1`).Scan(&v); err != nil {
		return "", notFound(err)
	}
	return v, nil
}

func (s *Store) UpdateSettingsImage(ctx context.Context, field, url string) error {
	if !IsSettingsImageField(field) {
		return fmt.Errorf("unknown settings image field %q", field)
	}
	return s.updateSettings(ctx, field+` = ?`, url)
}

func (s *Store) UpdateCategories(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	return s.updateSettingsJSON(ctx, "categories", categories)
}

func (s *Store) UpdateSocialLinks(ctx context.Context, links models.SocialLinks) error {
	return s.updateSettingsJSON(ctx, "social_links", links)
}

func (s *Store) UpdateOpeningHours(ctx context.Context, hours []models.OpeningHour) error {
	if hours == nil {
		hours = []models.OpeningHour{}
	}
	return s.updateSettingsJSON(ctx, "opening_hours", hours)
}

func (s *Store) UpdateContactInfo(ctx context.Context, abn, phone string) error {
	return s.updateSettings(ctx, `abn = ?, phone_number = ?`, abn, phone)
}

// SaveSiteSettings replaces the whole singleton row.
func (s *Store) SaveSiteSettings(ctx context.Context, st *models.SiteSettings) error {
	categories, err := json.Marshal(nonNil(st.Categories))
	if err != nil {
		return err
	}
	social, err := json.Marshal(st.SocialLinks)
	if err != nil {
		return err
	}
	hours := st.OpeningHours
	if hours == nil {
		hours = []models.OpeningHour{}
	}
	hoursRaw, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO site_settings (id, logo_url, background_url, categories, social_links, abn, phone_number, opening_hours)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			logo_url = excluded.logo_url, background_url = excluded.background_url,
			categories = excluded.categories, social_links = excluded.social_links,
			abn = excluded.abn, phone_number = excluded.phone_number, opening_hours = excluded.opening_hours
	`
	_, err = s.DB.ExecContext(ctx, s.rebind(query),
		st.LogoURL, st.BackgroundURL, string(categories), string(social), st.ABN, st.PhoneNumber, string(hoursRaw))
	if err != nil {
		return fmt.Errorf("save site settings: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
