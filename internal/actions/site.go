package actions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

func (a *Actions) UpdateHomepageContent(ctx context.Context, field, value string) Result {
	if !store.IsHomepageField(field) {
		return fail("Unknown field")
	}
	if err := a.Store.UpdateHomepageField(ctx, field, strings.TrimSpace(value)); err != nil {
		slog.Error("Failed to update homepage content", "error", err, "field", field)
		return fail("Failed to update content")
	}
	return ok()
}

func (a *Actions) UploadHomepageImage(ctx context.Context, img *storage.Image, field string) Result {
	if !store.IsHomepageImageField(field) {
		return fail("Unknown field")
	}
	previous, err := a.Store.GetHomepageField(ctx, field)
	if err != nil {
		slog.Warn("Failed to read current homepage image", "error", err, "field", field)
	}
	url, key, err := a.uploadImage(ctx, img, storage.NewObjectName)
	if err != nil {
		slog.Error("Failed to upload homepage image", "error", err, "field", field)
		return uploadFailure(err)
	}
	if err := a.Store.UpdateHomepageField(ctx, field, url); err != nil {
		slog.Error("Failed to update homepage image", "error", err, "field", field)
		a.removeObject(ctx, key)
		return fail("Failed to update image")
	}
	a.removeReplaced(ctx, previous, url)
	return Result{Success: true, URL: url}
}

// UploadSettingsImage replaces the logo or background image.
func (a *Actions) UploadSettingsImage(ctx context.Context, img *storage.Image, field string) Result {
	if !store.IsSettingsImageField(field) {
		return fail("Unknown field")
	}
	previous, err := a.Store.GetSettingsImage(ctx, field)
	if err != nil {
		slog.Warn("Failed to read current settings image", "error", err, "field", field)
	}
	url, key, err := a.uploadImage(ctx, img, storage.NewObjectName)
	if err != nil {
		slog.Error("Failed to upload settings image", "error", err, "field", field)
		return uploadFailure(err)
	}
	if err := a.Store.UpdateSettingsImage(ctx, field, url); err != nil {
		slog.Error("Failed to update settings image", "error", err, "field", field)
		a.removeObject(ctx, key)
		return fail("Failed to update image")
	}
	a.removeReplaced(ctx, previous, url)
	return Result{Success: true, URL: url}
}

// UpdateCategories trims, drops blanks and duplicates, then replaces the
// whole list.
func (a *Actions) UpdateCategories(ctx context.Context, categories []string) Result {
	if err := a.Store.UpdateCategories(ctx, cleanList(categories)); err != nil {
		slog.Error("Failed to update categories", "error", err)
		return fail("Failed to update categories")
	}
	return ok()
}

func (a *Actions) UpdateSocialLinks(ctx context.Context, links models.SocialLinks) Result {
	links.Facebook = strings.TrimSpace(links.Facebook)
	links.Instagram = strings.TrimSpace(links.Instagram)
	if err := a.validate.Struct(links); err != nil {
		return fail(validationMessage(err))
	}
	if err := a.Store.UpdateSocialLinks(ctx, links); err != nil {
		slog.Error("Failed to update social links", "error", err)
		return fail("Failed to update social links")
	}
	return ok()
}

func (a *Actions) UpdateContactInfo(ctx context.Context, abn, phone string) Result {
	if err := a.Store.UpdateContactInfo(ctx, strings.TrimSpace(abn), strings.TrimSpace(phone)); err != nil {
		slog.Error("Failed to update contact info", "error", err)
		return fail("Failed to update contact info")
	}
	return ok()
}

// UpdateOpeningHours replaces the list. Rows with both fields blank are
// dropped.
func (a *Actions) UpdateOpeningHours(ctx context.Context, hours []models.OpeningHour) Result {
	kept := make([]models.OpeningHour, 0, len(hours))
	for _, h := range hours {
		h.Day = strings.TrimSpace(h.Day)
		h.Time = strings.TrimSpace(h.Time)
		if h.Day == "" && h.Time == "" {
			continue
		}
		if err := a.validate.Struct(h); err != nil {
			return fail(validationMessage(err))
		}
		kept = append(kept, h)
	}
	if err := a.Store.UpdateOpeningHours(ctx, kept); err != nil {
		slog.Error("Failed to update opening hours", "error", err)
		return fail("Failed to update opening hours")
	}
	return ok()
}
