package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

const (
	homepagePath = "/admin/homepage"
	settingsPath = "/admin/settings"
)

// editorField is one row of the homepage editor.
type editorField struct {
	Name      string
	Label     string
	Value     string
	Multiline bool
}

func homepageFields(c *models.HomepageContent) (text, images []editorField) {
	text = []editorField{
		{Name: "hero_title", Label: "Hero title", Value: c.HeroTitle},
		{Name: "hero_subtitle", Label: "Hero subtitle", Value: c.HeroSubtitle, Multiline: true},
		{Name: "announcement_text", Label: "Announcement banner", Value: c.AnnouncementText},
		{Name: "about_text", Label: "About text", Value: c.AboutText, Multiline: true},
		{Name: "gateway1_title", Label: "Store card title", Value: c.Gateway1Title},
		{Name: "gateway1_description", Label: "Store card description", Value: c.Gateway1Description, Multiline: true},
		{Name: "gateway1_button_text", Label: "Store card button text", Value: c.Gateway1ButtonText},
		{Name: "gateway1_button_url", Label: "Store card button link", Value: c.Gateway1ButtonURL},
		{Name: "gateway2_title", Label: "Wholesale card title", Value: c.Gateway2Title},
		{Name: "gateway2_description", Label: "Wholesale card description", Value: c.Gateway2Description, Multiline: true},
		{Name: "gateway2_button_text", Label: "Wholesale card button text", Value: c.Gateway2ButtonText},
		{Name: "gateway2_button_url", Label: "Wholesale card button link", Value: c.Gateway2ButtonURL},
	}
	images = []editorField{
		{Name: "about_image_url", Label: "About image", Value: c.AboutImageURL},
		{Name: "gateway1_image_url", Label: "Store card image", Value: c.Gateway1ImageURL},
		{Name: "gateway2_image_url", Label: "Wholesale card image", Value: c.Gateway2ImageURL},
	}
	return text, images
}

func (h *AdminHandler) HomepageEditor(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetHomepageContent(r.Context())
	if err != nil {
		slog.Error("Failed to load homepage content", "error", err)
		c = &models.HomepageContent{}
	}
	text, images := homepageFields(c)
	h.page(w, r, "admin_homepage.html", "homepage", map[string]interface{}{
		"Fields": text,
		"Images": images,
	})
}

func (h *AdminHandler) UpdateHomepageField(w http.ResponseWriter, r *http.Request) {
	res := h.Actions.UpdateHomepageContent(r.Context(), r.FormValue("field"), r.FormValue("value"))
	h.flashRedirect(w, r, res, "Homepage updated.", homepagePath)
}

func (h *AdminHandler) UploadHomepageImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		h.flashError(w, r, "File too large. Max 10MB.", homepagePath)
		return
	}
	img, closeImg, err := formImage(r, "image")
	if err != nil {
		h.flashError(w, r, "Failed to read image.", homepagePath)
		return
	}
	defer closeImg()

	res := h.Actions.UploadHomepageImage(r.Context(), img, r.FormValue("field"))
	h.flashRedirect(w, r, res, "Image updated!", homepagePath)
}

func (h *AdminHandler) SettingsEditor(w http.ResponseWriter, r *http.Request) {
	s, err := h.Store.GetSiteSettings(r.Context())
	if err != nil {
		slog.Error("Failed to load site settings", "error", err)
		s = &models.SiteSettings{}
	}
	h.page(w, r, "admin_settings.html", "settings", map[string]interface{}{
		"Settings": s,
	})
}

func (h *AdminHandler) UploadSettingsImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		h.flashError(w, r, "File too large. Max 10MB.", settingsPath)
		return
	}
	img, closeImg, err := formImage(r, "image")
	if err != nil {
		h.flashError(w, r, "Failed to read image.", settingsPath)
		return
	}
	defer closeImg()

	res := h.Actions.UploadSettingsImage(r.Context(), img, r.FormValue("field"))
	h.flashRedirect(w, r, res, "Image updated!", settingsPath)
}

func (h *AdminHandler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	res := h.Actions.UpdateCategories(r.Context(), splitList(r.FormValue("categories")))
	h.flashRedirect(w, r, res, "Categories saved.", settingsPath)
}

func (h *AdminHandler) UpdateSocialLinks(w http.ResponseWriter, r *http.Request) {
	res := h.Actions.UpdateSocialLinks(r.Context(), models.SocialLinks{
		Facebook:  r.FormValue("facebook"),
		Instagram: r.FormValue("instagram"),
	})
	h.flashRedirect(w, r, res, "Social links saved.", settingsPath)
}

func (h *AdminHandler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	res := h.Actions.UpdateContactInfo(r.Context(), r.FormValue("abn"), r.FormValue("phone_number"))
	h.flashRedirect(w, r, res, "Contact details saved.", settingsPath)
}

// UpdateOpeningHours reads the parallel day/time inputs of the hours table.
func (h *AdminHandler) UpdateOpeningHours(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, "Invalid form data.", settingsPath)
		return
	}
	days, times := r.Form["day"], r.Form["time"]
	if len(days) != len(times) {
		h.flashError(w, r, "Invalid opening hours.", settingsPath)
		return
	}
	hours := make([]models.OpeningHour, len(days))
	for i := range days {
		hours[i] = models.OpeningHour{Day: days[i], Time: times[i]}
	}

	res := h.Actions.UpdateOpeningHours(r.Context(), hours)
	h.flashRedirect(w, r, res, "Opening hours saved.", settingsPath)
}
