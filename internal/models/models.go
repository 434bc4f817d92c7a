package models

import (
	"time"
)

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" validate:"required,max=200"`
	Price       string    `json:"price" validate:"required,max=50"` // free text, e.g. "$32.99/kg"
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category" validate:"max=100"`
	Description string    `json:"description" validate:"max=2000"`
	IsFresh     bool      `json:"is_fresh"`
	OnOrder     bool      `json:"on_order"`
	OutOfStock  bool      `json:"out_of_stock"`
	IsVisible   bool      `json:"is_visible"`
	Featured    bool      `json:"featured"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string `json:"name,omitempty"`
	Price       *string `json:"price,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	IsFresh     *bool   `json:"is_fresh,omitempty"`
	OnOrder     *bool   `json:"on_order,omitempty"`
	OutOfStock  *bool   `json:"out_of_stock,omitempty"`
	IsVisible   *bool   `json:"is_visible,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.Description == nil &&
		p.IsFresh == nil && p.OnOrder == nil && p.OutOfStock == nil && p.IsVisible == nil && p.Featured == nil
}

type BlogPost struct {
	ID               int        `json:"id"`
	Title            string     `json:"title" validate:"required,max=300"`
	Slug             string     `json:"slug" validate:"required,max=300"`
	Content          string     `json:"content"` // raw HTML from the editor
	Excerpt          string     `json:"excerpt" validate:"max=1000"`
	MetaDescription  string     `json:"meta_description" validate:"max=500"`
	Author           string     `json:"author"`
	FeaturedImageURL string     `json:"featured_image_url" validate:"omitempty,url|startswith=/"`
	Category         string     `json:"category" validate:"max=100"`
	Published        bool       `json:"published"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

type Review struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customer_name" yaml:"customer_name" validate:"required,max=200"`
	Rating       int       `json:"rating" yaml:"rating" validate:"min=1,max=5"`
	ReviewText   string    `json:"review_text" yaml:"review_text" validate:"required"`
	IsFeatured   bool      `json:"is_featured" yaml:"is_featured"`
	IsApproved   bool      `json:"is_approved" yaml:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type ContactSubmission struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email" validate:"required,email"`
	Message   string    `json:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"created_at"`
}

// HomepageContent is the singleton row (id = 1) behind the home and about pages.
type HomepageContent struct {
	HeroTitle        string `json:"hero_title" yaml:"hero_title"`
	HeroSubtitle     string `json:"hero_subtitle" yaml:"hero_subtitle"`
	AnnouncementText string `json:"announcement_text" yaml:"announcement_text"`
	AboutText        string `json:"about_text" yaml:"about_text"`
	AboutImageURL    string `json:"about_image_url" yaml:"about_image_url"`

	Gateway1ImageURL    string `json:"gateway1_image_url" yaml:"gateway1_image_url"`
	Gateway1Title       string `json:"gateway1_title" yaml:"gateway1_title"`
	Gateway1Description string `json:"gateway1_description" yaml:"gateway1_description"`
	Gateway1ButtonText  string `json:"gateway1_button_text" yaml:"gateway1_button_text"`
	Gateway1ButtonURL   string `json:"gateway1_button_url" yaml:"gateway1_button_url"`

	Gateway2ImageURL    string `json:"gateway2_image_url" yaml:"gateway2_image_url"`
	Gateway2Title       string `json:"gateway2_title" yaml:"gateway2_title"`
	Gateway2Description string `json:"gateway2_description" yaml:"gateway2_description"`
	Gateway2ButtonText  string `json:"gateway2_button_text" yaml:"gateway2_button_text"`
	Gateway2ButtonURL   string `json:"gateway2_button_url" yaml:"gateway2_button_url"`
}

type OpeningHour struct {
	Day  string `json:"day" yaml:"day" validate:"required,max=50"`
	Time string `json:"time" yaml:"time" validate:"required,max=50"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook" yaml:"facebook" validate:"omitempty,url"`
	Instagram string `json:"instagram" yaml:"instagram" validate:"omitempty,url"`
}

// SiteSettings is the singleton row (id = 1) with branding and contact details.
type SiteSettings struct {
	LogoURL       string        `json:"logo_url" yaml:"logo_url"`
	BackgroundURL string        `json:"background_url" yaml:"background_url"`
	Categories    []string      `json:"categories" yaml:"categories"`
	SocialLinks   SocialLinks   `json:"social_links" yaml:"social_links"`
	ABN           string        `json:"abn" yaml:"abn"`
	PhoneNumber   string        `json:"phone_number" yaml:"phone_number"`
	OpeningHours  []OpeningHour `json:"opening_hours" yaml:"opening_hours"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Store hashed password
}
