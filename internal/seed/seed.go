// Package seed loads starter content for a fresh database from YAML.
package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

// File is the layout of a seed file. Every section is optional.
type File struct {
	Homepage *models.HomepageContent `yaml:"homepage"`
	Settings *models.SiteSettings    `yaml:"settings"`
	Reviews  []models.Review         `yaml:"reviews"`
}

// Load decodes a seed file. Unknown keys are rejected so typos don't
// silently drop content.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// Apply writes the sections present in f. The singleton rows are replaced;
// reviews are appended.
func Apply(ctx context.Context, st *store.Store, f *File) error {
	if f.Homepage != nil {
		if err := st.SaveHomepageContent(ctx, f.Homepage); err != nil {
			return err
		}
		slog.Info("Seeded homepage content")
	}
	if f.Settings != nil {
		if err := st.SaveSiteSettings(ctx, f.Settings); err != nil {
			return err
		}
		slog.Info("Seeded site settings")
	}
	for i := range f.Reviews {
		r := f.Reviews[i]
		if r.Rating < 1 || r.Rating > 5 {
			return fmt.Errorf("review %d: rating must be between 1 and 5", i+1)
		}
		if err := st.CreateReview(ctx, &r); err != nil {
			return fmt.Errorf("review %d: %w", i+1, err)
		}
	}
	if len(f.Reviews) > 0 {
		slog.Info("Seeded reviews", "count", len(f.Reviews))
	}
	return nil
}
