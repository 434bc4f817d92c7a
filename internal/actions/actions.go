// Package actions implements the admin and public mutations. Every operation
// logs its own failures and reports a Result instead of returning an error,
// so handlers only have to turn the Result into a flash message.
package actions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	URL     string `json:"url,omitempty"`
	ID      int    `json:"id,omitempty"`
}

func ok() Result { return Result{Success: true} }

func fail(msg string) Result { return Result{Error: msg} }

type Actions struct {
	Store    *store.Store
	Bucket   storage.Bucket
	validate *validator.Validate
	now      func() time.Time
}

func New(st *store.Store, bucket storage.Bucket) *Actions {
	return &Actions{
		Store:    st,
		Bucket:   bucket,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// validationMessage turns the first validator failure into a sentence for
// the admin.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input."
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "email":
		return "Please enter a valid email address."
	case "url", "url|startswith=/":
		return fmt.Sprintf("%s must be a valid URL.", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s is out of range.", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

// uploadImage processes img and stores it under name(ext). It returns the
// public URL and the object key.
func (a *Actions) uploadImage(ctx context.Context, img *storage.Image, name func(ext string) string) (string, string, error) {
	processed, err := storage.Process(img)
	if err != nil {
		return "", "", err
	}
	key := name(processed.Ext)
	if err := a.Bucket.Upload(ctx, key, processed.ContentType, bytes.NewReader(processed.Data)); err != nil {
		return "", "", err
	}
	return a.Bucket.PublicURL(key), key, nil
}

// removeObject deletes an uploaded object that no row ended up referencing.
func (a *Actions) removeObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := a.Bucket.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		slog.Warn("Failed to remove orphaned upload", "object", key, "error", err)
	}
}

// removeReplaced deletes the bucket object behind previous once a row points
// at current instead. URLs outside the bucket are left alone.
func (a *Actions) removeReplaced(ctx context.Context, previous, current string) {
	if previous == "" || previous == current {
		return
	}
	a.removeObject(ctx, storage.ObjectName(a.Bucket, previous))
}

// uploadFailure maps image errors to the message shown to the admin.
func uploadFailure(err error) Result {
	switch {
	case errors.Is(err, storage.ErrNoImage):
		return fail("No image provided")
	case errors.Is(err, storage.ErrImageTooLarge):
		return fail("File too large. Max 10MB.")
	case errors.Is(err, storage.ErrUnsupportedImage):
		return fail("Unsupported image format. Only JPG, PNG, GIF and WebP are allowed.")
	default:
		return fail("Failed to upload image")
	}
}

func notFoundOr(err error, msg string) Result {
	if errors.Is(err, store.ErrNotFound) {
		return fail("Not found")
	}
	return fail(msg)
}

func cleanList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
