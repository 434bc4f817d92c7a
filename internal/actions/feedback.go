package actions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

// AddReview inserts a review directly; there is no public review form.
func (a *Actions) AddReview(ctx context.Context, r models.Review) Result {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.ReviewText = strings.TrimSpace(r.ReviewText)
	if err := a.validate.Struct(r); err != nil {
		return fail(validationMessage(err))
	}
	if err := a.Store.CreateReview(ctx, &r); err != nil {
		slog.Error("Failed to add review", "error", err)
		return fail("Failed to add review")
	}
	return Result{Success: true, ID: r.ID}
}

func (a *Actions) DeleteReview(ctx context.Context, id int) Result {
	if err := a.Store.DeleteReview(ctx, id); err != nil {
		slog.Error("Failed to delete review", "error", err, "id", id)
		return notFoundOr(err, "Failed to delete review")
	}
	return ok()
}

// SubmitContact stores a message from the public contact form.
func (a *Actions) SubmitContact(ctx context.Context, m models.ContactSubmission) Result {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
	if err := a.validate.Struct(m); err != nil {
		return fail(validationMessage(err))
	}
	if err := a.Store.Public().SubmitContact(ctx, &m); err != nil {
		slog.Error("Failed to save contact submission", "error", err)
		return fail("Sorry, your message could not be sent. Please call us instead.")
	}
	slog.Info("Contact submission received", "id", m.ID)
	return Result{Success: true, ID: m.ID}
}

func (a *Actions) DeleteMessage(ctx context.Context, id int) Result {
	if err := a.Store.DeleteContactSubmission(ctx, id); err != nil {
		slog.Error("Failed to delete message", "error", err, "id", id)
		return notFoundOr(err, "Failed to delete message")
	}
	return ok()
}
