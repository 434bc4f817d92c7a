package handlers

import (
	"log/slog"
	"net/http"
)

func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.GetRecentReviews(r.Context(), 0)
	if err != nil {
		slog.Error("Failed to load reviews", "error", err)
		http.Error(w, "Error fetching reviews", http.StatusInternalServerError)
		return
	}
	h.page(w, r, "admin_reviews.html", "reviews", map[string]interface{}{
		"Reviews": reviews,
	})
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res := h.Actions.DeleteReview(r.Context(), id)
	h.flashRedirect(w, r, res, "Review deleted.", "/admin/reviews")
}

func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Store.GetContactSubmissions(r.Context())
	if err != nil {
		slog.Error("Failed to load messages", "error", err)
		http.Error(w, "Error fetching messages", http.StatusInternalServerError)
		return
	}
	h.page(w, r, "admin_messages.html", "messages", map[string]interface{}{
		"Messages": messages,
	})
}

func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res := h.Actions.DeleteMessage(r.Context(), id)
	h.flashRedirect(w, r, res, "Message deleted.", "/admin/messages")
}
