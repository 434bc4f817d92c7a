package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/actions"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/content"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

const blogPath = "/admin/blog"

func (h *AdminHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.GetAllBlogPosts(r.Context())
	if err != nil {
		slog.Error("Failed to load blog posts", "error", err)
		http.Error(w, "Error fetching posts", http.StatusInternalServerError)
		return
	}
	h.page(w, r, "admin_blog.html", "blog", map[string]interface{}{
		"Posts": posts,
	})
}

func (h *AdminHandler) NewBlogPostForm(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "admin_blog_edit.html", "blog", map[string]interface{}{
		"Post":   &models.BlogPost{Author: content.DefaultAuthor},
		"Action": blogPath,
	})
}

func (h *AdminHandler) EditBlogPostForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	post, err := h.Store.GetBlogPostByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Failed to load blog post", "error", err, "id", id)
		http.Error(w, "Error fetching post", http.StatusInternalServerError)
		return
	}
	h.page(w, r, "admin_blog_edit.html", "blog", map[string]interface{}{
		"Post":   post,
		"Action": fmt.Sprintf("%s/%d", blogPath, id),
	})
}

func blogForm(r *http.Request) actions.BlogForm {
	return actions.BlogForm{
		Title:            r.FormValue("title"),
		Slug:             r.FormValue("slug"),
		Content:          r.FormValue("content"),
		Excerpt:          r.FormValue("excerpt"),
		MetaDescription:  r.FormValue("meta_description"),
		Author:           r.FormValue("author"),
		Category:         r.FormValue("category"),
		FeaturedImageURL: r.FormValue("featured_image_url"),
		Published:        checkbox(r, "published"),
	}
}

func (h *AdminHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		h.flashError(w, r, "File too large. Max 10MB.", blogPath+"/new")
		return
	}
	img, closeImg, err := formImage(r, "featured_image")
	if err != nil {
		h.flashError(w, r, "Failed to read image.", blogPath+"/new")
		return
	}
	defer closeImg()

	res := h.Actions.CreateBlogPost(r.Context(), blogForm(r), img)
	if !res.Success {
		h.flashRedirect(w, r, res, "", blogPath+"/new")
		return
	}
	h.flashRedirect(w, r, res, "Post created!", blogPath)
}

func (h *AdminHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	back := fmt.Sprintf("%s/%d", blogPath, id)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		h.flashError(w, r, "File too large. Max 10MB.", back)
		return
	}
	img, closeImg, err := formImage(r, "featured_image")
	if err != nil {
		h.flashError(w, r, "Failed to read image.", back)
		return
	}
	defer closeImg()

	res := h.Actions.UpdateBlogPost(r.Context(), id, blogForm(r), img)
	if !res.Success {
		h.flashRedirect(w, r, res, "", back)
		return
	}
	h.flashRedirect(w, r, res, "Post saved!", blogPath)
}

func (h *AdminHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res := h.Actions.DeleteBlogPost(r.Context(), id)
	h.flashRedirect(w, r, res, "Post deleted.", blogPath)
}

// UploadBlogImage answers the editor's image upload with a JSON result.
func (h *AdminHandler) UploadBlogImage(w http.ResponseWriter, r *http.Request) {
	res := actions.Result{Error: "File too large. Max 10MB."}
	status := http.StatusBadRequest

	if err := r.ParseMultipartForm(maxFormSize); err == nil {
		img, closeImg, err := formImage(r, "image")
		if err != nil {
			res = actions.Result{Error: "Failed to read image."}
		} else {
			defer closeImg()
			res = h.Actions.UploadBlogImage(r.Context(), img)
		}
	}
	if res.Success {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.Error("Failed to write upload response", "error", err)
	}
}
