package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/content"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

const productsPath = "/admin/products"

func (h *AdminHandler) categories(r *http.Request) []string {
	settings, err := h.Store.GetSiteSettings(r.Context())
	if err != nil {
		slog.Error("Failed to load site settings", "error", err)
	}
	return content.Categories(settings)
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	// Admin sees ALL products including hidden ones
	products, err := h.Store.GetAllProducts(r.Context())
	if err != nil {
		slog.Error("Failed to load products", "error", err)
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	h.page(w, r, "admin_products.html", "products", map[string]interface{}{
		"Products":   products,
		"Categories": h.categories(r),
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		h.flashError(w, r, "File too large. Max 10MB.", productsPath)
		return
	}

	img, closeImg, err := formImage(r, "image")
	if err != nil {
		h.flashError(w, r, "Failed to read image.", productsPath)
		return
	}
	defer closeImg()
	if img == nil {
		h.flashError(w, r, "Image file is required.", productsPath)
		return
	}

	p := models.Product{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		IsFresh:     checkbox(r, "is_fresh"),
		OnOrder:     checkbox(r, "on_order"),
		OutOfStock:  checkbox(r, "out_of_stock"),
		IsVisible:   checkbox(r, "is_visible"),
		Featured:    checkbox(r, "featured"),
	}

	res := h.Actions.AddProduct(r.Context(), p, img)
	h.flashRedirect(w, r, res, "Product added successfully!", productsPath)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Failed to load product", "error", err, "id", id)
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}

	h.page(w, r, "admin_product_edit.html", "products", map[string]interface{}{
		"Product":    product,
		"Categories": h.categories(r),
	})
}

// productPatch reads the edit form. Only submitted text fields are patched;
// checkbox flags are patched when the form marks them present.
func productPatch(r *http.Request) models.ProductPatch {
	var patch models.ProductPatch
	text := func(key string) *string {
		if !r.Form.Has(key) {
			return nil
		}
		v := strings.TrimSpace(r.FormValue(key))
		return &v
	}
	flag := func(key string) *bool {
		v := checkbox(r, key)
		return &v
	}

	patch.Name = text("name")
	patch.Price = text("price")
	patch.Category = text("category")
	patch.Description = text("description")
	if r.Form.Has("flags") {
		patch.IsFresh = flag("is_fresh")
		patch.OnOrder = flag("on_order")
		patch.OutOfStock = flag("out_of_stock")
		patch.IsVisible = flag("is_visible")
		patch.Featured = flag("featured")
	}
	return patch
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, "Invalid form data.", productsPath)
		return
	}

	res := h.Actions.UpdateProduct(r.Context(), id, productPatch(r))
	if !res.Success {
		h.flashRedirect(w, r, res, "", fmt.Sprintf("%s/%d/edit", productsPath, id))
		return
	}
	h.flashRedirect(w, r, res, "Product updated successfully!", productsPath)
}

func (h *AdminHandler) ReplaceProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	back := fmt.Sprintf("%s/%d/edit", productsPath, id)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		h.flashError(w, r, "File too large. Max 10MB.", back)
		return
	}
	img, closeImg, err := formImage(r, "image")
	if err != nil {
		h.flashError(w, r, "Failed to read image.", back)
		return
	}
	defer closeImg()

	res := h.Actions.ReplaceProductImage(r.Context(), id, img)
	h.flashRedirect(w, r, res, "Image updated!", back)
}

func (h *AdminHandler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res := h.Actions.ToggleVisibility(r.Context(), id)
	h.flashRedirect(w, r, res, "Visibility updated.", productsPath)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	res := h.Actions.DeleteProduct(r.Context(), id)
	h.flashRedirect(w, r, res, "Product deleted successfully!", productsPath)
}

func (h *AdminHandler) ReorderProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, "Invalid form data.", productsPath)
		return
	}
	ids, ok := orderedIDs(r)
	if !ok {
		h.flashError(w, r, "Invalid product order.", productsPath)
		return
	}
	res := h.Actions.UpdateProductOrder(r.Context(), ids)
	h.flashRedirect(w, r, res, "Product order saved.", productsPath)
}

// bulkPatches maps the bulk action select to the patch it applies.
var bulkPatches = map[string]func() models.ProductPatch{
	"show":         func() models.ProductPatch { return models.ProductPatch{IsVisible: boolPtr(true)} },
	"hide":         func() models.ProductPatch { return models.ProductPatch{IsVisible: boolPtr(false)} },
	"fresh":        func() models.ProductPatch { return models.ProductPatch{IsFresh: boolPtr(true)} },
	"not_fresh":    func() models.ProductPatch { return models.ProductPatch{IsFresh: boolPtr(false)} },
	"feature":      func() models.ProductPatch { return models.ProductPatch{Featured: boolPtr(true)} },
	"unfeature":    func() models.ProductPatch { return models.ProductPatch{Featured: boolPtr(false)} },
	"out_of_stock": func() models.ProductPatch { return models.ProductPatch{OutOfStock: boolPtr(true)} },
	"in_stock":     func() models.ProductPatch { return models.ProductPatch{OutOfStock: boolPtr(false)} },
}

func boolPtr(b bool) *bool { return &b }

func (h *AdminHandler) BulkUpdateProducts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, "Invalid form data.", productsPath)
		return
	}
	ids, ok := formIDs(r, "selected")
	if !ok {
		h.flashError(w, r, "Invalid product selection.", productsPath)
		return
	}

	var patch models.ProductPatch
	if category := strings.TrimSpace(r.FormValue("category")); r.FormValue("action") == "category" && category != "" {
		patch.Category = &category
	} else if build, found := bulkPatches[r.FormValue("action")]; found {
		patch = build()
	} else {
		h.flashError(w, r, "Unknown bulk action.", productsPath)
		return
	}

	res := h.Actions.BulkUpdate(r.Context(), ids, patch)
	h.flashRedirect(w, r, res, fmt.Sprintf("Updated %d products.", len(ids)), productsPath)
}
