package actions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
)

// AddProduct uploads the image and inserts the product at the end of the
// sort order. If the insert fails the uploaded object is removed again.
func (a *Actions) AddProduct(ctx context.Context, p models.Product, img *storage.Image) Result {
	p.Name = strings.TrimSpace(p.Name)
	p.Price = strings.TrimSpace(p.Price)
	if err := a.validate.Struct(p); err != nil {
		return fail(validationMessage(err))
	}

	url, key, err := a.uploadImage(ctx, img, storage.NewObjectName)
	if err != nil {
		slog.Error("Failed to upload product image", "error", err)
		return uploadFailure(err)
	}

	p.ImageURL = url
	if err := a.Store.CreateProduct(ctx, &p); err != nil {
		slog.Error("Failed to add product", "error", err, "name", p.Name)
		a.removeObject(ctx, key)
		return fail("Failed to add product")
	}

	slog.Info("Product added", "id", p.ID, "name", p.Name)
	return Result{Success: true, ID: p.ID, URL: url}
}

func (a *Actions) DeleteProduct(ctx context.Context, id int) Result {
	if err := a.Store.DeleteProduct(ctx, id); err != nil {
		slog.Error("Failed to delete product", "error", err, "id", id)
		return notFoundOr(err, "Failed to delete product")
	}
	return ok()
}

// UpdateProduct applies a partial update. The row is logged before and after
// at debug level.
func (a *Actions) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) Result {
	if msg := checkPatch(patch); msg != "" {
		return fail(msg)
	}

	if before, err := a.Store.GetProductByID(ctx, id); err == nil {
		slog.Debug("Updating product", "id", id, "before", before)
	}

	if err := a.Store.UpdateProduct(ctx, id, patch); err != nil {
		slog.Error("Failed to update product", "error", err, "id", id)
		return notFoundOr(err, "Failed to update product")
	}

	if after, err := a.Store.GetProductByID(ctx, id); err == nil {
		slog.Debug("Updated product", "id", id, "after", after)
	}
	return Result{Success: true, ID: id}
}

// BulkUpdate applies one patch to every id in a single statement.
func (a *Actions) BulkUpdate(ctx context.Context, ids []int, patch models.ProductPatch) Result {
	if len(ids) == 0 {
		return fail("No products selected")
	}
	if msg := checkPatch(patch); msg != "" {
		return fail(msg)
	}
	if err := a.Store.UpdateProducts(ctx, ids, patch); err != nil {
		slog.Error("Failed to bulk update products", "error", err, "ids", ids)
		return notFoundOr(err, "Failed to update products")
	}
	return ok()
}

// ReplaceProductImage uploads a new image for an existing product. The old
// object is removed once the row points at the new one.
func (a *Actions) ReplaceProductImage(ctx context.Context, id int, img *storage.Image) Result {
	existing, err := a.Store.GetProductByID(ctx, id)
	if err != nil {
		slog.Error("Failed to load product for image replace", "error", err, "id", id)
		return notFoundOr(err, "Failed to update image")
	}

	url, key, err := a.uploadImage(ctx, img, storage.NewObjectName)
	if err != nil {
		slog.Error("Failed to upload product image", "error", err, "id", id)
		return uploadFailure(err)
	}

	if err := a.Store.UpdateProductImage(ctx, id, url); err != nil {
		slog.Error("Failed to update product image", "error", err, "id", id)
		a.removeObject(ctx, key)
		return notFoundOr(err, "Failed to update image")
	}

	a.removeReplaced(ctx, existing.ImageURL, url)
	return Result{Success: true, ID: id, URL: url}
}

func (a *Actions) ToggleVisibility(ctx context.Context, id int) Result {
	visible, err := a.Store.ToggleProductVisibility(ctx, id)
	if err != nil {
		slog.Error("Failed to toggle product visibility", "error", err, "id", id)
		return notFoundOr(err, "Failed to toggle visibility")
	}
	slog.Debug("Toggled product visibility", "id", id, "visible", visible)
	return Result{Success: true, ID: id}
}

// UpdateProductOrder rewrites sort_order to match ids, all or nothing.
func (a *Actions) UpdateProductOrder(ctx context.Context, ids []int) Result {
	if len(ids) == 0 {
		return fail("No products to reorder")
	}
	if err := a.Store.ReorderProducts(ctx, ids); err != nil {
		slog.Error("Failed to reorder products", "error", err, "count", len(ids))
		return fail("Failed to save product order")
	}
	return ok()
}

func checkPatch(patch models.ProductPatch) string {
	if patch.Empty() {
		return "Nothing to update"
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return "Name is required."
	}
	if patch.Price != nil && strings.TrimSpace(*patch.Price) == "" {
		return "Price is required."
	}
	return ""
}
