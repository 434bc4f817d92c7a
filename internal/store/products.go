package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

const productColumns = `id, name, price, image_url, category, description, is_fresh, on_order, out_of_stock, is_visible, featured, sort_order, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Category, &p.Description,
		&p.IsFresh, &p.OnOrder, &p.OutOfStock, &p.IsVisible, &p.Featured, &p.SortOrder, &p.CreatedAt)
	return p, err
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateProduct inserts the product after the last row in sort order and
// fills in the generated id and sort_order.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, price, image_url, category, description, is_fresh, on_order, out_of_stock, is_visible, featured, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM products))
		RETURNING id, sort_order
	`
	row := s.DB.QueryRowContext(ctx, s.rebind(query),
		p.Name, p.Price, p.ImageURL, p.Category, p.Description,
		p.IsFresh, p.OnOrder, p.OutOfStock, p.IsVisible, p.Featured)
	if err := row.Scan(&p.ID, &p.SortOrder); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetAllProducts returns every product, hidden ones included, in display order.
func (s *Store) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY sort_order ASC, id ASC`)
}

func (s *Store) GetVisibleProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, `SELECT `+productColumns+` FROM products WHERE is_visible = ? ORDER BY sort_order ASC, id ASC`, true)
}

// GetFeaturedProducts returns visible, featured products outside the
// "Out of Stock" category, capped at limit.
func (s *Store) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_visible = ? AND featured = ? AND category <> ?
		ORDER BY sort_order ASC, id ASC
		LIMIT ?`
	return s.queryProducts(ctx, query, true, true, "Out of Stock", limit)
}

func (s *Store) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx, s.rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// patchAssignments builds the SET clause for the non-nil fields of patch.
func patchAssignments(patch models.ProductPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.IsFresh != nil {
		add("is_fresh", *patch.IsFresh)
	}
	if patch.OnOrder != nil {
		add("on_order", *patch.OnOrder)
	}
	if patch.OutOfStock != nil {
		add("out_of_stock", *patch.OutOfStock)
	}
	if patch.IsVisible != nil {
		add("is_visible", *patch.IsVisible)
	}
	if patch.Featured != nil {
		add("featured", *patch.Featured)
	}
	return sets, args
}

// UpdateProduct applies a partial update. Concurrent writers are last-write-wins.
func (s *Store) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) error {
	return s.UpdateProducts(ctx, []int{id}, patch)
}

// UpdateProducts applies the same partial update to every id in one statement.
func (s *Store) UpdateProducts(ctx context.Context, ids []int, patch models.ProductPatch) error {
	sets, args := patchAssignments(patch)
	if len(sets) == 0 || len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := `UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	res, err := s.DB.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("update products: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateProductImage(ctx context.Context, id int, imageURL string) error {
	res, err := s.DB.ExecContext(ctx, s.rebind(`UPDATE products SET image_url = ? WHERE id = ?`), imageURL, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleProductVisibility flips is_visible in a single statement and returns
// the new value.
func (s *Store) ToggleProductVisibility(ctx context.Context, id int) (bool, error) {
	var visible bool
	query := `UPDATE products SET is_visible = NOT is_visible WHERE id = ? RETURNING is_visible`
	if err := s.DB.QueryRowContext(ctx, s.rebind(query), id).Scan(&visible); err != nil {
		return false, notFound(err)
	}
	return visible, nil
}

// ReorderProducts sets sort_order to each id's index in ids. The batch is
// atomic: any failure leaves the previous order intact.
func (s *Store) ReorderProducts(ctx context.Context, ids []int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`UPDATE products SET sort_order = ? WHERE id = ?`))
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for i, id := range ids {
		res, err := stmt.ExecContext(ctx, i, id)
		if err != nil {
			return fmt.Errorf("reorder product %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("reorder product %d: %w", id, ErrNotFound)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteProduct(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
