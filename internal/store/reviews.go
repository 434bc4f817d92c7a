package store

import (
	"context"
	"fmt"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	query := `
		INSERT INTO reviews (customer_name, rating, review_text, is_featured, is_approved)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	err := s.DB.QueryRowContext(ctx, s.rebind(query), r.CustomerName, r.Rating, r.ReviewText, r.IsFeatured, r.IsApproved).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetRecentReviews returns the newest reviews first. A limit <= 0 returns all.
func (s *Store) GetRecentReviews(ctx context.Context, limit int) ([]models.Review, error) {
	query := `SELECT id, customer_name, rating, review_text, is_featured, is_approved, created_at
		FROM reviews ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.CustomerName, &r.Rating, &r.ReviewText, &r.IsFeatured, &r.IsApproved, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) DeleteReview(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM reviews WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
