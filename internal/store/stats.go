package store

import (
	"context"
)

type DashboardStats struct {
	TotalProducts  int
	FreshProducts  int
	HiddenProducts int
	TotalPosts     int
	PublishedPosts int
	TotalReviews   int
	TotalMessages  int
	AverageRating  float64
}

func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	// 1. Products
	err := s.DB.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN is_fresh = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_visible = ? THEN 1 ELSE 0 END), 0)
		FROM products`), true, false).Scan(&stats.TotalProducts, &stats.FreshProducts, &stats.HiddenProducts)
	if err != nil {
		return nil, err
	}

	// 2. Blog posts
	err = s.DB.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN published = ? THEN 1 ELSE 0 END), 0)
		FROM blog_posts`), true).Scan(&stats.TotalPosts, &stats.PublishedPosts)
	if err != nil {
		return nil, err
	}

	// 3. Reviews
	err = s.DB.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews`).Scan(&stats.TotalReviews, &stats.AverageRating)
	if err != nil {
		return nil, err
	}

	// 4. Messages
	err = s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&stats.TotalMessages)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
