package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

// ErrDuplicateSlug is returned when a blog post save collides with an
// existing slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

const blogColumns = `id, title, slug, content, excerpt, meta_description, author, featured_image_url, category, published, published_at, created_at, updated_at`

func scanBlogPost(row rowScanner) (models.BlogPost, error) {
	var p models.BlogPost
	var publishedAt, updatedAt sql.NullTime
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.MetaDescription, &p.Author,
		&p.FeaturedImageURL, &p.Category, &p.Published, &publishedAt, &p.CreatedAt, &updatedAt)
	if err != nil {
		return p, err
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	return p, nil
}

func (s *Store) queryBlogPosts(ctx context.Context, query string, args ...any) ([]models.BlogPost, error) {
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// modernc: "UNIQUE constraint failed", lib/pq: "duplicate key value violates unique constraint"
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// CreateBlogPost inserts the post. published_at is stamped when the post is
// created as published.
func (s *Store) CreateBlogPost(ctx context.Context, p *models.BlogPost) error {
	query := `
		INSERT INTO blog_posts (title, slug, content, excerpt, meta_description, author, featured_image_url, category, published, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CASE WHEN ? THEN CURRENT_TIMESTAMP ELSE NULL END)
		RETURNING id
	`
	err := s.DB.QueryRowContext(ctx, s.rebind(query),
		p.Title, p.Slug, p.Content, p.Excerpt, p.MetaDescription, p.Author,
		p.FeaturedImageURL, p.Category, p.Published, p.Published).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

// UpdateBlogPost rewrites every editable column and stamps updated_at.
// published_at is re-stamped on every save that leaves the post published and
// is kept as-is when unpublishing.
func (s *Store) UpdateBlogPost(ctx context.Context, p *models.BlogPost) error {
	query := `
		UPDATE blog_posts SET
			title = ?, slug = ?, content = ?, excerpt = ?, meta_description = ?, author = ?,
			featured_image_url = ?, category = ?, published = ?,
			published_at = CASE WHEN ? THEN CURRENT_TIMESTAMP ELSE published_at END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	res, err := s.DB.ExecContext(ctx, s.rebind(query),
		p.Title, p.Slug, p.Content, p.Excerpt, p.MetaDescription, p.Author,
		p.FeaturedImageURL, p.Category, p.Published, p.Published, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("update blog post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetAllBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.queryBlogPosts(ctx, `SELECT `+blogColumns+` FROM blog_posts ORDER BY created_at DESC, id DESC`)
}

func (s *Store) GetPublishedBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	return s.queryBlogPosts(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE published = ? ORDER BY published_at DESC, id DESC`, true)
}

func (s *Store) GetBlogPostByID(ctx context.Context, id int) (*models.BlogPost, error) {
	row := s.DB.QueryRowContext(ctx, s.rebind(`SELECT `+blogColumns+` FROM blog_posts WHERE id = ?`), id)
	p, err := scanBlogPost(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetPublishedBlogPostBySlug only matches published posts; drafts are
// reported as ErrNotFound.
func (s *Store) GetPublishedBlogPostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	row := s.DB.QueryRowContext(ctx, s.rebind(`SELECT `+blogColumns+` FROM blog_posts WHERE slug = ? AND published = ?`), slug, true)
	p, err := scanBlogPost(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) DeleteBlogPost(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM blog_posts WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
