package store

import (
	"context"
	"fmt"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/models"
)

func (s *Store) CreateContactSubmission(ctx context.Context, m *models.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (name, email, message) VALUES (?, ?, ?) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, s.rebind(query), m.Name, m.Email, m.Message).Scan(&m.ID); err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

// GetContactSubmissions lists messages newest first.
func (s *Store) GetContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, email, message, created_at FROM contact_submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ContactSubmission
	for rows.Next() {
		var m models.ContactSubmission
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) DeleteContactSubmission(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM contact_submissions WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
