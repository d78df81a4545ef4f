package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// CreateTag вставляет новый тег и возвращает его ID.
func (s *Storage) CreateTag(ctx context.Context, name string) (int, error) {
	const op = "storage.CreateTag"

	var newID int
	query := `INSERT INTO tags (name) VALUES ($1) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTag возвращает тег по ID.
func (s *Storage) GetTag(ctx context.Context, id int) (*models.Tag, error) {
	const op = "storage.GetTag"

	var t models.Tag
	row := s.DB.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = $1`, id)
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrTagNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// ListTags возвращает все теги, отсортированные по ID.
func (s *Storage) ListTags(ctx context.Context) ([]*models.Tag, error) {
	const op = "storage.ListTags"

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err = rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTag переименовывает тег по ID.
func (s *Storage) UpdateTag(ctx context.Context, id int, name string) error {
	const op = "storage.UpdateTag"

	result, err := s.DB.ExecContext(ctx, `UPDATE tags SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrTagNotFound)
	}
	return nil
}

// DeleteTag удаляет тег. Связи в pet_tags снимаются каскадом внешнего ключа.
func (s *Storage) DeleteTag(ctx context.Context, id int) error {
	const op = "storage.DeleteTag"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrTagNotFound)
	}
	return nil
}
