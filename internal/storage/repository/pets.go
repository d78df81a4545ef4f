package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// CreatePet вставляет нового питомца и возвращает его ID.
func (s *Storage) CreatePet(ctx context.Context, pet models.Pet) (int, error) {
	const op = "storage.CreatePet"

	query := `INSERT INTO pets (name, type, age, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		pet.Name, pet.Type, pet.Age, pet.OwnerID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPet возвращает питомца по ID вместе с его тегами.
func (s *Storage) GetPet(ctx context.Context, id int) (*models.Pet, error) {
	const op = "storage.GetPet"

	query := `SELECT id, name, type, age, user_id
			  FROM pets WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Pet
	var ownerID sql.NullInt64
	if err := row.Scan(&result.ID, &result.Name, &result.Type, &result.Age, &ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPetNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ownerID.Valid {
		owner := int(ownerID.Int64)
		result.OwnerID = &owner
	}

	tags, err := s.listPetTags(ctx, result.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result.Tags = tags
	return &result, nil
}

// ListPets возвращает питомцев по фильтру вместе с общим числом записей,
// подходящих под фильтр (для расчёта числа страниц).
func (s *Storage) ListPets(ctx context.Context, filter models.PetFilter) ([]*models.Pet, int, error) {
	const op = "storage.ListPets"

	var conditions []string
	var args []any
	if filter.Type != "" {
		args = append(args, strings.ToLower(filter.Type))
		conditions = append(conditions, fmt.Sprintf("lower(type) = $%d", len(args)))
	}
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM pets` + whereClause
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, name, type, age, user_id FROM pets` + whereClause + ` ORDER BY id`
	if filter.Paginated {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Pet
	for rows.Next() {
		var item models.Pet
		var ownerID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.Name, &item.Type, &item.Age, &ownerID); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		if ownerID.Valid {
			owner := int(ownerID.Int64)
			item.OwnerID = &owner
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, pet := range result {
		tags, err := s.listPetTags(ctx, pet.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		pet.Tags = tags
	}
	return result, total, nil
}

// UpdatePet перезаписывает имя, вид, возраст питомца по ID.
func (s *Storage) UpdatePet(ctx context.Context, pet models.Pet) error {
	const op = "storage.UpdatePet"

	query := `UPDATE pets
			  SET name = $1, type = $2, age = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, pet.Name, pet.Type, pet.Age, pet.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrPetNotFound)
	}
	return nil
}

// DeletePet удаляет питомца и его связи с тегами в одной транзакции.
func (s *Storage) DeletePet(ctx context.Context, id int) error {
	const op = "storage.DeletePet"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM pet_tags WHERE pet_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrPetNotFound)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AssignTag связывает питомца с тегом. Повторное присвоение того же тега
// является no-op: уникальность пары обеспечена первичным ключом pet_tags.
func (s *Storage) AssignTag(ctx context.Context, petID, tagID int) error {
	const op = "storage.AssignTag"

	if err := s.checkPetExists(ctx, petID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.checkTagExists(ctx, tagID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO pet_tags (pet_id, tag_id)
			  VALUES ($1, $2)
			  ON CONFLICT (pet_id, tag_id) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, petID, tagID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveTag разрывает связь питомца с тегом.
func (s *Storage) RemoveTag(ctx context.Context, petID, tagID int) error {
	const op = "storage.RemoveTag"

	if err := s.checkPetExists(ctx, petID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.checkTagExists(ctx, tagID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.DB.ExecContext(ctx,
		`DELETE FROM pet_tags WHERE pet_id = $1 AND tag_id = $2`, petID, tagID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReplaceTags атомарно заменяет набор тегов питомца. Сначала резолвятся
// все переданные ID: если хотя бы один тег отсутствует, транзакция
// откатывается целиком и набор остаётся прежним.
func (s *Storage) ReplaceTags(ctx context.Context, petID int, tagIDs []int) error {
	const op = "storage.ReplaceTags"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)`, petID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, ErrPetNotFound)
	}

	for _, tagID := range tagIDs {
		if err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM tags WHERE id = $1)`, tagID).Scan(&exists); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s: tag %d: %w", op, tagID, ErrTagNotFound)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM pet_tags WHERE pet_id = $1`, petID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO pet_tags (pet_id, tag_id) VALUES ($1, $2) ON CONFLICT (pet_id, tag_id) DO NOTHING`,
			petID, tagID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) listPetTags(ctx context.Context, petID int) ([]models.Tag, error) {
	query := `SELECT t.id, t.name
			  FROM tags t
			  JOIN pet_tags pt ON pt.tag_id = t.id
			  WHERE pt.pet_id = $1
			  ORDER BY t.id`
	rows, err := s.DB.QueryContext(ctx, query, petID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Storage) checkPetExists(ctx context.Context, petID int) error {
	var exists bool
	if err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)`, petID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrPetNotFound
	}
	return nil
}

func (s *Storage) checkTagExists(ctx context.Context, tagID int) error {
	var exists bool
	if err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE id = $1)`, tagID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrTagNotFound
	}
	return nil
}
