// Package tag содержит бизнес-логику для управления тегами.
package tag

import (
	"context"
	"strings"

	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// Repository определяет методы для работы с тегами в хранилище.
type Repository interface {
	// CreateTag добавляет новый тег и возвращает его ID.
	CreateTag(ctx context.Context, name string) (int, error)
	// GetTag возвращает тег по ID.
	GetTag(ctx context.Context, id int) (*models.Tag, error)
	// ListTags возвращает все теги.
	ListTags(ctx context.Context) ([]*models.Tag, error)
	// UpdateTag переименовывает тег.
	UpdateTag(ctx context.Context, id int, name string) error
	// DeleteTag удаляет тег вместе со связями.
	DeleteTag(ctx context.Context, id int) error
}

// Service реализует операции над тегами.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create создает тег с обрезанным именем и возвращает его.
func (s *Service) Create(ctx context.Context, name string) (*models.Tag, error) {
	id, err := s.repo.CreateTag(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return s.repo.GetTag(ctx, id)
}

// List возвращает все теги.
func (s *Service) List(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*models.Tag{}
	}
	return tags, nil
}

// Update переименовывает тег и возвращает его новое состояние.
func (s *Service) Update(ctx context.Context, id int, name string) (*models.Tag, error) {
	if err := s.repo.UpdateTag(ctx, id, strings.TrimSpace(name)); err != nil {
		return nil, err
	}
	return s.repo.GetTag(ctx, id)
}

// Delete удаляет тег. Связи с питомцами снимаются на уровне схемы.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteTag(ctx, id)
}
