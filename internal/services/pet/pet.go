// Package pet содержит бизнес-логику для управления питомцами,
// их тегами и кеширование чтений.
package pet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// Repository определяет методы для работы с питомцами в хранилище.
type Repository interface {
	// CreatePet добавляет нового питомца и возвращает его ID.
	CreatePet(ctx context.Context, pet models.Pet) (int, error)
	// GetPet возвращает питомца с тегами по ID.
	GetPet(ctx context.Context, id int) (*models.Pet, error)
	// ListPets возвращает питомцев по фильтру и общее число подходящих записей.
	ListPets(ctx context.Context, filter models.PetFilter) ([]*models.Pet, int, error)
	// UpdatePet перезаписывает данные питомца.
	UpdatePet(ctx context.Context, pet models.Pet) error
	// DeletePet удаляет питомца вместе со связями тегов.
	DeletePet(ctx context.Context, id int) error
	// AssignTag связывает питомца с тегом (идемпотентно).
	AssignTag(ctx context.Context, petID, tagID int) error
	// RemoveTag разрывает связь питомца с тегом.
	RemoveTag(ctx context.Context, petID, tagID int) error
	// ReplaceTags атомарно заменяет набор тегов питомца.
	ReplaceTags(ctx context.Context, petID int, tagIDs []int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CreateInput — нормализованные данные для создания питомца.
type CreateInput struct {
	Name   string
	Type   string
	Age    int
	TagIDs []int
}

// PatchInput — частичное обновление питомца: nil — поле не трогать.
type PatchInput struct {
	Name   *string
	Type   *string
	Age    *int
	TagIDs []int // nil — набор тегов не трогать
}

// ListResult — результат выборки питомцев с метаданными пагинации.
type ListResult struct {
	Pets       []*models.Pet
	Total      int
	TotalPages int
}

// Service реализует бизнес-логику работы с питомцами, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает питомца, при необходимости привязывает теги и возвращает
// его итоговое состояние. Вид питомца приводится к нижнему регистру.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Pet, error) {
	entry := models.Pet{
		Name: strings.TrimSpace(input.Name),
		Type: strings.ToLower(strings.TrimSpace(input.Type)),
		Age:  input.Age,
	}
	id, err := s.repo.CreatePet(ctx, entry)
	if err != nil {
		return nil, err
	}
	if len(input.TagIDs) > 0 {
		if err := s.repo.ReplaceTags(ctx, id, input.TagIDs); err != nil {
			// Привязка тегов не удалась целиком: созданную запись убираем,
			// чтобы операция оставалась атомарной для вызывающего.
			if removeErr := s.repo.DeletePet(ctx, id); removeErr != nil {
				s.log.Error("failed to roll back pet after tag resolution failure",
					slog.Int("id", id), slog.Any("err", removeErr))
			}
			return nil, err
		}
	}
	s.log.Info("created new pet", slog.Int("id", id))
	return s.repo.GetPet(ctx, id)
}

// Get возвращает питомца по ID, используя кеш или репозиторий.
func (s *Service) Get(ctx context.Context, id int) (*models.Pet, error) {
	var result *models.Pet
	cacheKey := cacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetPet(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает питомцев по фильтру. Для пагинированных выборок
// вычисляется число страниц; пустая коллекция даёт одну пустую страницу.
func (s *Service) List(ctx context.Context, filter models.PetFilter) (*ListResult, error) {
	pets, total, err := s.repo.ListPets(ctx, filter)
	if err != nil {
		return nil, err
	}
	if pets == nil {
		pets = []*models.Pet{}
	}
	result := &ListResult{Pets: pets, Total: total}
	if filter.Paginated {
		result.TotalPages = (total + filter.Limit - 1) / filter.Limit
		if result.TotalPages == 0 {
			result.TotalPages = 1
		}
	}
	return result, nil
}

// Update целиком заменяет имя, вид и возраст питомца; набор тегов
// заменяется, только если он передан (семантика PUT без tag_ids
// оставляет теги как есть).
func (s *Service) Update(ctx context.Context, id int, input CreateInput) (*models.Pet, error) {
	entry := models.Pet{
		ID:   id,
		Name: strings.TrimSpace(input.Name),
		Type: strings.ToLower(strings.TrimSpace(input.Type)),
		Age:  input.Age,
	}
	if err := s.repo.UpdatePet(ctx, entry); err != nil {
		return nil, err
	}
	if input.TagIDs != nil {
		if err := s.repo.ReplaceTags(ctx, id, input.TagIDs); err != nil {
			return nil, err
		}
	}
	s.invalidate(id)
	return s.repo.GetPet(ctx, id)
}

// ApplyPatch применяет частичное обновление питомца.
func (s *Service) ApplyPatch(ctx context.Context, id int, patch PatchInput) (*models.Pet, error) {
	current, err := s.repo.GetPet(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		current.Type = strings.ToLower(strings.TrimSpace(*patch.Type))
	}
	if patch.Age != nil {
		current.Age = *patch.Age
	}
	if err := s.repo.UpdatePet(ctx, *current); err != nil {
		return nil, err
	}
	if patch.TagIDs != nil {
		if err := s.repo.ReplaceTags(ctx, id, patch.TagIDs); err != nil {
			return nil, err
		}
	}
	s.invalidate(id)
	return s.repo.GetPet(ctx, id)
}

// Delete удаляет питомца и инвалидирует кеш.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeletePet(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// AssignTag присваивает питомцу тег и возвращает обновлённое состояние.
// Повторное присвоение уже имеющегося тега — no-op.
func (s *Service) AssignTag(ctx context.Context, petID, tagID int) (*models.Pet, error) {
	if err := s.repo.AssignTag(ctx, petID, tagID); err != nil {
		return nil, err
	}
	s.invalidate(petID)
	return s.repo.GetPet(ctx, petID)
}

// RemoveTag снимает тег с питомца.
func (s *Service) RemoveTag(ctx context.Context, petID, tagID int) error {
	if err := s.repo.RemoveTag(ctx, petID, tagID); err != nil {
		return err
	}
	s.invalidate(petID)
	return nil
}

func (s *Service) invalidate(id int) {
	key := cacheKey(id)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), slog.Any("err", err))
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("pet:%d", id)
}
