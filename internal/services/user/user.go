// Package user содержит логику бизнес-уровня для управления профилями пользователей.
package user

import (
	"context"

	"github.com/magabrotheeeer/pet-registry/internal/lib/password"
	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// Repository описывает контракт хранилища пользователей.
type Repository interface {
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpdateUser перезаписывает данные пользователя.
	UpdateUser(ctx context.Context, user models.User) error
	// DeleteUser удаляет пользователя по ID.
	DeleteUser(ctx context.Context, id int) error
}

// Patch описывает частичное обновление профиля: nil — поле не трогать.
type Patch struct {
	Email        *string
	FullName     *string
	Password     *string
	IsSuperadmin *bool
}

// Service реализует операции над профилями пользователей.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает безопасные представления всех пользователей.
func (s *Service) List(ctx context.Context) ([]models.UserInfo, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		result = append(result, u.Info())
	}
	return result, nil
}

// Update целиком заменяет email, имя и пароль пользователя (семантика PUT).
// Новый пароль хэшируется; признак суперадмина при PUT не меняется.
func (s *Service) Update(ctx context.Context, id int, email, fullname, rawPassword string) (*models.UserInfo, error) {
	current, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	current.Email = email
	current.FullName = fullname
	current.PasswordHash = hashed
	if err := s.repo.UpdateUser(ctx, *current); err != nil {
		return nil, err
	}
	info := current.Info()
	return &info, nil
}

// ApplyPatch применяет частичное обновление профиля (семантика PATCH).
// Поле IsSuperadmin здесь применяется без проверки прав: проверку
// делает обработчик через политику доступа до вызова сервиса.
func (s *Service) ApplyPatch(ctx context.Context, id int, patch Patch) (*models.UserInfo, error) {
	current, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Email != nil {
		current.Email = *patch.Email
	}
	if patch.FullName != nil {
		current.FullName = *patch.FullName
	}
	if patch.Password != nil {
		hashed, err := password.GetHash(*patch.Password)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = hashed
	}
	if patch.IsSuperadmin != nil {
		current.IsSuperadmin = *patch.IsSuperadmin
	}
	if err := s.repo.UpdateUser(ctx, *current); err != nil {
		return nil, err
	}
	info := current.Info()
	return &info, nil
}

// Delete удаляет пользователя. Ссылки его питомцев обнуляются на уровне
// схемы, сами питомцы остаются.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteUser(ctx, id)
}
