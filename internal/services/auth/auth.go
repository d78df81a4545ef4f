// Package auth содержит логику бизнес-уровня для регистрации,
// входа и проверки токенов пользователей.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/pet-registry/internal/lib/jwt"
	"github.com/magabrotheeeer/pet-registry/internal/lib/password"
	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Каллеру не сообщается, что именно не совпало.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID или ошибку, если не найден.
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя. Пароль хэшируется ровно один раз,
// здесь; дальше по коду существует только хэш.
func (s *Service) Register(ctx context.Context, email, fullname, rawPassword string) (int, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Email:        email,
		FullName:     fullname,
		PasswordHash: hashed,
		IsSuperadmin: false,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
// При неизвестном email и при неверном пароле возвращается одна и та же
// ошибка ErrInvalidCredentials; токен в этих случаях не выпускается.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.ID)
}

// ValidateToken проверяет JWT и резолвит личность по базе.
// Токен с корректной подписью, но с несуществующим пользователем,
// считается невалидным.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, claims.UserID)
}
