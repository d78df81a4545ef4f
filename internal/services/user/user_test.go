package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pet-registry/internal/lib/password"
	"github.com/magabrotheeeer/pet-registry/internal/models"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// MockRepository реализует интерфейс user.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockRepository) UpdateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestList_SanitizesUsers(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo)

	repo.On("ListUsers", mock.Anything).Return([]*models.User{
		{ID: 1, Email: "a@example.com", FullName: "Анна", PasswordHash: "hash-a", IsSuperadmin: true},
		{ID: 2, Email: "b@example.com", FullName: "Борис", PasswordHash: "hash-b"},
	}, nil)

	users, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.True(t, users[0].IsSuperadmin)
	// В безопасном представлении нет хэша пароля вовсе
	assert.Equal(t, models.UserInfo{ID: 2, Email: "b@example.com", FullName: "Борис"}, users[1])
}

func TestUpdate_RehashesPasswordAndKeepsRole(t *testing.T) {
	repo := new(MockRepository)
	service := New(repo)

	current := &models.User{ID: 1, Email: "old@example.com", FullName: "Анна",
		PasswordHash: "old-hash", IsSuperadmin: true}
	repo.On("GetUser", mock.Anything, 1).Return(current, nil)

	var stored models.User
	repo.On("UpdateUser", mock.Anything, mock.AnythingOfType("models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(models.User)
		}).
		Return(nil)

	info, err := service.Update(context.Background(), 1, "new@example.com", "Анна Иванова", "NewPass1!")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", stored.Email)
	assert.NotEqual(t, "NewPass1!", stored.PasswordHash)
	assert.NoError(t, password.CompareHash(stored.PasswordHash, "NewPass1!"))
	// PUT не меняет признак суперадмина
	assert.True(t, stored.IsSuperadmin)
	assert.Equal(t, "new@example.com", info.Email)
	repo.AssertExpectations(t)
}

func TestApplyPatch(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	t.Run("меняются только переданные поля", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo)

		current := &models.User{ID: 1, Email: "old@example.com", FullName: "Анна", PasswordHash: "old-hash"}
		repo.On("GetUser", mock.Anything, 1).Return(current, nil)

		var stored models.User
		repo.On("UpdateUser", mock.Anything, mock.AnythingOfType("models.User")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(models.User)
			}).
			Return(nil)

		_, err := service.ApplyPatch(context.Background(), 1, Patch{FullName: strPtr("Анна Иванова")})
		require.NoError(t, err)
		assert.Equal(t, "old@example.com", stored.Email)
		assert.Equal(t, "Анна Иванова", stored.FullName)
		assert.Equal(t, "old-hash", stored.PasswordHash)
	})

	t.Run("признак суперадмина применяется как есть", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo)

		current := &models.User{ID: 1, Email: "old@example.com", FullName: "Анна"}
		repo.On("GetUser", mock.Anything, 1).Return(current, nil)
		repo.On("UpdateUser", mock.Anything, mock.AnythingOfType("models.User")).Return(nil)

		info, err := service.ApplyPatch(context.Background(), 1, Patch{IsSuperadmin: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, info.IsSuperadmin)
	})

	t.Run("несуществующий пользователь", func(t *testing.T) {
		repo := new(MockRepository)
		service := New(repo)

		repo.On("GetUser", mock.Anything, 99).Return(nil, repository.ErrNotFound)

		info, err := service.ApplyPatch(context.Background(), 99, Patch{FullName: strPtr("Кто-то")})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, info)
	})
}
