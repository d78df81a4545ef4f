package pet

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pet-registry/internal/models"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// MockRepository реализует интерфейс pet.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePet(ctx context.Context, pet models.Pet) (int, error) {
	args := m.Called(ctx, pet)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetPet(ctx context.Context, id int) (*models.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockRepository) ListPets(ctx context.Context, filter models.PetFilter) ([]*models.Pet, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Pet), args.Int(1), args.Error(2)
}

func (m *MockRepository) UpdatePet(ctx context.Context, pet models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockRepository) DeletePet(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) AssignTag(ctx context.Context, petID, tagID int) error {
	args := m.Called(ctx, petID, tagID)
	return args.Error(0)
}

func (m *MockRepository) RemoveTag(ctx context.Context, petID, tagID int) error {
	args := m.Called(ctx, petID, tagID)
	return args.Error(0)
}

func (m *MockRepository) ReplaceTags(ctx context.Context, petID int, tagIDs []int) error {
	args := m.Called(ctx, petID, tagIDs)
	return args.Error(0)
}

// MockCache реализует интерфейс pet.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *MockRepository, cache *MockCache) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(repo, cache, logger)
}

func TestCreate_NormalizesType(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	service := newTestService(repo, cache)

	created := &models.Pet{ID: 1, Name: "Барсик", Type: "cat", Age: 3, Tags: []models.Tag{}}
	repo.On("CreatePet", mock.Anything, models.Pet{Name: "Барсик", Type: "cat", Age: 3}).
		Return(1, nil)
	repo.On("GetPet", mock.Anything, 1).Return(created, nil)

	pet, err := service.Create(context.Background(), CreateInput{
		Name: "  Барсик ",
		Type: "CAT",
		Age:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "cat", pet.Type)
	repo.AssertExpectations(t)
}

func TestCreate_UnknownTagRollsBackPet(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	service := newTestService(repo, cache)

	repo.On("CreatePet", mock.Anything, mock.AnythingOfType("models.Pet")).Return(5, nil)
	repo.On("ReplaceTags", mock.Anything, 5, []int{1, 99}).Return(repository.ErrTagNotFound)
	repo.On("DeletePet", mock.Anything, 5).Return(nil)

	pet, err := service.Create(context.Background(), CreateInput{
		Name:   "Шарик",
		Type:   "dog",
		Age:    2,
		TagIDs: []int{1, 99},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, pet)
	// Созданная запись убрана, частичного результата не остаётся
	repo.AssertCalled(t, "DeletePet", mock.Anything, 5)
	repo.AssertExpectations(t)
}

func TestGet_CacheHitSkipsRepository(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	service := newTestService(repo, cache)

	cached := &models.Pet{ID: 7, Name: "Кеша", Type: "bird", Age: 1}
	cache.On("Get", "pet:7", mock.Anything).
		Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.Pet)
			*ptr = cached
		}).
		Return(true, nil)

	pet, err := service.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Кеша", pet.Name)
	repo.AssertNotCalled(t, "GetPet", mock.Anything, 7)
}

func TestGet_CacheMissFallsThrough(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	service := newTestService(repo, cache)

	stored := &models.Pet{ID: 7, Name: "Кеша", Type: "bird", Age: 1}
	cache.On("Get", "pet:7", mock.Anything).Return(false, nil)
	repo.On("GetPet", mock.Anything, 7).Return(stored, nil)
	cache.On("Set", "pet:7", stored, time.Hour).Return(nil)

	pet, err := service.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, pet.ID)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestList_TotalPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
		paginated bool
	}{
		{"ровное деление", 20, 10, 2, true},
		{"остаток добавляет страницу", 21, 10, 3, true},
		{"пустая коллекция даёт одну страницу", 0, 10, 1, true},
		{"без пагинации страницы не считаются", 20, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			service := newTestService(repo, cache)

			filter := models.PetFilter{Page: 1, Limit: tt.limit, Paginated: tt.paginated}
			repo.On("ListPets", mock.Anything, filter).Return([]*models.Pet{}, tt.total, nil)

			result, err := service.List(context.Background(), filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, result.Total)
			assert.Equal(t, tt.wantPages, result.TotalPages)
			assert.NotNil(t, result.Pets)
		})
	}
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	service := newTestService(repo, cache)

	repo.On("DeletePet", mock.Anything, 3).Return(nil)
	cache.On("Invalidate", "pet:3").Return(nil)

	require.NoError(t, service.Delete(context.Background(), 3))
	cache.AssertCalled(t, "Invalidate", "pet:3")
}

func TestAssignTag_ReturnsRefreshedPet(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	service := newTestService(repo, cache)

	refreshed := &models.Pet{ID: 3, Name: "Шарик", Type: "dog", Age: 2,
		Tags: []models.Tag{{ID: 1, Name: "vaccinated"}}}
	repo.On("AssignTag", mock.Anything, 3, 1).Return(nil)
	cache.On("Invalidate", "pet:3").Return(nil)
	repo.On("GetPet", mock.Anything, 3).Return(refreshed, nil)

	pet, err := service.AssignTag(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Len(t, pet.Tags, 1)
	repo.AssertExpectations(t)
}

func TestApplyPatch_TagSetSemantics(t *testing.T) {
	current := models.Pet{ID: 5, Name: "Барсик", Type: "cat", Age: 3,
		Tags: []models.Tag{{ID: 1, Name: "vaccinated"}}}

	t.Run("пустой набор очищает теги", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		service := newTestService(repo, cache)

		snapshot := current
		repo.On("GetPet", mock.Anything, 5).Return(&snapshot, nil)
		repo.On("UpdatePet", mock.Anything, mock.Anything).Return(nil)
		repo.On("ReplaceTags", mock.Anything, 5, []int{}).Return(nil)
		cache.On("Invalidate", "pet:5").Return(nil)

		_, err := service.ApplyPatch(context.Background(), 5, PatchInput{TagIDs: []int{}})
		require.NoError(t, err)
		repo.AssertCalled(t, "ReplaceTags", mock.Anything, 5, []int{})
	})

	t.Run("nil набор оставляет теги как есть", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)
		service := newTestService(repo, cache)

		age := 4
		snapshot := current
		repo.On("GetPet", mock.Anything, 5).Return(&snapshot, nil)
		repo.On("UpdatePet", mock.Anything, mock.Anything).Return(nil)
		cache.On("Invalidate", "pet:5").Return(nil)

		_, err := service.ApplyPatch(context.Background(), 5, PatchInput{Age: &age})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
	})
}
