package userpatch

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pet-registry/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pet-registry/internal/models"
	"github.com/magabrotheeeer/pet-registry/internal/services/user"
)

// MockService реализует интерфейс userpatch.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ApplyPatch(ctx context.Context, id int, patch user.Patch) (*models.UserInfo, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserInfo), args.Error(1)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUserPatchHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		targetID       string
		actor          *models.User
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "владелец меняет имя",
			targetID:    "1",
			actor:       &models.User{ID: 1},
			requestBody: Request{FullName: strPtr("Анна Иванова")},
			setupMock: func(m *MockService) {
				m.On("ApplyPatch", mock.Anything, 1, user.Patch{FullName: strPtr("Анна Иванова")}).
					Return(&models.UserInfo{ID: 1, FullName: "Анна Иванова"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"user updated successfully"`,
		},
		{
			name:           "пустой PATCH отклоняется",
			targetID:       "1",
			actor:          &models.User{ID: 1},
			requestBody:    Request{},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `at least one field is required`,
		},
		{
			name:           "самоповышение прав отклоняется",
			targetID:       "1",
			actor:          &models.User{ID: 1},
			requestBody:    Request{IsSuperadmin: boolPtr(true)},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"access denied"`,
		},
		{
			name:        "суперадмин выдаёт права",
			targetID:    "2",
			actor:       &models.User{ID: 1, IsSuperadmin: true},
			requestBody: Request{IsSuperadmin: boolPtr(true)},
			setupMock: func(m *MockService) {
				m.On("ApplyPatch", mock.Anything, 2, user.Patch{IsSuperadmin: boolPtr(true)}).
					Return(&models.UserInfo{ID: 2, IsSuperadmin: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"issuperadmin":true`,
		},
		{
			name:           "чужой профиль без прав",
			targetID:       "2",
			actor:          &models.User{ID: 1},
			requestBody:    Request{FullName: strPtr("Кто-то")},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"access denied"`,
		},
		{
			name:           "слабый пароль в PATCH",
			targetID:       "1",
			actor:          &models.User{ID: 1},
			requestBody:    Request{Password: strPtr("password")},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password must be at least 8 characters`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPatch, "/users/"+tt.targetID, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.actor != nil {
				ctx = context.WithValue(ctx, middlewarectx.CurrentUser, tt.actor)
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.targetID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
