package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, fullname, rawPassword string) (int, error) {
	args := m.Called(ctx, email, fullname, rawPassword)
	return args.Int(0), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			requestBody: Request{
				Email:    "user@example.com",
				Password: "Password1!",
				FullName: "Иван Петров",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user@example.com", "Иван Петров", "Password1!").
					Return(1, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"message":"user registered successfully"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "слабый пароль",
			requestBody: Request{
				Email:    "user@example.com",
				Password: "password",
				FullName: "Иван Петров",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password must be at least 8 characters`,
		},
		{
			name: "некорректный email",
			requestBody: Request{
				Email:    "not-an-email",
				Password: "Password1!",
				FullName: "Иван Петров",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "слишком короткое имя",
			requestBody: Request{
				Email:    "user@example.com",
				Password: "Password1!",
				FullName: "И",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field FullName is shorter than the allowed minimum`,
		},
		{
			name: "дубликат email",
			requestBody: Request{
				Email:    "user@example.com",
				Password: "Password1!",
				FullName: "Иван Петров",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user@example.com", "Иван Петров", "Password1!").
					Return(0, repository.ErrEmailTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"details":["email must be unique"]`,
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Email:    "user@example.com",
				Password: "Password1!",
				FullName: "Иван Петров",
			},
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user@example.com", "Иван Петров", "Password1!").
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
