// Package tagcreate реализует HTTP-обработчик создания тега.
package tagcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/lib/sl"
	"github.com/magabrotheeeer/pet-registry/internal/lib/validation"
	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// Request — входные данные для создания тега.
type Request struct {
	Name string `json:"name" validate:"required"`
}

// Service описывает интерфейс бизнес-логики создания тега.
type Service interface {
	Create(ctx context.Context, name string) (*models.Tag, error)
}

// Handler обрабатывает HTTP-запросы создания тега.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать тег
// @Description Создает тег с обрезанным по краям именем.
// @Tags Tags
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя нового тега"
// @Success 201 {object} response.Response "Созданный тег"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Router /tags [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		log.Error("tag name is blank")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ErrorWithDetails("validation failed", []string{"field name is required"}))
		return
	}
	log.Info("all fields are validated")

	tag, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		log.Error("failed to create tag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create tag"))
		return
	}

	log.Info("tag created", slog.Int("id", tag.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(tag))
}
