// Package tagupdate реализует полное обновление тега.
package tagupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/lib/sl"
	"github.com/magabrotheeeer/pet-registry/internal/lib/validation"
	"github.com/magabrotheeeer/pet-registry/internal/models"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// Request — входные данные для переименования тега.
type Request struct {
	Name string `json:"name" validate:"required"`
}

// Service описывает интерфейс бизнес-логики обновления тега.
type Service interface {
	Update(ctx context.Context, id int, name string) (*models.Tag, error)
}

// Handler обрабатывает PUT-запросы тега.
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
// @Summary Переименовать тег
// @Description Полностью заменяет имя тега по ID.
// @Tags Tags
// @Accept  json
// @Produce  json
// @Param id path int true "ID тега"
// @Param request body Request true "Новое имя тега"
// @Success 200 {object} response.Response "Обновлённый тег"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Тег не найден"
// @Router /tags/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		log.Error("invalid tag id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid tag id"))
		return
	}

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

	tag, err := h.service.Update(r.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("tag not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("tag not found"))
			return
		}
		log.Error("failed to update tag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update tag"))
		return
	}

	log.Info("tag updated", slog.Int("id", tag.ID))
	render.JSON(w, r, response.OKWithData(tag))
}
