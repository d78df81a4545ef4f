// Package petpatch реализует частичное обновление питомца (PATCH).
// Непереданные поля не трогаются; переданные проходят те же границы,
// что и при создании.
package petpatch

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
	petservice "github.com/magabrotheeeer/pet-registry/internal/services/pet"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// Request — частичное обновление питомца: nil-поля не трогаются.
type Request struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=50"`
	Type   *string `json:"type" validate:"omitempty,pettype"`
	Age    *int    `json:"age" validate:"omitempty,gte=0,lte=30"`
	TagIDs []int   `json:"tag_ids" validate:"omitempty,dive,gt=0"`
}

// Service описывает интерфейс бизнес-логики частичного обновления питомца.
type Service interface {
	ApplyPatch(ctx context.Context, id int, patch petservice.PatchInput) (*models.Pet, error)
}

// Handler обрабатывает PATCH-запросы питомца.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Частичное обновление питомца
// @Description Меняет только переданные поля питомца.
// @Tags Pets
// @Accept  json
// @Produce  json
// @Param id path int true "ID питомца"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённый питомец"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Питомец или тег не найден"
// @Router /pets/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.patch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		log.Error("invalid pet id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid pet id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	pet, err := h.service.ApplyPatch(r.Context(), id, petservice.PatchInput{
		Name:   req.Name,
		Type:   req.Type,
		Age:    req.Age,
		TagIDs: req.TagIDs,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("pet or tag not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("pet not found"))
			return
		}
		log.Error("failed to patch pet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update pet"))
		return
	}

	log.Info("pet patched", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(pet))
}
