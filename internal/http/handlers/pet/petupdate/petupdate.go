// Package petupdate реализует полную замену данных питомца (PUT).
package petupdate

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

// Request — входные данные для полной замены питомца.
type Request struct {
	Name   string `json:"name" validate:"required,min=2,max=50"`
	Type   string `json:"type" validate:"required,pettype"`
	Age    *int   `json:"age" validate:"required,gte=0,lte=30"`
	TagIDs []int  `json:"tag_ids" validate:"omitempty,dive,gt=0"`
}

// Service описывает интерфейс бизнес-логики обновления питомца.
type Service interface {
	Update(ctx context.Context, id int, input petservice.CreateInput) (*models.Pet, error)
}

// Handler обрабатывает PUT-запросы питомца.
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
// @Summary Полная замена питомца
// @Description Заменяет имя, вид и возраст питомца. Набор тегов меняется, только если передан.
// @Tags Pets
// @Accept  json
// @Produce  json
// @Param id path int true "ID питомца"
// @Param request body Request true "Новые данные питомца"
// @Success 200 {object} response.Response "Обновлённый питомец"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Питомец или тег не найден"
// @Router /pets/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.update"

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
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	pet, err := h.service.Update(r.Context(), id, petservice.CreateInput{
		Name:   req.Name,
		Type:   req.Type,
		Age:    *req.Age,
		TagIDs: req.TagIDs,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("pet or tag not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("pet not found"))
			return
		}
		log.Error("failed to update pet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update pet"))
		return
	}

	log.Info("pet updated", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(pet))
}
