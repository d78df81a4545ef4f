// Package petcreate реализует HTTP-обработчик создания питомца.
//
// Handler принимает JSON с именем, видом и возрастом питомца и необязательным
// набором ID тегов. Вид приводится к нижнему регистру; если хотя бы один
// тег не существует, операция отклоняется целиком.
package petcreate

import (
	"context"
	"encoding/json"
	"errors"
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
	petservice "github.com/magabrotheeeer/pet-registry/internal/services/pet"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// Request — входные данные для создания питомца.
// Возраст принимается указателем, чтобы отличать 0 от отсутствия поля.
type Request struct {
	Name   string `json:"name" validate:"required,min=2,max=50"`
	Type   string `json:"type" validate:"required,pettype"`
	Age    *int   `json:"age" validate:"required,gte=0,lte=30"`
	TagIDs []int  `json:"tag_ids" validate:"omitempty,dive,gt=0"`
}

// Service описывает интерфейс бизнес-логики создания питомца.
type Service interface {
	Create(ctx context.Context, input petservice.CreateInput) (*models.Pet, error)
}

// Handler обрабатывает HTTP-запросы создания питомца.
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
// @Summary Создать питомца
// @Description Создает питомца, при необходимости сразу привязывая теги.
// @Tags Pets
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового питомца"
// @Success 201 {object} response.Response "Созданный питомец"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Тег не найден"
// @Router /pets [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.create"

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
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	pet, err := h.service.Create(r.Context(), petservice.CreateInput{
		Name:   req.Name,
		Type:   req.Type,
		Age:    *req.Age,
		TagIDs: req.TagIDs,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("tag not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("tag not found"))
			return
		}
		log.Error("failed to create pet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create pet"))
		return
	}

	log.Info("pet created", slog.Int("id", pet.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(pet))
}
