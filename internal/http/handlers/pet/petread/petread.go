// Package petread реализует HTTP-обработчик чтения питомца по ID.
package petread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/lib/sl"
	"github.com/magabrotheeeer/pet-registry/internal/models"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения питомца.
type Service interface {
	Get(ctx context.Context, id int) (*models.Pet, error)
}

// Handler обрабатывает запросы чтения питомца.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Питомец по ID
// @Description Возвращает питомца вместе с его тегами.
// @Tags Pets
// @Produce  json
// @Param id path int true "ID питомца"
// @Success 200 {object} response.Response "Питомец"
// @Failure 400 {object} response.ErrorResponse "Невалидный ID"
// @Failure 404 {object} response.ErrorResponse "Питомец не найден"
// @Router /pets/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.read"

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

	pet, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("pet not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("pet not found"))
			return
		}
		log.Error("failed to read pet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(pet))
}
