// Package tagunassign реализует снятие тега с питомца.
package tagunassign

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
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики снятия тега.
type Service interface {
	RemoveTag(ctx context.Context, petID, tagID int) error
}

// Handler обрабатывает запросы снятия тега с питомца.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Снять тег с питомца
// @Description Разрывает связь питомца с тегом.
// @Tags Pets
// @Produce  json
// @Param petId path int true "ID питомца"
// @Param tagId path int true "ID тега"
// @Success 204 "Тег снят"
// @Failure 400 {object} response.ErrorResponse "Невалидные ID"
// @Failure 404 {object} response.ErrorResponse "Питомец или тег не найден"
// @Router /pets/{petId}/tags/{tagId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.tagunassign"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	petID, err := strconv.Atoi(chi.URLParam(r, "petId"))
	tagID, err2 := strconv.Atoi(chi.URLParam(r, "tagId"))
	if err != nil || err2 != nil || petID < 1 || tagID < 1 {
		log.Error("invalid pet id or tag id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid pet id or tag id"))
		return
	}

	if err := h.service.RemoveTag(r.Context(), petID, tagID); err != nil {
		switch {
		case errors.Is(err, repository.ErrTagNotFound):
			log.Error("tag not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("tag not found"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("pet not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("pet not found"))
		default:
			log.Error("failed to remove tag", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not remove tag"))
		}
		return
	}

	log.Info("tag removed", slog.Int("pet_id", petID), slog.Int("tag_id", tagID))
	w.WriteHeader(http.StatusNoContent)
}
