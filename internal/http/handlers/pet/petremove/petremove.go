// Package petremove реализует удаление питомца.
// Связи с тегами снимаются в одной транзакции с удалением записи.
package petremove

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

// Service описывает интерфейс бизнес-логики удаления питомца.
type Service interface {
	Delete(ctx context.Context, id int) error
}

// Handler обрабатывает DELETE-запросы питомца.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление питомца
// @Description Удаляет питомца вместе со связями тегов.
// @Tags Pets
// @Param id path int true "ID питомца"
// @Success 204 "Питомец удалён"
// @Failure 400 {object} response.ErrorResponse "Невалидный ID"
// @Failure 404 {object} response.ErrorResponse "Питомец не найден"
// @Router /pets/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.remove"

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

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("pet not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("pet not found"))
			return
		}
		log.Error("failed to delete pet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete pet"))
		return
	}

	log.Info("pet deleted", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
