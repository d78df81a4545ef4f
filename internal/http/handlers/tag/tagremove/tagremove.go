// Package tagremove реализует удаление тега.
// Связи с питомцами снимаются каскадом на уровне схемы.
package tagremove

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

// Service описывает интерфейс бизнес-логики удаления тега.
type Service interface {
	Delete(ctx context.Context, id int) error
}

// Handler обрабатывает DELETE-запросы тега.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить тег
// @Description Удаляет тег и снимает его со всех питомцев.
// @Tags Tags
// @Param id path int true "ID тега"
// @Success 204 "Тег удалён"
// @Failure 400 {object} response.ErrorResponse "Невалидный ID"
// @Failure 404 {object} response.ErrorResponse "Тег не найден"
// @Router /tags/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.remove"

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

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("tag not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("tag not found"))
			return
		}
		log.Error("failed to delete tag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete tag"))
		return
	}

	log.Info("tag deleted", slog.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
