// Package taglist реализует выдачу списка всех тегов.
package taglist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/lib/sl"
	"github.com/magabrotheeeer/pet-registry/internal/models"
)

// Service описывает интерфейс бизнес-логики списка тегов.
type Service interface {
	List(ctx context.Context) ([]*models.Tag, error)
}

// Handler обрабатывает запросы списка тегов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список тегов
// @Description Возвращает все теги, отсортированные по ID.
// @Tags Tags
// @Produce  json
// @Success 200 {object} response.Response "Список тегов"
// @Router /tags [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tags, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list tags", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list tags"))
		return
	}

	log.Info("tags listed", slog.Int("count", len(tags)))
	render.JSON(w, r, response.OKWithData(tags))
}
