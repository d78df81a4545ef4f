// Package petlist реализует HTTP-обработчик списка питомцев
// с необязательной пагинацией и фильтром по виду.
//
// Невалидные параметры пагинации — ошибка валидации, а не молчаливый
// дефолт: page и limit обязаны быть положительными целыми и приходить парой.
package petlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/lib/sl"
	"github.com/magabrotheeeer/pet-registry/internal/models"
	petservice "github.com/magabrotheeeer/pet-registry/internal/services/pet"
)

// Service описывает интерфейс бизнес-логики списка питомцев.
type Service interface {
	List(ctx context.Context, filter models.PetFilter) (*petservice.ListResult, error)
}

// Handler обрабатывает запросы списка питомцев.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список питомцев
// @Description Возвращает питомцев с тегами. Поддерживает фильтр по виду и пагинацию.
// @Tags Pets
// @Produce  json
// @Param type query string false "Вид питомца (без учёта регистра)"
// @Param page query int false "Номер страницы, начиная с 1"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} response.Response "Список питомцев"
// @Failure 400 {object} response.ErrorResponse "Невалидные параметры пагинации"
// @Router /pets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pet.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.PetFilter{
		Type: strings.TrimSpace(r.URL.Query().Get("type")),
	}

	pageStr := r.URL.Query().Get("page")
	limitStr := r.URL.Query().Get("limit")
	if pageStr != "" || limitStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			log.Error("invalid page parameter", slog.String("page", pageStr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ErrorWithDetails("validation error",
				[]string{"page must be a positive integer"}))
			return
		}
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			log.Error("invalid limit parameter", slog.String("limit", limitStr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ErrorWithDetails("validation error",
				[]string{"limit must be a positive integer"}))
			return
		}
		filter.Page = page
		filter.Limit = limit
		filter.Paginated = true
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list pets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list pets"))
		return
	}

	log.Info("list pets", slog.Int("count", len(result.Pets)), slog.Int("total", result.Total))
	data := map[string]any{
		"pets":  result.Pets,
		"total": result.Total,
	}
	if filter.Paginated {
		data["page"] = filter.Page
		data["limit"] = filter.Limit
		data["total_pages"] = result.TotalPages
	}
	render.JSON(w, r, response.OKWithData(data))
}
