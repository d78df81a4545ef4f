// Package userstats реализует сводку по пользователям для суперадмина:
// только идентификатор, email и признак суперадмина.
package userstats

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

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context) ([]models.UserInfo, error)
}

// Stat — одна строка сводки.
type Stat struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	IsSuperadmin bool   `json:"issuperadmin"`
}

// Handler обрабатывает запросы сводки пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка по пользователям
// @Description Возвращает id, email и признак суперадмина по каждому пользователю.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сводка"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /users/user-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	stats := make([]Stat, 0, len(users))
	for _, u := range users {
		stats = append(stats, Stat{ID: u.ID, Email: u.Email, IsSuperadmin: u.IsSuperadmin})
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"users": stats,
	}))
}
