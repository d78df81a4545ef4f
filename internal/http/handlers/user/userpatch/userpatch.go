// Package userpatch реализует частичное обновление профиля пользователя (PATCH).
//
// Доступ: сам пользователь либо суперадмин. Поле issuperadmin принимается
// только от суперадмина: попытка поднять права себе или другому без
// соответствующих прав отклоняется с 403, а не игнорируется молча.
package userpatch

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

	"github.com/magabrotheeeer/pet-registry/internal/http/middlewarectx"
	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/lib/sl"
	"github.com/magabrotheeeer/pet-registry/internal/lib/validation"
	"github.com/magabrotheeeer/pet-registry/internal/models"
	"github.com/magabrotheeeer/pet-registry/internal/services/access"
	"github.com/magabrotheeeer/pet-registry/internal/services/user"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// Request — частичное обновление профиля: nil-поля не трогаются.
type Request struct {
	Email        *string `json:"email" validate:"omitempty,email"`
	Password     *string `json:"password" validate:"omitempty,strongpassword"`
	FullName     *string `json:"fullname" validate:"omitempty,min=2,max=100"`
	IsSuperadmin *bool   `json:"issuperadmin"`
}

func (r Request) empty() bool {
	return r.Email == nil && r.Password == nil && r.FullName == nil && r.IsSuperadmin == nil
}

// Service описывает интерфейс бизнес-логики частичного обновления профиля.
type Service interface {
	ApplyPatch(ctx context.Context, id int, patch user.Patch) (*models.UserInfo, error)
}

// Handler обрабатывает PATCH-запросы профиля пользователя.
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
// @Summary Частичное обновление профиля пользователя
// @Description Меняет переданные поля профиля. Поле issuperadmin доступно только суперадмину.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param request body Request true "Изменяемые поля"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.patch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	targetID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	if err := access.Check(access.Actor{UserID: actor.ID, IsSuperadmin: actor.IsSuperadmin},
		access.PolicySelfOrSuperadmin, targetID); err != nil {
		log.Warn("access denied", slog.Int("actor_id", actor.ID), slog.Int("target_id", targetID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if req.empty() {
		log.Error("empty patch request")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ErrorWithDetails("validation error",
			[]string{"at least one field is required"}))
		return
	}
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	// Правка признака суперадмина — отдельная политика: её требует
	// само поле, а не маршрут.
	if req.IsSuperadmin != nil {
		if err := access.Check(access.Actor{UserID: actor.ID, IsSuperadmin: actor.IsSuperadmin},
			access.PolicySuperadmin, 0); err != nil {
			log.Warn("privilege escalation attempt denied", slog.Int("actor_id", actor.ID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
			return
		}
	}

	info, err := h.service.ApplyPatch(r.Context(), targetID, user.Patch{
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     req.Password,
		IsSuperadmin: req.IsSuperadmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Error("user not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, repository.ErrEmailTaken):
			log.Error("duplicate email", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ErrorWithDetails("validation error",
				[]string{"email must be unique"}))
		default:
			log.Error("failed to patch user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal server error"))
		}
		return
	}

	log.Info("user patched", slog.Int("id", targetID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "user updated successfully",
		"user":    info,
	}))
}
