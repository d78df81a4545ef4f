// Package petregistry предоставляет маршруты для основного приложения.
package petregistry

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/petcreate"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/petlist"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/petpatch"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/petread"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/petremove"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/petupdate"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/tagassign"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/pet/tagunassign"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/tag/tagcreate"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/tag/taglist"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/tag/tagpatch"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/tag/tagremove"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/tag/tagupdate"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/user/userlist"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/user/userpatch"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/user/userremove"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/user/userstats"
	"github.com/magabrotheeeer/pet-registry/internal/http/handlers/user/userupdate"
	"github.com/magabrotheeeer/pet-registry/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/pet-registry/internal/services/auth"
	petservice "github.com/magabrotheeeer/pet-registry/internal/services/pet"
	tagservice "github.com/magabrotheeeer/pet-registry/internal/services/tag"
	userservice "github.com/magabrotheeeer/pet-registry/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authSvc *authservice.Service, userSvc *userservice.Service,
	petSvc *petservice.Service, tagSvc *tagservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки регистрации и входа под лимитером
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/users/register", register.New(logger, authSvc).ServeHTTP)
		r.Post("/users/login", login.New(logger, authSvc).ServeHTTP)
	})

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authSvc, logger))
		r.Put("/users/{id}", userupdate.New(logger, userSvc).ServeHTTP)
		r.Patch("/users/{id}", userpatch.New(logger, userSvc).ServeHTTP)
		r.Delete("/users/{id}", userremove.New(logger, userSvc).ServeHTTP)

		// Только для суперадминистратора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SuperadminMiddleware(logger))
			r.Get("/users", userlist.New(logger, userSvc).ServeHTTP)
			r.Get("/users/user-stats", userstats.New(logger, userSvc).ServeHTTP)
		})
	})

	// Питомцы и теги открыты без аутентификации
	r.Get("/pets", petlist.New(logger, petSvc).ServeHTTP)
	r.Post("/pets", petcreate.New(logger, petSvc).ServeHTTP)
	r.Get("/pets/{id}", petread.New(logger, petSvc).ServeHTTP)
	r.Put("/pets/{id}", petupdate.New(logger, petSvc).ServeHTTP)
	r.Patch("/pets/{id}", petpatch.New(logger, petSvc).ServeHTTP)
	r.Delete("/pets/{id}", petremove.New(logger, petSvc).ServeHTTP)
	r.Post("/pets/{petId}/tags/{tagId}", tagassign.New(logger, petSvc).ServeHTTP)
	r.Delete("/pets/{petId}/tags/{tagId}", tagunassign.New(logger, petSvc).ServeHTTP)

	r.Get("/tags", taglist.New(logger, tagSvc).ServeHTTP)
	r.Post("/tags", tagcreate.New(logger, tagSvc).ServeHTTP)
	r.Put("/tags/{id}", tagupdate.New(logger, tagSvc).ServeHTTP)
	r.Patch("/tags/{id}", tagpatch.New(logger, tagSvc).ServeHTTP)
	r.Delete("/tags/{id}", tagremove.New(logger, tagSvc).ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
