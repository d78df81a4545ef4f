// Package petregistry собирает приложение: хранилище, миграции, кеш,
// сервисы, маршруты и HTTP-сервер с плавной остановкой.
package petregistry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/pet-registry/internal/cache"
	"github.com/magabrotheeeer/pet-registry/internal/config"
	"github.com/magabrotheeeer/pet-registry/internal/lib/jwt"
	"github.com/magabrotheeeer/pet-registry/internal/migrations"
	authservice "github.com/magabrotheeeer/pet-registry/internal/services/auth"
	petservice "github.com/magabrotheeeer/pet-registry/internal/services/pet"
	tagservice "github.com/magabrotheeeer/pet-registry/internal/services/tag"
	userservice "github.com/magabrotheeeer/pet-registry/internal/services/user"
	"github.com/magabrotheeeer/pet-registry/internal/storage/repository"
)

// App содержит собранное приложение и его ресурсы.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует хранилище, применяет миграции, подключает кеш,
// собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSvc := authservice.New(db, jwtMaker)
	userSvc := userservice.New(db)
	petSvc := petservice.New(db, cacheRedis, logger)
	tagSvc := tagservice.New(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authSvc, userSvc, petSvc, tagSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
