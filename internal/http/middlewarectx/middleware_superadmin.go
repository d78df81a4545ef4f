package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pet-registry/internal/http/response"
	"github.com/magabrotheeeer/pet-registry/internal/services/access"
)

// SuperadminMiddleware пропускает дальше только суперадминов.
// Ставится после JWTMiddleware: личность уже должна быть в контексте.
func SuperadminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			actor := access.Actor{UserID: user.ID, IsSuperadmin: user.IsSuperadmin}
			if err := access.Check(actor, access.PolicySuperadmin, 0); err != nil {
				log.Warn("superadmin access denied", slog.Int("user_id", user.ID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied, superadmin only"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
