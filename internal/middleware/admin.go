package middleware

import (
	"net/http"

	"cym-store/internal/admin"
	"cym-store/internal/logger"
	"cym-store/internal/storage"
	"cym-store/internal/utils"

	"go.uber.org/zap"
)

// RequireAdmin lets the request through only when the session's admin flag is
// set. It must run after Session.
func RequireAdmin(backend storage.Backend) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			store, err := storage.Scope(backend, logger.SessionIDFrom(ctx))
			if err != nil {
				utils.WriteJSONError(w, "admin authentication required", http.StatusUnauthorized)
				return
			}

			ok, err := admin.NewSession(store).IsAuthenticated(ctx)
			if err != nil {
				logger.FromCtx(ctx).Error("admin check failed", zap.Error(err))
				utils.WriteJSONError(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !ok {
				utils.WriteJSONError(w, "admin authentication required", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
