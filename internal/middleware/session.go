package middleware

import (
	"context"
	"net/http"
	"time"

	"cym-store/internal/auth"
	"cym-store/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionTokenHeader echoes the token for clients that do not keep cookies.
const SessionTokenHeader = "X-Session-Token"

const sessionCookieMaxAge = 365 * 24 * time.Hour

type ctxKey int

const issuedSessionKey ctxKey = iota

// sessionIssued reports whether Session started the session on this request
// instead of resuming one the client presented.
func sessionIssued(ctx context.Context) bool {
	issued, _ := ctx.Value(issuedSessionKey).(bool)
	return issued
}

// Session resolves the browser session from its signed token. A missing or
// invalid token starts a new session and sets a fresh cookie. The session id
// is stored in the request context for the storage scope and the logs.
func Session(issuer *auth.Issuer, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sessionID string
			if token := auth.ExtractSessionToken(r); token != "" {
				id, err := issuer.Parse(token)
				if err == nil {
					sessionID = id
				} else {
					logger.FromCtx(ctx).Debug("discarding session token", zap.Error(err))
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				token, err := issuer.Issue(sessionID)
				if err != nil {
					logger.FromCtx(ctx).Error("failed to issue session token", zap.Error(err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     auth.SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(sessionCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(SessionTokenHeader, token)
				ctx = context.WithValue(ctx, issuedSessionKey, true)
			}

			ctx = logger.WithSessionID(ctx, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
