package middleware

import (
	"context"
	"net/http"
	"strings"

	"hrconnect/internal/auth"
	domainauth "hrconnect/internal/domain/auth"
	"hrconnect/internal/requestctx"
	"hrconnect/internal/transport/http/api"
)

// SessionReader exposes the process-wide session user and the id of the
// login that started it.
type SessionReader interface {
	Active() (domainauth.User, string, bool)
}

// Auth attaches the session user to the request when the bearer token is
// valid and was issued by the login that started the current session. Requests without a
// usable token pass through anonymous; guards below decide what that means.
func Auth(secret string, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			user, sid, ok := sessions.Active()
			if !ok || sid == "" || claims.SessionID != sid || user.ID != claims.UserID {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestctx.WithUser(r.Context(), user)))
		})
	}
}

func GetUser(ctx context.Context) (domainauth.User, bool) {
	return requestctx.GetUser(ctx)
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
