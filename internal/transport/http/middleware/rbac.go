package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"hrconnect/internal/transport/http/api"
)

// PermissionStore answers whether a role holds a permission. The casbin
// backed auth.Authorizer is the production implementation.
type PermissionStore interface {
	HasPermission(role, permission string) (bool, error)
}

// RequirePermission lets the request through only when the signed-in user's
// role holds permission.
func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return RequireAnyPermission(store, permission)
}

// RequireAnyPermission lets the request through when the role holds at least
// one of permissions. A 403 lists what would have been accepted.
func RequireAnyPermission(store PermissionStore, permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
				return
			}

			for _, permission := range permissions {
				allowed, err := store.HasPermission(user.Role, permission)
				if err != nil {
					zap.L().Error("permission check failed",
						zap.String("role", user.Role),
						zap.String("permission", permission),
						zap.String("requestId", requestID),
						zap.Error(err),
					)
					api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", requestID)
					return
				}
				if allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			zap.L().Debug("permission denied",
				zap.Int64("userId", user.ID),
				zap.String("role", user.Role),
				zap.String("required", strings.Join(permissions, "|")),
				zap.String("path", r.URL.Path),
			)
			api.FailWithDetails(w, http.StatusForbidden, "forbidden", "insufficient permissions",
				map[string]any{"required": permissions}, requestID)
		})
	}
}
