package middleware

import (
	"context"
	"net/http"

	"auth-api/internal/auth"
	"auth-api/internal/logger"
	"auth-api/internal/user"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// PrincipalFromContext extracts the authenticated user from context.
func PrincipalFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(principalKey).(*user.User)
	return u, ok
}

type AuthMiddleware struct {
	Facade *auth.Facade
}

func NewAuthMiddleware(facade *auth.Facade) *AuthMiddleware {
	return &AuthMiddleware{Facade: facade}
}

// RequireAuth guards a handler with the bound strategy. Paths excluded
// by the matcher pass through untouched. A request with no credential
// material at all gets 401; one whose credentials do not resolve gets
// 403; a backend failure gets 500, never a silent 403.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Facade.RequiresAuth(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		strategy := a.Facade.Strategy()

		if !strategy.Supports(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		principal, err := strategy.CurrentPrincipal(r.Context(), r)
		if err != nil {
			if auth.Absent(err) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			logger.Error("principal resolution failed", map[string]any{
				"strategy": strategy.Name(),
				"error":    err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
