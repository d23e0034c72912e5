package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/services"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/httpapi"
)

// Authorize resolves the session cookie to a user and attaches it to the
// context. Requests without a valid session pass through unauthenticated;
// RequireAuth is the gate.
func Authorize(authService *services.AuthService) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(conf.SidCookieKey)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			u, _, err := authService.Authorize(r.Context(), cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithUser(r.Context(), u)))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated user.
func RequireAuth() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := composables.UseUser(r.Context()); err != nil {
				httpapi.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles rejects authenticated users whose role is not in the allowed
// set.
func RequireRoles(roles ...user.Role) mux.MiddlewareFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := composables.UseUser(r.Context())
			if err != nil {
				httpapi.WriteError(w, r, err)
				return
			}
			if _, ok := allowed[u.Role()]; !ok {
				httpapi.WriteError(w, r, composables.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
