package authz

import (
	"log/slog"
	"net/http"
)

// Require only lets requests through when the role attached to their
// context is one of the given roles.
func Require(forbidden http.Handler, roles ...Role) func(http.Handler) http.Handler {
	if forbidden == nil {
		forbidden = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			role := ContextRole(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.WarnContext(r.Context(), "forbidden", slog.String("role", string(role)), slog.String("path", r.URL.Path))

			forbidden.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
