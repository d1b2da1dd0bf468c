package handlers

import (
	"net/http"
	"strings"
)

// RequireRole is the authorization policy for role-gated routes. Every
// handler that needs a role consults this one middleware rather than
// checking inline.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !strings.EqualFold(identity.Role, role) {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
