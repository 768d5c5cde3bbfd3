package middleware

import (
	"net/http"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"
)

// RequireAuth blocks when no identity is present in context (set by WithAuth).
// The body never says why the token was rejected.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles allows the request only if the current role is in the allowed list.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := utils.GetString(r.Context(), CtxRole)
			if _, ok := allowed[role]; !ok {
				utils.Error(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
