package middleware

import (
	"net/http"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"

	"github.com/go-chi/chi/v5"
)

// RequireSelfOrRoles allows if the {param} URL segment matches the
// authenticated user id OR the user has any of the given roles. Report
// routes use it so students only ever see their own data.
func RequireSelfOrRoles(param string, roles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctxUID, _ := utils.GetString(r.Context(), CtxUserID)
			ctxRole, _ := utils.GetString(r.Context(), CtxRole)
			pathID := chi.URLParam(r, param)

			if _, ok := roleSet[ctxRole]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if ctxUID != "" && pathID == ctxUID {
				next.ServeHTTP(w, r)
				return
			}
			utils.Error(w, http.StatusForbidden, "access denied")
		})
	}
}
