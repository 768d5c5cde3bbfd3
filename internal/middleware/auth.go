package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/service"
)

type ctxKey string

const (
	CtxUserID ctxKey = "uid"
	CtxRole   ctxKey = "role"
	// CtxToken carries the raw bearer token so logout can revoke exactly
	// the session that made the request.
	CtxToken ctxKey = "token"
)

// WithAuth resolves the bearer token into an identity and attaches it to the
// request context. Requests without a valid token pass through
// unauthenticated; RequireAuth decides whether that is acceptable.
func WithAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tok := strings.TrimPrefix(h, "Bearer ")

			u, err := auth.Verify(r.Context(), tok)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, u.ID)
			ctx = context.WithValue(ctx, CtxRole, u.Role)
			ctx = context.WithValue(ctx, CtxToken, tok)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
