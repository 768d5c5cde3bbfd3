package middleware

import (
	"net/http"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"

	"github.com/rs/zerolog"
)

func Recoverer(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("panic")
					utils.Error(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
