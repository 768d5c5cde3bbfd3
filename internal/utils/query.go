package utils

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PathInt parses an integer URL parameter. Returns ok=false when the
// parameter is missing or not a number.
func PathInt(r *http.Request, key string) (int, bool) {
	v := chi.URLParam(r, key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
