package utils

import "context"

// GetString reads a string value off the request context. Missing keys and
// non-string values both report !ok.
func GetString(ctx context.Context, key any) (string, bool) {
	v := ctx.Value(key)
	s, ok := v.(string)
	return s, ok
}
