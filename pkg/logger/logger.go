package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the service-wide logger. Dev gets human-readable console
// output at debug level; everything else gets JSON at info.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "dev" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		return zerolog.New(out).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
