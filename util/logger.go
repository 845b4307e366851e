package util

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// SetupLogger builds the application logger. format "text" gives a console
// writer for humans, anything else gives JSON lines.
func SetupLogger(format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
