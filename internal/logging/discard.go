package logging

import (
	"io"
	"log/slog"
)

// Discard returns a logger that drops everything. Useful in tests and as a
// default when a component is constructed without a logger.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
