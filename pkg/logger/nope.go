package logger

import (
	"io"
	"log/slog"
)

// NewNope returns a logger that discards everything.
// Library packages default to it when no logger is injected.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
