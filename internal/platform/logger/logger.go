package logger

import (
	"log/slog"
	"os"
)

// New returns the root logger: JSON in production so log shippers can parse
// it, text locally.
func New(production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
