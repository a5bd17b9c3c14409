package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a JSON-structured slog.Logger writing to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// Init installs the JSON logger as the process-wide default.
func Init() {
	slog.SetDefault(Setup(os.Stdout))
}
