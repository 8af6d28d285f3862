package logger

import (
	"log/slog"
	"os"
)

// Init configures the default slog logger for the whole process.
// DEBUG=true switches the level to debug.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
