package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init installs the process logger: text in development, JSON otherwise.
func Init(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
	return log
}

func GetLogger() *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
