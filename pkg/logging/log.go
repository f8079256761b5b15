package logging

import (
	"log/slog"
	"os"
)

// Logger defaults to slog's default so packages can log before Init runs.
var Logger = slog.Default()

func Init(env string) {
	if env == "prod" || env == "production" {
		Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	slog.SetDefault(Logger)
}
