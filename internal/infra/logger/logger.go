package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New собирает JSON-логгер. Если задана директория — пишем ещё и в
// ротируемый файл bot.log (5 МБ, 3 бэкапа).
func New(env, dir string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	if dir != "" {
		_ = os.MkdirAll(dir, 0o755)
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filepath.Join(dir, "bot.log"),
			MaxSize:    5, // MB
			MaxBackups: 3,
		})
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
