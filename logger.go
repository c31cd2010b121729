package tgmarkup

import (
	"log/slog"
	"os"
)

// Logger 全局日志记录器
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "tgmarkup")

// SetLogger 设置自定义日志记录器，nil 被忽略
func SetLogger(logger *slog.Logger) {
	if logger != nil {
		Logger = logger
	}
}
