package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"
)

// parseLogLevel 解析日志级别名称
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("无效的日志级别 %q（可选 debug, info, warn, error）", name)
	}
	return level, nil
}

// newLogger 创建结构化日志
// 指定日志文件时写入文件，否则写入 fallback；fallback 为空时丢弃日志
// 返回的关闭函数总是可以调用
func newLogger(config *AppConfig, fallback io.Writer) (*slog.Logger, func(), error) {
	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	out := fallback
	closeFn := func() {}
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("打开日志文件: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	// 渲染库的内部日志使用同一个输出
	gg.SetLogger(logger.With("component", "gg"))

	return logger, closeFn, nil
}
