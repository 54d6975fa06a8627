// Package tui 选项模式支持
package tui

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Option TUI配置选项函数类型
type Option func(*Config)

// WithRefreshInterval 设置UI刷新间隔
func WithRefreshInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.RefreshInterval = interval
	}
}

// WithPulsePeriod 设置脉动周期，0 表示不脉动
func WithPulsePeriod(period time.Duration) Option {
	return func(c *Config) {
		c.PulsePeriod = period
	}
}

// WithMinViewSize 设置最小可绘制尺寸
func WithMinViewSize(cols, rows int) Option {
	return func(c *Config) {
		c.MinViewCols = cols
		c.MinViewRows = rows
	}
}

// WithColors 设置轨迹、太阳和标签颜色
func WithColors(path, sun, label tcell.Color) Option {
	return func(c *Config) {
		c.PathColor = path
		c.SunColor = sun
		c.LabelColor = label
	}
}

// WithStatus 设置是否显示状态行
func WithStatus(show bool) Option {
	return func(c *Config) {
		c.ShowStatus = show
	}
}

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// NewConfigWithOptions 使用选项模式创建TUI配置
func NewConfigWithOptions(opts ...Option) *Config {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return config
}
