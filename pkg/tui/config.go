// Package tui 配置定义
package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Config TUI组件的配置结构
type Config struct {
	RefreshInterval time.Duration // UI刷新间隔，同时决定脉动动画的流畅度
	PulsePeriod     time.Duration // 太阳半径脉动一个周期的时长
	MinViewCols     int           // 最小可绘制列数
	MinViewRows     int           // 最小可绘制行数
	PathColor       tcell.Color   // 轨迹颜色
	SunColor        tcell.Color   // 太阳颜色
	LabelColor      tcell.Color   // 时间标签颜色
	ShowStatus      bool          // 是否显示顶部状态行
	Logger          *slog.Logger  // 尺寸变化与按键切换的日志，TUI 占用终端时应写入文件
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval: 100 * time.Millisecond, // 默认100ms刷新
		PulsePeriod:     2 * time.Second,        // 与SVG动画一致的2秒周期
		MinViewCols:     10,
		MinViewRows:     4,
		PathColor:       tcell.ColorGray,
		SunColor:        tcell.ColorGold,
		LabelColor:      tcell.ColorWhite,
		ShowStatus:      true,
		Logger:          slog.New(slog.DiscardHandler),
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c.RefreshInterval <= 0 {
		return errors.New("UI刷新间隔必须大于0")
	}

	if c.RefreshInterval < 10*time.Millisecond {
		return errors.New("UI刷新间隔不能小于10ms")
	}

	if c.PulsePeriod < 0 {
		return errors.New("脉动周期不能为负数")
	}

	if c.MinViewCols <= 0 {
		return errors.New("最小可绘制列数必须大于0")
	}

	if c.MinViewRows <= 0 {
		return errors.New("最小可绘制行数必须大于0")
	}

	return nil
}
