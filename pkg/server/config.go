// Package server 以HTTP形式提供太阳轨迹组件
package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
)

// Config HTTP服务的配置结构
type Config struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	MaxConns     int           `yaml:"maxConns"` // 同时处理的连接上限

	// 请求未携带参数时使用的默认值
	Sunrise string  `yaml:"sunrise"`
	Sunset  string  `yaml:"sunset"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`

	// 请求可指定的最大视口，PNG 按此尺寸分配像素
	MaxWidth  float64 `yaml:"maxWidth"`
	MaxHeight float64 `yaml:"maxHeight"`

	Mapper   *trajectory.Config `yaml:"-"`
	FontPath string             `yaml:"fontPath"` // PNG 标签字体，为空时不绘制标签
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxConns:     64,
		Sunrise:      "06:00",
		Sunset:       "18:00",
		Width:        400,
		Height:       200,
		MaxWidth:     4096,
		MaxHeight:    4096,
		Mapper:       trajectory.DefaultConfig(),
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置不能为空")
	}

	if c.Address == "" {
		return errors.New("监听地址不能为空")
	}

	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return errors.New("读写超时必须大于0")
	}

	if c.MaxConns <= 0 {
		return errors.New("最大连接数必须大于0")
	}

	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return errors.New("最大视口尺寸必须大于0")
	}

	if c.Width < 0 || c.Height < 0 {
		return errors.New("默认视口尺寸不能为负数")
	}

	if c.Width > c.MaxWidth || c.Height > c.MaxHeight {
		return errors.New("默认视口尺寸不能超过最大视口尺寸")
	}

	if _, err := trajectory.ParseTimeOfDay(c.Sunrise); err != nil {
		return fmt.Errorf("默认日出时间: %w", err)
	}

	if _, err := trajectory.ParseTimeOfDay(c.Sunset); err != nil {
		return fmt.Errorf("默认日落时间: %w", err)
	}

	return c.Mapper.Validate()
}
