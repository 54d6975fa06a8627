// Package trajectory 配置定义
package trajectory

import (
	"errors"
	"fmt"
)

// Config 映射器的配置结构
type Config struct {
	Profile Profile // 尺寸策略
	Easing  Easing  // 太阳标记运动方式
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Profile: ResponsiveProfile(), // 默认随视口缩放
		Easing:  EasingSine,          // 默认保持正弦升降
	}
}

// Validate 验证配置的合理性
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置不能为空")
	}

	if c.Easing != EasingSine && c.Easing != EasingBezier {
		return fmt.Errorf("未知的运动方式: %d", c.Easing)
	}

	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("尺寸策略错误: %w", err)
	}

	return nil
}
