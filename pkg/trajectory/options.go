// Package trajectory 选项模式支持
package trajectory

// Option 映射器配置选项函数类型
type Option func(*Config)

// WithProfile 设置尺寸策略
func WithProfile(p Profile) Option {
	return func(c *Config) {
		c.Profile = p
	}
}

// WithEasing 设置太阳标记运动方式
func WithEasing(e Easing) Option {
	return func(c *Config) {
		c.Easing = e
	}
}

// WithPaddingRatio 设置边距比例（响应式策略）
func WithPaddingRatio(ratio float64) Option {
	return func(c *Config) {
		c.Profile.PaddingRatio = ratio
	}
}

// WithRadiusRatio 设置太阳半径比例（响应式策略）
func WithRadiusRatio(ratio float64) Option {
	return func(c *Config) {
		c.Profile.RadiusRatio = ratio
	}
}

// WithFontRatio 设置标签字号比例（响应式策略）
func WithFontRatio(ratio float64) Option {
	return func(c *Config) {
		c.Profile.FontRatio = ratio
	}
}

// WithPulseScale 设置脉动比例
func WithPulseScale(scale float64) Option {
	return func(c *Config) {
		c.Profile.PulseScale = scale
	}
}

// NewConfigWithOptions 使用选项模式创建映射器配置
func NewConfigWithOptions(opts ...Option) *Config {
	config := DefaultConfig()

	// 应用所有选项
	for _, opt := range opts {
		opt(config)
	}

	return config
}
