package trajectory

import (
	"fmt"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// Mapper 时间到位置映射器
// 无状态，每次调用 Frame 都会重新采样时钟并重新计算几何
type Mapper struct {
	config *Config
	clock  core.Clock
}

// NewMapper 创建映射器，clock 为空时使用系统时钟
func NewMapper(config *Config, clock core.Clock) *Mapper {
	if config == nil {
		config = DefaultConfig()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Mapper{
		config: config,
		clock:  clock,
	}
}

// Config 返回映射器使用的配置
func (m *Mapper) Config() *Config {
	return m.config
}

// Frame 计算一次渲染所需的全部数据
// 响应式策略下视口未测量时返回 ErrNoViewport
func (m *Mapper) Frame(sunrise, sunset string, vp core.Viewport) (core.Frame, error) {
	rise, err := ParseTimeOfDay(sunrise)
	if err != nil {
		return core.Frame{}, fmt.Errorf("日出时间: %w", err)
	}
	set, err := ParseTimeOfDay(sunset)
	if err != nil {
		return core.Frame{}, fmt.Errorf("日落时间: %w", err)
	}

	if m.config.Profile.Mode == SizingResponsive && vp.IsZero() {
		return core.Frame{}, ErrNoViewport
	}

	now := TimeOfDayFromClock(m.clock())
	progress := Progress(rise, set, now)
	geometry := Layout(vp, m.config.Profile)

	return core.Frame{
		Sunrise:  sunrise,
		Sunset:   sunset,
		Now:      now,
		Progress: progress,
		Geometry: geometry,
		Sun:      Position(geometry, progress, m.config.Easing),
	}, nil
}
