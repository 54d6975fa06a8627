package trajectory

import (
	"errors"
	"fmt"
	"strings"
)

// SizingMode 尺寸策略
type SizingMode int

const (
	SizingResponsive SizingMode = iota // 按视口短边比例计算
	SizingFixed                        // 固定像素常量
)

// String 返回尺寸策略名称
func (m SizingMode) String() string {
	switch m {
	case SizingFixed:
		return "fixed"
	default:
		return "responsive"
	}
}

// Profile 描述一套尺寸策略
// 响应式策略使用比例字段，固定策略使用像素字段
type Profile struct {
	Mode SizingMode

	// 响应式比例（相对于视口短边）
	PaddingRatio float64
	RadiusRatio  float64
	FontRatio    float64
	StrokeRatio  float64 // 相对于视口宽度
	MinStroke    float64

	// 固定像素常量
	FixedWidth   float64
	FixedHeight  float64
	FixedPadding float64
	FixedRadius  float64
	FixedFont    float64
	FixedStroke  float64
	LabelOffset  float64 // 标签基线距底边的距离
	LabelWidth   float64 // 日落标签预留宽度

	PulseScale float64 // 脉动动画最大半径 / 基础半径
}

// ResponsiveProfile 返回随视口缩放的默认策略
func ResponsiveProfile() Profile {
	return Profile{
		Mode:         SizingResponsive,
		PaddingRatio: 0.05, // 短边的5%
		RadiusRatio:  0.04, // 短边的4%
		FontRatio:    0.03, // 短边的3%
		StrokeRatio:  0.002,
		MinStroke:    2,
		PulseScale:   1.1,
	}
}

// FixedProfile 返回 400x200 固定画布策略
func FixedProfile() Profile {
	return Profile{
		Mode:         SizingFixed,
		FixedWidth:   400,
		FixedHeight:  200,
		FixedPadding: 40,
		FixedRadius:  15,
		FixedFont:    10,
		FixedStroke:  2,
		LabelOffset:  10,
		LabelWidth:   40,
		PulseScale:   17.0 / 15.0, // 15 -> 17
	}
}

// ProfileByName 根据名称获取尺寸策略
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "responsive":
		return ResponsiveProfile(), nil
	case "fixed":
		return FixedProfile(), nil
	default:
		return Profile{}, fmt.Errorf("未知的尺寸策略: %q（可选 responsive, fixed）", name)
	}
}

// Validate 验证尺寸策略的合理性
func (p Profile) Validate() error {
	if p.PulseScale < 1 {
		return errors.New("脉动比例不能小于1")
	}

	switch p.Mode {
	case SizingResponsive:
		if p.PaddingRatio <= 0 || p.PaddingRatio >= 0.5 {
			return errors.New("边距比例必须在 (0, 0.5) 之间")
		}
		if p.RadiusRatio <= 0 {
			return errors.New("半径比例必须大于0")
		}
		if p.FontRatio <= 0 {
			return errors.New("字号比例必须大于0")
		}
		if p.StrokeRatio < 0 || p.MinStroke < 0 {
			return errors.New("线宽参数不能为负数")
		}
	case SizingFixed:
		if p.FixedWidth <= 0 || p.FixedHeight <= 0 {
			return errors.New("固定画布尺寸必须大于0")
		}
		if p.FixedPadding < 0 || 2*p.FixedPadding >= p.FixedWidth || 2*p.FixedPadding >= p.FixedHeight {
			return errors.New("固定边距必须小于画布尺寸的一半")
		}
		if p.FixedRadius <= 0 || p.FixedFont <= 0 || p.FixedStroke <= 0 {
			return errors.New("固定半径、字号和线宽必须大于0")
		}
	default:
		return fmt.Errorf("未知的尺寸策略: %d", p.Mode)
	}

	return nil
}
