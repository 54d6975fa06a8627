package trajectory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// Easing 太阳标记沿曲线运动的方式
type Easing int

const (
	// EasingSine 水平线性插值，垂直方向按 sin(p·π) 升降
	// 与绘制的二次贝塞尔路径视觉相近但不完全重合
	EasingSine Easing = iota
	// EasingBezier 在绘制的二次贝塞尔曲线上取 t = progress 的点
	EasingBezier
)

// String 返回运动方式名称
func (e Easing) String() string {
	if e == EasingBezier {
		return "bezier"
	}
	return "sine"
}

// ParseEasing 根据名称获取运动方式
func ParseEasing(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sine":
		return EasingSine, nil
	case "bezier":
		return EasingBezier, nil
	default:
		return EasingSine, fmt.Errorf("未知的运动方式: %q（可选 sine, bezier）", name)
	}
}

// Layout 根据视口和尺寸策略计算轨迹几何
// 固定策略忽略传入的视口
func Layout(vp core.Viewport, p Profile) core.Geometry {
	var g core.Geometry

	switch p.Mode {
	case SizingFixed:
		vp = core.Viewport{Width: p.FixedWidth, Height: p.FixedHeight}
		g.Padding = p.FixedPadding
		g.Radius = p.FixedRadius
		g.FontSize = p.FixedFont
		g.StrokeWidth = p.FixedStroke
		baseline := vp.Height - p.LabelOffset
		g.SunriseLabel = core.Point{X: g.Padding, Y: baseline}
		g.SunsetLabel = core.Point{X: vp.Width - g.Padding - p.LabelWidth, Y: baseline}

	default:
		side := vp.MinSide()
		g.Padding = side * p.PaddingRatio
		g.Radius = side * p.RadiusRatio
		g.FontSize = side * p.FontRatio
		g.StrokeWidth = math.Max(p.MinStroke, vp.Width*p.StrokeRatio)
		// 标签位于底部边距的中线，日落标签预留约4个字宽
		baseline := vp.Height - g.Padding/2
		g.SunriseLabel = core.Point{X: g.Padding, Y: baseline}
		g.SunsetLabel = core.Point{X: vp.Width - g.Padding - g.FontSize*4, Y: baseline}
	}

	g.Viewport = vp
	g.PulseRadius = g.Radius * p.PulseScale
	g.Start = core.Point{X: g.Padding, Y: vp.Height - g.Padding}
	g.End = core.Point{X: vp.Width - g.Padding, Y: vp.Height - g.Padding}
	g.Control = core.Point{X: vp.Width / 2, Y: g.Padding}

	return g
}

// Position 将进度映射为太阳标记在画布上的坐标
func Position(g core.Geometry, progress float64, e Easing) core.Point {
	if e == EasingBezier {
		return QuadraticPoint(g.Start, g.Control, g.End, progress)
	}

	x := g.Start.X + (g.End.X-g.Start.X)*progress
	y := g.Start.Y - math.Sin(progress*math.Pi)*(g.Start.Y-g.Control.Y)
	return core.Point{X: x, Y: y}
}

// QuadraticPoint 计算二次贝塞尔曲线在参数 t 处的点
func QuadraticPoint(p0, p1, p2 core.Point, t float64) core.Point {
	u := 1 - t
	return core.Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// PathData 生成绘制路径所用的 SVG 路径字符串 "M sx sy Q cx cy ex ey"
func PathData(g core.Geometry) string {
	return fmt.Sprintf("M %s %s Q %s %s %s %s",
		FormatNumber(g.Start.X), FormatNumber(g.Start.Y),
		FormatNumber(g.Control.X), FormatNumber(g.Control.Y),
		FormatNumber(g.End.X), FormatNumber(g.End.Y))
}

// FormatNumber 以最少的小数位格式化坐标，最多保留3位
func FormatNumber(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // 消除 -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
