// Package core 定义了太阳轨迹组件的核心数据结构和接口
// 这些类型保证了映射计算、视口跟踪与具体渲染层的完全解耦
package core

import (
	"fmt"
	"math"
	"time"
)

// TimeOfDay 表示自午夜起的小时数（实数）
// 由 "HH:mm" 字符串得到，有效输入满足 0 <= v < 24，但不做范围校验
type TimeOfDay float64

// String 将小时数格式化回 "HH:mm"（分钟精度）
func (t TimeOfDay) String() string {
	if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
		return "--:--"
	}
	totalMinutes := int(math.Round(float64(t) * 60))
	sign := ""
	if totalMinutes < 0 {
		sign = "-"
		totalMinutes = -totalMinutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, totalMinutes/60, totalMinutes%60)
}

// Hours 返回原始小时数
func (t TimeOfDay) Hours() float64 {
	return float64(t)
}

// Viewport 表示渲染表面的宽高
// 每次尺寸通知整体替换，不做局部更新
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero 判断视口是否尚未测量（任一边 <= 0）
func (v Viewport) IsZero() bool {
	return v.Width <= 0 || v.Height <= 0
}

// MinSide 返回较短的一边，用于按比例计算派生尺寸
func (v Viewport) MinSide() float64 {
	return math.Min(v.Width, v.Height)
}

// Point 二维坐标点
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry 表示轨迹的派生几何信息
// 完全由视口和尺寸策略计算得到，没有独立的生命周期
type Geometry struct {
	Viewport     Viewport `json:"viewport"`
	Padding      float64  `json:"padding"`
	Start        Point    `json:"start"`   // 曲线起点（左下）
	End          Point    `json:"end"`     // 曲线终点（右下）
	Control      Point    `json:"control"` // 二次贝塞尔控制点（顶部中央）
	Radius       float64  `json:"radius"`
	PulseRadius  float64  `json:"pulseRadius"` // 脉动动画的最大半径
	FontSize     float64  `json:"fontSize"`
	StrokeWidth  float64  `json:"strokeWidth"`
	SunriseLabel Point    `json:"sunriseLabel"` // 日出标签基线锚点
	SunsetLabel  Point    `json:"sunsetLabel"`  // 日落标签基线锚点
}

// Frame 一次渲染所需的全部计算结果
type Frame struct {
	Sunrise  string    `json:"sunrise"` // 原样输入的日出字符串
	Sunset   string    `json:"sunset"`  // 原样输入的日落字符串
	Now      TimeOfDay `json:"now"`
	Progress float64   `json:"progress"`
	Geometry Geometry  `json:"geometry"`
	Sun      Point     `json:"sun"` // 太阳标记的当前位置
}

// Clock 注入的时间源，替代直接读取系统时钟
type Clock func() time.Time

// ViewportSource 定义了视口尺寸来源的标准接口
// 任何宿主环境（终端、窗口、测试桩）都应该实现这个接口
type ViewportSource interface {
	// Viewports 返回一个只读通道，用于接收尺寸变化通知
	// 实现者应在开始后立即发送一次当前尺寸
	Viewports() <-chan Viewport

	// Start 开始监听尺寸变化，非阻塞
	Start()

	// Stop 停止监听并释放资源，调用后 Viewports() 返回的通道应被关闭
	Stop()
}
