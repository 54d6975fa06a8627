// Package tui 工具函数和辅助类型
package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// formatProgress 格式化进度百分比
func formatProgress(progress float64) string {
	if math.IsNaN(progress) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", progress*100)
}

// pulsePhase 计算脉动相位 [0,1]，周期内 0 -> 1 -> 0
func pulsePhase(now time.Time, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	elapsed := now.UnixNano() % int64(period)
	return (1 - math.Cos(2*math.Pi*float64(elapsed)/float64(period))) / 2
}

// scalePoint 将几何坐标缩放到画布坐标
func scalePoint(p core.Point, sx, sy float64) core.Point {
	return core.Point{X: p.X * sx, Y: p.Y * sy}
}

// abs 返回整数的绝对值
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// clampInt 将整数限制在 [lo, hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
