package trajectory

import (
	"math"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// Progress 计算当前时间在日出到日落区间内的归一化进度，结果限制在 [0, 1]
// 日出等于日落时区间退化，返回 0；除法产生 NaN 时同样返回 0
// 日落早于日出时不做调换，直接套用公式后截断
func Progress(sunrise, sunset, now core.TimeOfDay) float64 {
	span := float64(sunset - sunrise)
	if span == 0 {
		return 0
	}

	p := float64(now-sunrise) / span
	if math.IsNaN(p) {
		return 0
	}
	return clamp01(p)
}

// clamp01 将值限制在 [0, 1]
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
