// Package trajectory 实现时间到位置的映射
// 解析日出日落时间、计算进度、生成轨迹几何以及太阳标记位置
package trajectory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

var (
	// ErrInvalidTime 时间字符串无法解析为 "HH:mm"
	ErrInvalidTime = errors.New("无效的时间格式，应为 HH:mm")

	// ErrNoViewport 视口尚未测量，渲染应被抑制
	ErrNoViewport = errors.New("视口尚未测量")
)

// ParseTimeOfDay 将 "HH:mm" 解析为自午夜起的小时数
// 只校验格式不校验范围，"25:99" 会得到 25 + 99/60
func ParseTimeOfDay(s string) (core.TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hours, err := parseTimePart(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q 小时部分 %v", ErrInvalidTime, s, err)
	}
	minutes, err := parseTimePart(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q 分钟部分 %v", ErrInvalidTime, s, err)
	}

	return core.TimeOfDay(hours + minutes/60), nil
}

// parseTimePart 解析单个数字部分，拒绝空串、NaN和无穷大
func parseTimePart(part string) (float64, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return 0, errors.New("为空")
	}
	v, err := strconv.ParseFloat(part, 64)
	if err != nil {
		return 0, errors.New("不是数字")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("不是有限数字")
	}
	return v, nil
}

// TimeOfDayFromClock 将时钟读数转换为小时数
// 只保留到分钟，不做时区转换
func TimeOfDayFromClock(t time.Time) core.TimeOfDay {
	return core.TimeOfDay(float64(t.Hour()) + float64(t.Minute())/60)
}

// FormatClock 将时钟读数格式化为24小时制 "HH:mm"
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
