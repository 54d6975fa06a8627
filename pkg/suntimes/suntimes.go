// Package suntimes 根据地理坐标推算日出日落时间
// 只负责提供 "HH:mm" 字符串，太阳标记位置仍由简化的轨迹映射计算
package suntimes

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrNoSunEvent 当天没有日出或日落（极昼/极夜）
	ErrNoSunEvent = errors.New("当天没有日出或日落")

	// ErrInvalidCoordinates 经纬度超出范围
	ErrInvalidCoordinates = errors.New("经纬度超出范围")
)

// Times 一天的日出日落时刻
type Times struct {
	Sunrise time.Time
	Sunset  time.Time
}

// HHMM 以24小时制 "HH:mm" 返回日出日落
func (t Times) HHMM() (sunrise, sunset string) {
	return t.Sunrise.Format("15:04"), t.Sunset.Format("15:04")
}

// Provider 日出日落计算接口
type Provider interface {
	// Name 返回算法名称
	Name() string

	// Times 计算 date 所在日期的日出日落，结果使用 date 的时区
	Times(date time.Time) (Times, error)
}

// New 根据名称创建计算器
func New(name string, lat, lon float64) (Provider, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "suncalc":
		return NewSunCalc(lat, lon), nil
	case "gosunrise", "go-sunrise":
		return NewGoSunrise(lat, lon), nil
	default:
		return nil, fmt.Errorf("未知的日出日落算法: %q（可选 suncalc, gosunrise）", name)
	}
}

// ValidateCoordinates 验证经纬度
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinates, lat, lon)
	}
	return nil
}

// checkTimes 过滤极昼极夜时算法给出的无效时刻
func checkTimes(date time.Time, t Times) (Times, error) {
	if t.Sunrise.IsZero() || t.Sunset.IsZero() {
		return Times{}, ErrNoSunEvent
	}
	// 结果必须落在目标日期附近，且日出早于日落
	window := 36 * time.Hour
	if absDuration(t.Sunrise.Sub(date)) > window || absDuration(t.Sunset.Sub(date)) > window {
		return Times{}, ErrNoSunEvent
	}
	if !t.Sunrise.Before(t.Sunset) {
		return Times{}, ErrNoSunEvent
	}
	return Times{
		Sunrise: t.Sunrise.In(date.Location()),
		Sunset:  t.Sunset.In(date.Location()),
	}, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
