package suntimes

import (
	"time"

	"github.com/sixdouglas/suncalc"
)

// SunCalc 基于 suncalc 的日出日落计算
type SunCalc struct {
	Latitude  float64
	Longitude float64
}

// NewSunCalc 创建 suncalc 计算器
func NewSunCalc(lat, lon float64) *SunCalc {
	return &SunCalc{Latitude: lat, Longitude: lon}
}

// Name 实现Provider接口
func (s *SunCalc) Name() string {
	return "suncalc"
}

// Times 实现Provider接口
func (s *SunCalc) Times(date time.Time) (Times, error) {
	// 以当地正午为基准，避免跨日
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	times := suncalc.GetTimes(noon, s.Latitude, s.Longitude)

	return checkTimes(noon, Times{
		Sunrise: times["sunrise"].Value,
		Sunset:  times["sunset"].Value,
	})
}
