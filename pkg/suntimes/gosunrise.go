package suntimes

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// GoSunrise 基于 go-sunrise 的日出日落计算
type GoSunrise struct {
	Latitude  float64
	Longitude float64
}

// NewGoSunrise 创建 go-sunrise 计算器
func NewGoSunrise(lat, lon float64) *GoSunrise {
	return &GoSunrise{Latitude: lat, Longitude: lon}
}

// Name 实现Provider接口
func (g *GoSunrise) Name() string {
	return "gosunrise"
}

// Times 实现Provider接口
// go-sunrise 返回UTC时刻，极昼极夜返回零值
func (g *GoSunrise) Times(date time.Time) (Times, error) {
	rise, set := sunrise.SunriseSunset(g.Latitude, g.Longitude, date.Year(), date.Month(), date.Day())

	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	return checkTimes(noon, Times{Sunrise: rise, Sunset: set})
}
