package main

import (
	"fmt"
)

// 程序信息常量
const (
	AppName    = "gosun"
	AppVersion = "0.1.0"
	AppDesc    = "根据日出日落时间绘制太阳轨迹的终端与网页组件"
)

// printRunningConfig 打印运行配置信息
func printRunningConfig(config *AppConfig) {
	fmt.Printf("日出时间: %s\n", config.Sunrise)
	fmt.Printf("日落时间: %s\n", config.Sunset)
	fmt.Printf("时间来源: %s\n", config.TimesSource)
	fmt.Printf("尺寸策略: %s\n", config.MapperConfig.Profile.Mode)
	fmt.Printf("运动方式: %s\n", config.MapperConfig.Easing)
}

// printUsageInstructions 显示TUI操作说明
func printUsageInstructions() {
	fmt.Println("操作说明:")
	fmt.Println("  e           - 切换运动方式 (sine/bezier)")
	fmt.Println("  p           - 切换尺寸策略 (responsive/fixed)")
	fmt.Println("  q 或 Ctrl+C - 退出程序")
	fmt.Println("========================================")
}
