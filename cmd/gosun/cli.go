package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"
)

// createCliApp 创建CLI应用实例
func createCliApp() *cli.App {
	app := &cli.App{
		Name:    AppName,
		Version: AppVersion,
		Usage:   AppDesc,
		Flags:   createCliFlags(),
		Action:  runTUI,
	}

	// 添加子命令
	app.Commands = createCommands()

	return app
}

// createCliFlags 创建全局参数定义，所有子命令共用
func createCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "sunrise",
			Aliases: []string{"r"},
			Usage:   "日出时间 HH:mm（未指定且给出经纬度时自动计算）",
		},
		&cli.StringFlag{
			Name:    "sunset",
			Aliases: []string{"s"},
			Usage:   "日落时间 HH:mm（未指定且给出经纬度时自动计算）",
		},
		&cli.Float64Flag{
			Name:  "lat",
			Usage: "纬度，-90 到 90",
		},
		&cli.Float64Flag{
			Name:  "lon",
			Usage: "经度，-180 到 180",
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "计算日出日落的日期 YYYY-MM-DD（默认今天）",
		},
		&cli.StringFlag{
			Name:  "provider",
			Value: "suncalc",
			Usage: "日出日落算法: suncalc, gosunrise",
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Value:   "responsive",
			Usage:   "尺寸策略: responsive（随视口缩放）, fixed（400x200）",
		},
		&cli.StringFlag{
			Name:    "easing",
			Aliases: []string{"e"},
			Value:   "sine",
			Usage:   "太阳运动方式: sine, bezier",
		},
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML配置文件路径",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "日志级别: debug, info, warn, error",
		},
		&cli.PathFlag{
			Name:  "log-file",
			Usage: "日志文件路径（TUI模式下默认不输出日志）",
		},
	}
}

// createCommands 创建子命令
func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "tui",
			Usage:  "在终端中显示太阳轨迹（默认）",
			Action: runTUI,
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "refresh-rate",
					Value: 100 * time.Millisecond,
					Usage: "UI刷新频率 (例如: 100ms, 500ms)",
				},
				&cli.DurationFlag{
					Name:  "pulse-period",
					Value: 2 * time.Second,
					Usage: "太阳半径脉动周期，0 表示不脉动",
				},
				&cli.BoolFlag{
					Name:  "no-status",
					Usage: "隐藏顶部状态行",
				},
			},
		},
		{
			Name:   "render",
			Usage:  "输出一帧SVG或PNG",
			Action: runRender,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "-",
					Usage:   "输出文件，- 表示标准输出",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "输出格式: svg, png（默认按文件扩展名）",
				},
				&cli.Float64Flag{
					Name:  "width",
					Usage: "视口宽度（默认测量终端像素尺寸）",
				},
				&cli.Float64Flag{
					Name:  "height",
					Usage: "视口高度（默认测量终端像素尺寸）",
				},
				&cli.PathFlag{
					Name:  "font",
					Usage: "PNG 标签使用的 TTF/OTF 字体",
				},
				&cli.Float64Flag{
					Name:  "pulse",
					Usage: "PNG 中太阳的脉动相位 [0,1]",
				},
				&cli.BoolFlag{
					Name:  "watch",
					Usage: "终端尺寸变化时重新输出，直到中断",
				},
			},
		},
		{
			Name:   "serve",
			Usage:  "以HTTP提供 /sun.svg、/sun.png 和 /api/v1/frame",
			Action: runServe,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "addr",
					Value: ":8080",
					Usage: "监听地址",
				},
				&cli.IntFlag{
					Name:  "max-conns",
					Value: 64,
					Usage: "同时处理的最大连接数",
				},
				&cli.PathFlag{
					Name:  "font",
					Usage: "PNG 标签使用的 TTF/OTF 字体",
				},
			},
		},
		{
			Name:   "times",
			Usage:  "根据经纬度计算日出日落时间",
			Action: runTimes,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "显示详细版本信息",
			Action: func(c *cli.Context) error {
				fmt.Printf("%s v%s\n", AppName, AppVersion)
				fmt.Printf("描述: %s\n", AppDesc)
				fmt.Printf("系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)
				fmt.Printf("日出日落算法: %s\n", "suncalc, gosunrise")
				return nil
			},
		},
	}
}
