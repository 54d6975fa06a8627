package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/render"
	"github.com/Kevin-Rudy/gosun/pkg/server"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
	"github.com/Kevin-Rudy/gosun/pkg/tui"
	"github.com/Kevin-Rudy/gosun/pkg/viewport"
	"github.com/urfave/cli/v2"
)

// loadConfig 构建并验证配置，失败时返回可直接退出的错误
func loadConfig(c *cli.Context) (*AppConfig, error) {
	appConfig, err := buildConfigFromCLI(c)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("配置错误: %v", err), 1)
	}

	if err := validateConfig(appConfig); err != nil {
		return nil, cli.Exit(fmt.Sprintf("配置验证失败: %v", err), 1)
	}

	return appConfig, nil
}

// runTUI 在终端中显示太阳轨迹
func runTUI(c *cli.Context) error {
	appConfig, err := loadConfig(c)
	if err != nil {
		return err
	}

	// TUI 占用终端，未指定日志文件时丢弃日志
	logger, closeLog, err := newLogger(appConfig, nil)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeLog()

	fmt.Printf("正在启动 %s v%s...\n", AppName, AppVersion)
	printRunningConfig(appConfig)
	printUsageInstructions()

	logger.Info("tui starting", "sunrise", appConfig.Sunrise, "sunset", appConfig.Sunset,
		"profile", appConfig.MapperConfig.Profile.Mode, "easing", appConfig.MapperConfig.Easing)

	appConfig.TUIConfig.Logger = logger.With("component", "tui")
	tuiInstance := tui.NewTUI(appConfig.Sunrise, appConfig.Sunset, appConfig.MapperConfig, appConfig.TUIConfig, nil)

	// 启动TUI界面 - 这会阻塞直到用户退出
	if err := tuiInstance.Run(); err != nil {
		logger.Error("tui stopped with error", "error", err)
		return cli.Exit(fmt.Sprintf("TUI运行出错: %v", err), 1)
	}

	vp, resizes := tuiInstance.Viewport()
	logger.Info("tui stopped", "viewport_width", vp.Width, "viewport_height", vp.Height, "resizes", resizes)

	fmt.Println("\n程序已退出")
	return nil
}

// runRender 输出一帧SVG或PNG
func runRender(c *cli.Context) error {
	appConfig, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(appConfig, os.Stderr)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeLog()

	output := c.String("output")
	formatName := c.String("format")
	if formatName == "" && output != "-" {
		formatName = filepath.Ext(output)
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	opts := render.DefaultPNGOptions()
	if appConfig.MapperConfig.Profile.Mode == trajectory.SizingFixed {
		opts.SVG = render.FixedSVGOptions()
	}
	opts.FontPath = c.Path("font")
	opts.Pulse = c.Float64("pulse")

	job := &renderJob{
		config: appConfig,
		mapper: trajectory.NewMapper(appConfig.MapperConfig, nil),
		output: output,
		format: format,
		opts:   opts,
	}

	if c.Bool("watch") {
		if output == "-" {
			return cli.Exit("--watch 需要指定 --output 文件", 1)
		}
		logger.Info("watching terminal size", "output", output, "format", format)
		return job.watch(c.Context, viewport.NewTerminalSource(nil), func(err error) {
			logger.Error("render failed", "error", err)
		})
	}

	vp, source := renderViewport(c, viewport.NewTerminalSource(nil))
	logger.Debug("render viewport", "width", vp.Width, "height", vp.Height, "source", source)

	if err := job.write(vp); err != nil {
		return cli.Exit(fmt.Sprintf("输出失败: %v", err), 1)
	}
	logger.Info("frame rendered", "output", output, "format", format, "width", vp.Width, "height", vp.Height)
	return nil
}

// renderViewport 确定输出视口：参数优先，其次终端像素尺寸，最后使用固定策略的尺寸
func renderViewport(c *cli.Context, term *viewport.TerminalSource) (core.Viewport, string) {
	if c.IsSet("width") && c.IsSet("height") {
		return core.Viewport{Width: c.Float64("width"), Height: c.Float64("height")}, "参数"
	}

	if vp, err := term.Measure(); err == nil && !vp.IsZero() {
		return vp, "终端"
	}

	fixed := trajectory.FixedProfile()
	return core.Viewport{Width: fixed.FixedWidth, Height: fixed.FixedHeight}, "默认值"
}

// renderJob 一次输出任务
type renderJob struct {
	config *AppConfig
	mapper *trajectory.Mapper
	output string
	format render.Format
	opts   render.PNGOptions
}

// write 按视口计算一帧并写入输出
func (j *renderJob) write(vp core.Viewport) error {
	frame, err := j.mapper.Frame(j.config.Sunrise, j.config.Sunset, vp)
	if err != nil {
		return err
	}

	if j.output == "-" {
		return render.Render(os.Stdout, frame, j.format, j.opts)
	}

	// 先写临时文件再改名，避免读取方看到半个文件
	tmp := j.output + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := render.Render(f, frame, j.format, j.opts); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, j.output)
}

// watch 每次终端尺寸变化时重新输出，直到 ctx 取消
func (j *renderJob) watch(ctx context.Context, src core.ViewportSource, onError func(error)) error {
	tracker := viewport.NewTracker()
	unsubscribe := tracker.Subscribe(func(vp core.Viewport) {
		if err := j.write(vp); err != nil {
			onError(err)
		}
	})
	defer unsubscribe()

	fmt.Printf("正在监视终端尺寸，输出到 %s，按 Ctrl+C 结束\n", j.output)
	viewport.Bind(ctx, src, tracker)
	return nil
}

// runServe 以HTTP提供太阳轨迹
func runServe(c *cli.Context) error {
	appConfig, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(appConfig, os.Stderr)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeLog()

	fmt.Printf("正在启动 %s v%s...\n", AppName, AppVersion)
	printRunningConfig(appConfig)
	fmt.Printf("监听地址: %s\n", appConfig.ServerConfig.Address)

	ln, err := server.Listen(appConfig.ServerConfig)
	if err != nil {
		return cli.Exit(fmt.Sprintf("监听失败: %v", err), 1)
	}

	handler := server.NewHandler(appConfig.ServerConfig, logger, nil)
	srv := server.NewRouter(appConfig.ServerConfig, handler)

	if err := server.Serve(c.Context, srv, ln, logger); err != nil {
		return cli.Exit(fmt.Sprintf("服务运行出错: %v", err), 1)
	}

	fmt.Println("\n服务已停止")
	return nil
}

// runTimes 打印给定位置的日出日落时间
func runTimes(c *cli.Context) error {
	s := defaultSettings()
	if path := c.Path("config"); path != "" {
		if err := hydrateFromFile(s, path); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	applyEnvOverrides(s)
	applyFlagOverrides(c, s)

	times, err := computeTimes(s, time.Now())
	if err != nil {
		return cli.Exit(fmt.Sprintf("计算失败: %v", err), 1)
	}

	printTimes(os.Stdout, s, times.Sunrise, times.Sunset)
	return nil
}

// printTimes 输出日出日落结果
func printTimes(w io.Writer, s *settings, sunrise, sunset time.Time) {
	fmt.Fprintf(w, "位置: %.4f, %.4f\n", *s.Lat, *s.Lon)
	fmt.Fprintf(w, "日期: %s\n", sunrise.Format("2006-01-02"))
	fmt.Fprintf(w, "算法: %s\n", s.Provider)
	fmt.Fprintf(w, "日出: %s\n", sunrise.Format("15:04"))
	fmt.Fprintf(w, "日落: %s\n", sunset.Format("15:04"))
	fmt.Fprintf(w, "白昼: %s\n", sunset.Sub(sunrise).Round(time.Minute))
}
