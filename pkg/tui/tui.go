// Package tui 提供太阳轨迹的终端用户界面组件
// 支持随终端尺寸变化重新计算几何以及太阳半径脉动
package tui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
	"github.com/Kevin-Rudy/gosun/pkg/viewport"
	"github.com/rivo/tview"
)

// TUI 主界面结构
type TUI struct {
	app    *tview.Application
	view   *SunView
	status *tview.TextView
	flex   *tview.Flex

	// 配置信息
	tuiConfig    *Config            // TUI配置
	mapperConfig *trajectory.Config // 映射器配置，按键切换时整体替换
	clock        core.Clock
	logger       *slog.Logger

	// 两种尺寸策略各自最近使用的参数，切换时恢复
	responsiveProfile trajectory.Profile
	fixedProfile      trajectory.Profile

	// 视口跟踪
	tracker     *viewport.Tracker
	unsubscribe func()
	viewportMu  sync.RWMutex
	viewport    core.Viewport
	resizeCount int

	// 控制
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once

	// 测试模式标志
	testMode bool
}

// NewTUI 创建新的TUI实例
func NewTUI(sunrise, sunset string, mapperConfig *trajectory.Config, tuiConfig *Config, clock core.Clock) *TUI {
	tui := newTUI(sunrise, sunset, mapperConfig, tuiConfig, clock, false)

	tui.setupUI()
	tui.setupKeyBindings()

	return tui
}

// NewTUIForTest 创建用于测试的TUI实例（不初始化图形组件）
func NewTUIForTest(sunrise, sunset string, mapperConfig *trajectory.Config, tuiConfig *Config, clock core.Clock) *TUI {
	return newTUI(sunrise, sunset, mapperConfig, tuiConfig, clock, true)
}

func newTUI(sunrise, sunset string, mapperConfig *trajectory.Config, tuiConfig *Config, clock core.Clock, testMode bool) *TUI {
	if mapperConfig == nil {
		mapperConfig = trajectory.DefaultConfig()
	}
	if tuiConfig == nil {
		tuiConfig = DefaultConfig()
	}
	if clock == nil {
		clock = time.Now
	}
	logger := tuiConfig.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tracker := viewport.NewTracker()
	tui := &TUI{
		app:          tview.NewApplication(), // 测试模式下只创建不运行
		tuiConfig:    tuiConfig,
		mapperConfig: mapperConfig,
		clock:        clock,
		logger:       logger,
		tracker:      tracker,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
		testMode:     testMode,

		responsiveProfile: trajectory.ResponsiveProfile(),
		fixedProfile:      trajectory.FixedProfile(),
	}
	if mapperConfig.Profile.Mode == trajectory.SizingFixed {
		tui.fixedProfile = mapperConfig.Profile
	} else {
		tui.responsiveProfile = mapperConfig.Profile
	}
	tui.view = NewSunView(sunrise, sunset, trajectory.NewMapper(mapperConfig, clock), tracker, clock, tuiConfig)

	// 订阅的生命周期与TUI一致，Stop 时注销
	tui.unsubscribe = tracker.Subscribe(tui.handleResize)

	return tui
}

// Run 启动TUI界面
func (t *TUI) Run() error {
	// 启动刷新goroutine
	go t.refreshLoop()

	// 运行应用
	err := t.app.Run()

	// 应用可能因外部原因退出，确保清理工作完成
	t.shutdown()
	<-t.doneChan

	return err
}

// Stop 停止TUI界面
func (t *TUI) Stop() {
	t.shutdown()

	// 停止应用
	t.app.Stop()
}

// shutdown 发送停止信号并注销尺寸订阅，可重复调用
func (t *TUI) shutdown() {
	t.stopOnce.Do(func() {
		t.logger.Debug("tui shutting down")
		close(t.stopChan)
		t.unsubscribe()
	})
}

// refreshLoop 定时重绘 - 每次重绘都会重新采样时钟
func (t *TUI) refreshLoop() {
	defer close(t.doneChan)

	ticker := time.NewTicker(t.tuiConfig.RefreshInterval)
	defer ticker.Stop()

	// 初始UI刷新
	t.forceInitialDraw()

	for {
		select {
		case <-ticker.C:
			t.handleUIRefresh()

		case <-t.stopChan:
			return
		}
	}
}

// forceInitialDraw 强制初始绘制
func (t *TUI) forceInitialDraw() {
	if !t.testMode && t.app != nil {
		t.app.QueueUpdateDraw(func() {
			// 强制初始绘制
		})
	}
}

// handleUIRefresh 处理UI刷新
func (t *TUI) handleUIRefresh() {
	if !t.testMode && t.app != nil {
		t.safeUIUpdate(func() {
			t.updateStatus()
		})
	}
}

// handleResize 尺寸跟踪器回调，记录最新视口
func (t *TUI) handleResize(vp core.Viewport) {
	t.viewportMu.Lock()
	defer t.viewportMu.Unlock()
	t.viewport = vp
	t.resizeCount++
	t.logger.Debug("viewport changed", "width", vp.Width, "height", vp.Height, "resizes", t.resizeCount)
}

// Viewport 返回最近一次记录的视口和尺寸变化次数
func (t *TUI) Viewport() (core.Viewport, int) {
	t.viewportMu.RLock()
	defer t.viewportMu.RUnlock()
	return t.viewport, t.resizeCount
}

// safeUIUpdate 安全地执行UI更新操作
func (t *TUI) safeUIUpdate(updateFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			// 如果应用已经停止，忽略panic
		}
	}()
	t.app.QueueUpdateDraw(updateFunc)
}
