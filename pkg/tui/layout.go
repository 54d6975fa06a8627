// Package tui 布局管理模块
package tui

import (
	"fmt"

	"github.com/rivo/tview"
)

// setupUI 设置用户界面布局
func (t *TUI) setupUI() {
	// 顶部状态行
	t.status = tview.NewTextView()
	t.status.SetDynamicColors(true)
	t.status.SetTextAlign(tview.AlignCenter)
	t.status.SetText("[yellow]正在测量终端尺寸...[white]")

	// 底部帮助行
	help := tview.NewTextView()
	help.SetDynamicColors(true)
	help.SetTextAlign(tview.AlignCenter)
	help.SetText("[gray]q 退出  e 切换运动方式  p 切换尺寸策略[white]")

	// 创建主垂直布局，轨迹视图占据所有剩余空间
	t.flex = tview.NewFlex()
	t.flex.SetDirection(tview.FlexRow)
	if t.tuiConfig.ShowStatus {
		t.flex.AddItem(t.status, 1, 0, false)
	}
	t.flex.AddItem(t.view, 0, 1, false)
	t.flex.AddItem(help, 1, 0, false)

	t.app.SetRoot(t.flex, true)
}

// updateStatus 更新状态行
func (t *TUI) updateStatus() {
	if t.testMode || t.status == nil {
		return
	}
	t.status.SetText(t.statusText())
}

// statusText 生成状态行文本
func (t *TUI) statusText() string {
	frame, ok := t.view.Frame()
	if !ok {
		return "[yellow]正在测量终端尺寸...[white]"
	}

	t.viewportMu.RLock()
	vp := t.viewport
	t.viewportMu.RUnlock()

	cfg := t.currentMapperConfig()
	return fmt.Sprintf("[green]%s[white] → [green]%s[white]  现在 [yellow]%s[white]  进度 [yellow]%s[white]  [gray]%s/%s %.0fx%.0f[white]",
		tview.Escape(frame.Sunrise), tview.Escape(frame.Sunset), frame.Now, formatProgress(frame.Progress),
		cfg.Profile.Mode, cfg.Easing, vp.Width, vp.Height)
}
