// Package tui 交互控制模块
package tui

import (
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
	"github.com/gdamore/tcell/v2"
)

// setupKeyBindings 设置键盘绑定
func (t *TUI) setupKeyBindings() {
	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			t.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				t.Stop()
				return nil
			case 'e', 'E':
				t.toggleEasing()
				return nil
			case 'p', 'P':
				t.toggleProfile()
				return nil
			}
		}
		return event
	})
}

// toggleEasing 在正弦升降与贝塞尔曲线之间切换
func (t *TUI) toggleEasing() {
	next := *t.currentMapperConfig()
	if next.Easing == trajectory.EasingSine {
		next.Easing = trajectory.EasingBezier
	} else {
		next.Easing = trajectory.EasingSine
	}
	t.applyMapperConfig(&next)
	t.logger.Info("easing toggled", "easing", next.Easing)
}

// toggleProfile 在响应式与固定尺寸策略之间切换
// 离开的策略参数会被保留，再次切换回来时恢复
func (t *TUI) toggleProfile() {
	t.viewportMu.Lock()
	next := *t.mapperConfig
	if next.Profile.Mode == trajectory.SizingResponsive {
		t.responsiveProfile = next.Profile
		next.Profile = t.fixedProfile
	} else {
		t.fixedProfile = next.Profile
		next.Profile = t.responsiveProfile
	}
	t.viewportMu.Unlock()

	t.applyMapperConfig(&next)
	t.logger.Info("profile toggled", "profile", next.Profile.Mode)
}

// currentMapperConfig 返回当前映射器配置
func (t *TUI) currentMapperConfig() *trajectory.Config {
	t.viewportMu.RLock()
	defer t.viewportMu.RUnlock()
	return t.mapperConfig
}

// applyMapperConfig 整体替换映射器配置
func (t *TUI) applyMapperConfig(cfg *trajectory.Config) {
	t.viewportMu.Lock()
	t.mapperConfig = cfg
	t.viewportMu.Unlock()

	t.view.SetMapper(trajectory.NewMapper(cfg, t.clock))
	if !t.testMode {
		t.updateStatus()
	}
}
