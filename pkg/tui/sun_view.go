// Package tui 太阳轨迹视图
package tui

import (
	"errors"
	"math"
	"sync"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
	"github.com/Kevin-Rudy/gosun/pkg/viewport"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// sceneLabel 以字符单元定位的文本标签
type sceneLabel struct {
	text     string
	col, row int
}

// scene 一次绘制的全部内容
type scene struct {
	canvas  *brailleCanvas
	frame   core.Frame
	labels  []sceneLabel
	message string // 非空时只显示提示信息
}

// SunView 在盲文画布上绘制太阳轨迹的 tview 组件
// 每次绘制都会测量自身尺寸，尺寸变化时通知跟踪器
type SunView struct {
	*tview.Box

	config  *Config
	tracker *viewport.Tracker
	clock   core.Clock

	mu       sync.RWMutex
	mapper   *trajectory.Mapper
	sunrise  string
	sunset   string
	measured core.Viewport // 最近一次通知给跟踪器的尺寸
	frame    core.Frame
	hasFrame bool
}

// NewSunView 创建太阳轨迹视图
func NewSunView(sunrise, sunset string, mapper *trajectory.Mapper, tracker *viewport.Tracker, clock core.Clock, config *Config) *SunView {
	return &SunView{
		Box:     tview.NewBox(),
		config:  config,
		tracker: tracker,
		clock:   clock,
		mapper:  mapper,
		sunrise: sunrise,
		sunset:  sunset,
	}
}

// SetMapper 替换映射器（切换尺寸策略或运动方式）
func (v *SunView) SetMapper(m *trajectory.Mapper) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mapper = m
}

// SetTimes 替换日出日落时间
func (v *SunView) SetTimes(sunrise, sunset string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sunrise, v.sunset = sunrise, sunset
}

// Frame 返回最近一次成功绘制的帧
func (v *SunView) Frame() (core.Frame, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.frame, v.hasFrame
}

// Draw 实现 tview.Primitive
func (v *SunView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()

	sc, ok := v.compose(width, height)
	if !ok {
		return
	}

	if sc.message != "" {
		tview.Print(screen, tview.Escape(sc.message), x, y+height/2, width, tview.AlignCenter, tcell.ColorYellow)
		return
	}

	pathStyle := tcell.StyleDefault.Foreground(v.config.PathColor)
	sunStyle := tcell.StyleDefault.Foreground(v.config.SunColor)
	for col := 0; col < sc.canvas.cols; col++ {
		for row := 0; row < sc.canvas.rows; row++ {
			r, layer := sc.canvas.cell(col, row)
			if r == 0 {
				continue
			}
			style := pathStyle
			if layer == layerSun {
				style = sunStyle
			}
			screen.SetContent(x+col, y+row, r, nil, style)
		}
	}

	for _, l := range sc.labels {
		tview.Print(screen, tview.Escape(l.text), x+l.col, y+l.row, width-l.col, tview.AlignLeft, v.config.LabelColor)
	}
}

// compose 计算 cols x rows 区域内的绘制内容
// 第二个返回值为 false 表示首次测量前或视口无效，不绘制任何内容
func (v *SunView) compose(cols, rows int) (scene, bool) {
	if cols <= 0 || rows <= 0 {
		return scene{}, false
	}
	if cols < v.config.MinViewCols || rows < v.config.MinViewRows {
		return scene{message: "终端尺寸过小"}, true
	}

	canvas := newBrailleCanvas(cols, rows)
	v.notifyResize(canvas.viewport())

	current, measured := v.tracker.Current()
	if !measured {
		return scene{}, false
	}

	v.mu.RLock()
	mapper, sunrise, sunset := v.mapper, v.sunrise, v.sunset
	v.mu.RUnlock()

	frame, err := mapper.Frame(sunrise, sunset, current)
	if errors.Is(err, trajectory.ErrNoViewport) {
		return scene{}, false
	}
	if err != nil {
		return scene{message: err.Error()}, true
	}

	// 固定策略的几何与画布尺寸不同，按比例缩放到画布
	g := frame.Geometry
	target := canvas.viewport()
	sx := target.Width / g.Viewport.Width
	sy := target.Height / g.Viewport.Height

	canvas.drawQuadratic(scalePoint(g.Start, sx, sy), scalePoint(g.Control, sx, sy), scalePoint(g.End, sx, sy), layerPath)

	radius := g.Radius + (g.PulseRadius-g.Radius)*pulsePhase(v.clock(), v.config.PulsePeriod)
	canvas.fillDisk(scalePoint(frame.Sun, sx, sy), radius*math.Min(sx, sy), layerSun)

	sc := scene{
		canvas: canvas,
		frame:  frame,
		labels: []sceneLabel{
			placeLabel(frame.Sunrise, scalePoint(g.SunriseLabel, sx, sy), cols, rows),
			placeLabel(frame.Sunset, scalePoint(g.SunsetLabel, sx, sy), cols, rows),
		},
	}

	v.mu.Lock()
	v.frame, v.hasFrame = frame, true
	v.mu.Unlock()

	return sc, true
}

// notifyResize 尺寸变化时通知跟踪器
func (v *SunView) notifyResize(vp core.Viewport) {
	v.mu.Lock()
	changed := vp != v.measured
	v.measured = vp
	v.mu.Unlock()

	if changed {
		v.tracker.Notify(vp)
	}
}

// placeLabel 将子像素坐标的标签放到字符单元上，保证完整可见
func placeLabel(text string, at core.Point, cols, rows int) sceneLabel {
	width := tview.TaggedStringWidth(tview.Escape(text))
	return sceneLabel{
		text: text,
		col:  clampInt(int(at.X)/subPixelsX, 0, max(0, cols-width)),
		row:  clampInt(int(at.Y)/subPixelsY, 0, rows-1),
	}
}
