package viewport

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// ErrNotTerminal 文件不是终端或无法获取尺寸
var ErrNotTerminal = errors.New("无法获取终端尺寸")

// 终端未报告像素尺寸时使用的字符单元大小
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// terminalSize 终端的行列与像素尺寸，像素为0表示终端未报告
type terminalSize struct {
	Cols, Rows     int
	XPixel, YPixel int
}

// TerminalSource 以控制终端的像素尺寸作为视口
// 支持 SIGWINCH 的平台上随窗口变化重新测量，其余平台定时轮询
type TerminalSource struct {
	file         *os.File
	cellWidth    float64
	cellHeight   float64
	pollInterval time.Duration

	ch        chan core.Viewport
	stopChan  chan struct{}
	wg        sync.WaitGroup
	running   bool
	stopped   bool // 停止后不可重新启动
	runningMu sync.Mutex
}

// NewTerminalSource 为给定终端文件创建尺寸来源，file 为空时使用标准输出
func NewTerminalSource(file *os.File) *TerminalSource {
	if file == nil {
		file = os.Stdout
	}
	return &TerminalSource{
		file:         file,
		cellWidth:    DefaultCellWidth,
		cellHeight:   DefaultCellHeight,
		pollInterval: 500 * time.Millisecond,
		ch:           make(chan core.Viewport, 1),
		stopChan:     make(chan struct{}),
	}
}

// Measure 测量一次终端视口
func (s *TerminalSource) Measure() (core.Viewport, error) {
	size, err := measureTerminal(s.file.Fd())
	if err != nil {
		return core.Viewport{}, err
	}
	return s.toViewport(size), nil
}

// toViewport 优先使用终端报告的像素尺寸，否则按字符单元估算
func (s *TerminalSource) toViewport(size terminalSize) core.Viewport {
	if size.XPixel > 0 && size.YPixel > 0 {
		return core.Viewport{Width: float64(size.XPixel), Height: float64(size.YPixel)}
	}
	return core.Viewport{
		Width:  float64(size.Cols) * s.cellWidth,
		Height: float64(size.Rows) * s.cellHeight,
	}
}

// Viewports 实现core.ViewportSource接口
func (s *TerminalSource) Viewports() <-chan core.Viewport {
	return s.ch
}

// Start 实现core.ViewportSource接口
func (s *TerminalSource) Start() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running || s.stopped {
		return
	}
	s.running = true

	s.wg.Add(1)
	go s.watch()
}

// Stop 实现core.ViewportSource接口
func (s *TerminalSource) Stop() {
	s.runningMu.Lock()
	if !s.running {
		s.runningMu.Unlock()
		return
	}
	s.running = false
	s.stopped = true
	s.runningMu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	close(s.ch)
}

// watch 发送初始尺寸，然后在尺寸变化时重新发送
func (s *TerminalSource) watch() {
	defer s.wg.Done()

	var last core.Viewport
	emit := func() {
		vp, err := s.Measure()
		if err != nil || vp == last {
			return
		}
		last = vp
		// 只保留最新的尺寸，丢弃未消费的旧值
		select {
		case <-s.ch:
		default:
		}
		s.ch <- vp
	}

	emit()

	var tick <-chan time.Time
	sigChan := make(chan os.Signal, 1)
	if sigs := resizeSignals(); len(sigs) > 0 {
		signal.Notify(sigChan, sigs...)
		defer signal.Stop(sigChan)
	} else {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-sigChan:
			emit()
		case <-tick:
			emit()
		case <-s.stopChan:
			return
		}
	}
}
