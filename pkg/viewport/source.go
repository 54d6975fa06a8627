package viewport

import (
	"context"
	"sync"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// StaticSource 只发送一次固定视口的来源
type StaticSource struct {
	vp       core.Viewport
	ch       chan core.Viewport
	stopOnce sync.Once
}

// NewStaticSource 创建固定视口来源
func NewStaticSource(vp core.Viewport) *StaticSource {
	return &StaticSource{
		vp: vp,
		ch: make(chan core.Viewport, 1),
	}
}

// Viewports 实现core.ViewportSource接口
func (s *StaticSource) Viewports() <-chan core.Viewport {
	return s.ch
}

// Start 实现core.ViewportSource接口
func (s *StaticSource) Start() {
	select {
	case s.ch <- s.vp:
	default:
	}
}

// Stop 实现core.ViewportSource接口
func (s *StaticSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.ch)
	})
}

// Bind 将来源的尺寸通知转发给跟踪器，直到ctx结束或来源关闭
// 返回前一定会停止来源
func Bind(ctx context.Context, src core.ViewportSource, tr *Tracker) {
	src.Start()
	defer src.Stop()

	stream := src.Viewports()
	for {
		select {
		case vp, ok := <-stream:
			if !ok {
				return
			}
			tr.Notify(vp)
		case <-ctx.Done():
			return
		}
	}
}
