// Package viewport 跟踪渲染表面的尺寸
// 提供观察者注册/注销以及宿主环境尺寸来源的适配
package viewport

import (
	"sync"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// Listener 尺寸变化回调
type Listener func(core.Viewport)

// Tracker 保存最近一次尺寸通知并分发给订阅者
// 每次通知整体替换视口，不做防抖或节流
// 回调按通知顺序串行执行，订阅者最后收到的视口总是 Current 的值
type Tracker struct {
	// deliverMu 串行化状态更新与回调分发，mu 只保护状态
	deliverMu sync.Mutex
	mu        sync.RWMutex
	current   core.Viewport
	measured  bool
	listeners []subscription
	nextID    uint64
}

// subscription 一个已注册的订阅者
type subscription struct {
	id uint64
	fn Listener
}

// NewTracker 创建新的尺寸跟踪器
func NewTracker() *Tracker {
	return &Tracker{}
}

// Notify 记录新的视口并同步通知所有订阅者
// 回调中可以注销或读取 Current，但不能再调用 Notify 或 Subscribe
func (t *Tracker) Notify(vp core.Viewport) {
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()

	t.mu.Lock()
	t.current = vp
	t.measured = true
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	for _, fn := range snapshot {
		fn(vp)
	}
}

// Current 返回最近一次通知的视口，尚未测量时第二个返回值为 false
func (t *Tracker) Current() (core.Viewport, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.measured
}

// Subscribe 注册订阅者并返回注销函数
// 如果已有测量结果，会立即以当前视口回调一次
// 注销函数可重复调用
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	t.deliverMu.Lock()
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})
	vp, measured := t.current, t.measured
	t.mu.Unlock()

	if measured {
		fn(vp)
	}
	t.deliverMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, sub := range t.listeners {
				if sub.id == id {
					t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Len 返回当前订阅者数量
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners)
}

// snapshotLocked 按注册顺序复制订阅者列表，调用方需持有锁
func (t *Tracker) snapshotLocked() []Listener {
	snapshot := make([]Listener, 0, len(t.listeners))
	for _, sub := range t.listeners {
		snapshot = append(snapshot, sub.fn)
	}
	return snapshot
}
