package core

import (
	"math"
	"testing"
	"time"
)

// TestTimeOfDayString 测试小时数格式化
func TestTimeOfDayString(t *testing.T) {
	cases := []struct {
		in   TimeOfDay
		want string
	}{
		{0, "00:00"},
		{6, "06:00"},
		{12.5, "12:30"},
		{23 + 59.0/60, "23:59"},
		{25 + 99.0/60, "26:39"},
		{TimeOfDay(math.NaN()), "--:--"},
	}

	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("TimeOfDay(%v).String() = %q, want %q", float64(c.in), got, c.want)
		}
	}
}

// TestViewportIsZero 测试未测量视口的判定
func TestViewportIsZero(t *testing.T) {
	if !(Viewport{}).IsZero() {
		t.Error("Empty viewport should be zero")
	}
	if !(Viewport{Width: 100}).IsZero() {
		t.Error("Viewport without height should be zero")
	}
	if (Viewport{Width: 400, Height: 200}).IsZero() {
		t.Error("400x200 viewport should not be zero")
	}
	if got := (Viewport{Width: 400, Height: 200}).MinSide(); got != 200 {
		t.Errorf("Expected MinSide=200, got %f", got)
	}
}

// mockViewportSource 模拟视口来源，用于测试
type mockViewportSource struct {
	ch      chan Viewport
	started bool
	stopped bool
}

func newMockViewportSource() *mockViewportSource {
	return &mockViewportSource{ch: make(chan Viewport, 10)}
}

func (m *mockViewportSource) Viewports() <-chan Viewport {
	return m.ch
}

func (m *mockViewportSource) Start() {
	m.started = true
	go func() {
		for i := 1; i <= 3; i++ {
			m.ch <- Viewport{Width: float64(i * 100), Height: float64(i * 50)}
			time.Sleep(5 * time.Millisecond)
		}
		close(m.ch)
	}()
}

func (m *mockViewportSource) Stop() {
	m.stopped = true
}

// TestViewportSourceInterface 测试ViewportSource接口
func TestViewportSourceInterface(t *testing.T) {
	var src ViewportSource = newMockViewportSource()
	src.Start()

	var last Viewport
	count := 0
	timeout := time.After(200 * time.Millisecond)

loop:
	for {
		select {
		case vp, ok := <-src.Viewports():
			if !ok {
				break loop
			}
			count++
			last = vp
		case <-timeout:
			break loop
		}
	}

	if count != 3 {
		t.Errorf("Expected 3 notifications, got %d", count)
	}
	if last.Width != 300 || last.Height != 150 {
		t.Errorf("Expected last viewport 300x150, got %vx%v", last.Width, last.Height)
	}

	src.Stop()
	if !src.(*mockViewportSource).stopped {
		t.Error("ViewportSource should be stopped after Stop() call")
	}
}
