//go:build windows

package viewport

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// measureTerminal 通过控制台缓冲区信息读取可见窗口的行列
// Windows 控制台不报告像素尺寸
func measureTerminal(fd uintptr) (terminalSize, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(fd), &info); err != nil {
		return terminalSize{}, fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	return terminalSize{
		Cols: int(info.Window.Right-info.Window.Left) + 1,
		Rows: int(info.Window.Bottom-info.Window.Top) + 1,
	}, nil
}

// resizeSignals Windows 没有尺寸变化信号，改为轮询
func resizeSignals() []os.Signal {
	return nil
}
