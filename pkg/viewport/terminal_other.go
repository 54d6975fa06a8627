//go:build !unix && !windows

package viewport

import "os"

// measureTerminal 当前平台不支持终端尺寸查询
func measureTerminal(fd uintptr) (terminalSize, error) {
	return terminalSize{}, ErrNotTerminal
}

// resizeSignals 当前平台没有尺寸变化信号
func resizeSignals() []os.Signal {
	return nil
}
