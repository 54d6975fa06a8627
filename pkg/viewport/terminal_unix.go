//go:build unix

package viewport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// measureTerminal 通过 TIOCGWINSZ 读取终端行列和像素尺寸
func measureTerminal(fd uintptr) (terminalSize, error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return terminalSize{}, fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	if ws.Col == 0 || ws.Row == 0 {
		return terminalSize{}, ErrNotTerminal
	}
	return terminalSize{
		Cols:   int(ws.Col),
		Rows:   int(ws.Row),
		XPixel: int(ws.Xpixel),
		YPixel: int(ws.Ypixel),
	}, nil
}

// resizeSignals 终端尺寸变化信号
func resizeSignals() []os.Signal {
	return []os.Signal{unix.SIGWINCH}
}
