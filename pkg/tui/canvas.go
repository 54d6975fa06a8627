// Package tui 盲文画布模块
package tui

import (
	"math"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
)

// 每个终端字符单元对应的盲文子像素
const (
	subPixelsX = 2
	subPixelsY = 4
)

// 盲文点阵的映射关系 (2x4 grid)
var brailleDotMap = [subPixelsY][subPixelsX]int{
	{0b00000001, 0b00001000}, // (y:0, x:0), (y:0, x:1)
	{0b00000010, 0b00010000}, // (y:1, x:0), (y:1, x:1)
	{0b00000100, 0b00100000}, // (y:2, x:0), (y:2, x:1)
	{0b01000000, 0b10000000}, // (y:3, x:0), (y:3, x:1)
}

// cellLayer 单元格所属的图层，后绘制的图层覆盖颜色
type cellLayer int

const (
	layerNone cellLayer = iota
	layerPath
	layerSun
)

// brailleCell 定义盲文字符的cell结构
type brailleCell struct {
	char  int
	layer cellLayer
}

// brailleCanvas 以子像素为坐标的盲文画布
type brailleCanvas struct {
	cols, rows int
	cells      [][]brailleCell // [列][行]
}

// newBrailleCanvas 创建 cols x rows 个字符单元的画布
func newBrailleCanvas(cols, rows int) *brailleCanvas {
	cells := make([][]brailleCell, cols)
	for i := range cells {
		cells[i] = make([]brailleCell, rows)
	}
	return &brailleCanvas{cols: cols, rows: rows, cells: cells}
}

// viewport 返回画布的子像素尺寸
func (c *brailleCanvas) viewport() core.Viewport {
	return core.Viewport{Width: float64(c.cols * subPixelsX), Height: float64(c.rows * subPixelsY)}
}

// set 点亮一个子像素
func (c *brailleCanvas) set(x, y int, layer cellLayer) {
	if x < 0 || y < 0 || x >= c.cols*subPixelsX || y >= c.rows*subPixelsY {
		return
	}
	cell := &c.cells[x/subPixelsX][y/subPixelsY]
	cell.char |= brailleDotMap[y%subPixelsY][x%subPixelsX]
	if layer > cell.layer {
		cell.layer = layer
	}
}

// drawLine 使用布雷森汉姆算法在画布上绘制线段
func (c *brailleCanvas) drawLine(x1, y1, x2, y2 int, layer cellLayer) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		c.set(x, y, layer)

		// 检查是否到达终点
		if x == x2 && y == y2 {
			break
		}

		// 计算下一个位置
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// drawQuadratic 以折线近似绘制二次贝塞尔曲线
func (c *brailleCanvas) drawQuadratic(p0, p1, p2 core.Point, layer cellLayer) {
	// 每两个子像素至少一段，保证曲线连续
	segments := int(math.Max(16, math.Abs(p2.X-p0.X)/2))

	prevX, prevY := round(p0.X), round(p0.Y)
	for i := 1; i <= segments; i++ {
		pt := trajectory.QuadraticPoint(p0, p1, p2, float64(i)/float64(segments))
		x, y := round(pt.X), round(pt.Y)
		c.drawLine(prevX, prevY, x, y, layer)
		prevX, prevY = x, y
	}
}

// fillDisk 填充以 center 为圆心的圆盘，半径不足一个子像素时至少点亮圆心
func (c *brailleCanvas) fillDisk(center core.Point, radius float64, layer cellLayer) {
	cx, cy := round(center.X), round(center.Y)
	c.set(cx, cy, layer)

	r := int(math.Ceil(radius))
	r2 := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.set(cx+dx, cy+dy, layer)
			}
		}
	}
}

// cell 返回指定字符单元的盲文字符，空单元返回 0
func (c *brailleCanvas) cell(col, row int) (rune, cellLayer) {
	cell := c.cells[col][row]
	if cell.char == 0 {
		return 0, layerNone
	}
	return rune(0x2800 + cell.char), cell.layer
}

// lines 将画布转为纯文本行，空单元输出空格
func (c *brailleCanvas) lines() []string {
	out := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		line := make([]rune, c.cols)
		for col := 0; col < c.cols; col++ {
			if r, _ := c.cell(col, row); r != 0 {
				line[col] = r
			} else {
				line[col] = ' '
			}
		}
		out[row] = string(line)
	}
	return out
}

func round(v float64) int {
	return int(math.Round(v))
}
