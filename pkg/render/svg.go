// Package render 将计算好的帧输出为矢量图或位图
package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
)

// SVGOptions SVG输出选项
type SVGOptions struct {
	Background   string // 背景色，Gradient 为真时忽略
	Gradient     bool   // 使用竖直天空渐变作为背景
	GradientTop  string
	GradientEnd  string
	PathColor    string
	SunColor     string
	LabelColor   string
	FontFamily   string
	PulsePeriod  string // 半径脉动一个周期的时长，例如 "2s"
	FillViewport bool   // 宽高写为100%，随容器缩放
}

// DefaultSVGOptions 返回默认SVG选项（黑色背景）
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Background:   "#000000",
		GradientTop:  "#1e3c72",
		GradientEnd:  "#f5af19",
		PathColor:    "#ffffff",
		SunColor:     "#ffd700",
		LabelColor:   "#ffffff",
		FontFamily:   "sans-serif",
		PulsePeriod:  "2s",
		FillViewport: true,
	}
}

// FixedSVGOptions 返回固定画布使用的选项（天空渐变、固定尺寸）
func FixedSVGOptions() SVGOptions {
	opts := DefaultSVGOptions()
	opts.Gradient = true
	opts.FillViewport = false
	return opts
}

// SVG 输出一帧的SVG文档
// 包含背景、一条二次曲线、一个带半径脉动动画的圆以及两个时间标签
func SVG(w io.Writer, f core.Frame, opts SVGOptions) error {
	g := f.Geometry
	num := trajectory.FormatNumber
	bw := bufio.NewWriter(w)

	width, height := num(g.Viewport.Width), num(g.Viewport.Height)
	if opts.FillViewport {
		fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="100%%" height="100%%" viewBox="0 0 %s %s">`, width, height)
	} else {
		fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`, width, height)
	}
	bw.WriteString("\n")

	// 背景
	if opts.Gradient {
		bw.WriteString(`  <defs>` + "\n")
		bw.WriteString(`    <linearGradient id="skyGradient" x1="0%" y1="0%" x2="0%" y2="100%">` + "\n")
		fmt.Fprintf(bw, `      <stop offset="0%%" stop-color="%s"/>`+"\n", escape(opts.GradientTop))
		fmt.Fprintf(bw, `      <stop offset="100%%" stop-color="%s"/>`+"\n", escape(opts.GradientEnd))
		bw.WriteString(`    </linearGradient>` + "\n")
		bw.WriteString(`  </defs>` + "\n")
		fmt.Fprintf(bw, `  <rect width="%s" height="%s" fill="url(#skyGradient)"/>`+"\n", width, height)
	} else {
		fmt.Fprintf(bw, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(opts.Background))
	}

	// 轨迹路径
	fmt.Fprintf(bw, `  <path d="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		trajectory.PathData(g), escape(opts.PathColor), num(g.StrokeWidth))

	// 太阳标记，半径由声明式动画驱动脉动
	r, pulse := num(g.Radius), num(g.PulseRadius)
	fmt.Fprintf(bw, `  <circle cx="%s" cy="%s" r="%s" fill="%s">`+"\n", num(f.Sun.X), num(f.Sun.Y), r, escape(opts.SunColor))
	fmt.Fprintf(bw, `    <animate attributeName="r" values="%s;%s;%s" dur="%s" repeatCount="indefinite"/>`+"\n",
		r, pulse, r, escape(opts.PulsePeriod))
	bw.WriteString(`  </circle>` + "\n")

	// 时间标签，内容为原样输入
	writeLabel(bw, g.SunriseLabel, f.Sunrise, g.FontSize, opts)
	writeLabel(bw, g.SunsetLabel, f.Sunset, g.FontSize, opts)

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// writeLabel 输出一个文本标签
func writeLabel(w *bufio.Writer, at core.Point, text string, fontSize float64, opts SVGOptions) {
	num := trajectory.FormatNumber
	fmt.Fprintf(w, `  <text x="%s" y="%s" fill="%s" font-family="%s" font-size="%spx">%s</text>`+"\n",
		num(at.X), num(at.Y), escape(opts.LabelColor), escape(opts.FontFamily), num(fontSize), escape(text))
}

// escape 转义XML特殊字符
func escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return ""
	}
	return b.String()
}
