package render

import (
	"fmt"
	"io"
	"math"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/gogpu/gg"
)

// PNGOptions 位图输出选项
type PNGOptions struct {
	SVG      SVGOptions // 复用颜色设置
	FontPath string     // TTF/OTF 字体路径，为空时不绘制标签
	Pulse    float64    // 脉动相位 [0,1]，0 为基础半径，1 为最大半径
}

// DefaultPNGOptions 返回默认位图选项
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{SVG: DefaultSVGOptions()}
}

// PNG 将一帧渲染为PNG快照
// 位图没有动画，太阳半径由 Pulse 相位决定
func PNG(w io.Writer, f core.Frame, opts PNGOptions) error {
	dc, err := drawFrame(f, opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("编码PNG失败: %w", err)
	}
	return nil
}

// drawFrame 在新的绘图上下文中绘制一帧
func drawFrame(f core.Frame, opts PNGOptions) (*gg.Context, error) {
	g := f.Geometry
	width := int(math.Ceil(g.Viewport.Width))
	height := int(math.Ceil(g.Viewport.Height))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)

	// 背景
	if opts.SVG.Gradient {
		sky := gg.NewLinearGradientBrush(0, 0, 0, float64(height)).
			AddColorStop(0, gg.Hex(opts.SVG.GradientTop)).
			AddColorStop(1, gg.Hex(opts.SVG.GradientEnd))
		dc.SetFillBrush(sky)
		dc.DrawRectangle(0, 0, float64(width), float64(height))
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("绘制背景失败: %w", err)
		}
	} else {
		dc.ClearWithColor(gg.Hex(opts.SVG.Background))
	}

	// 轨迹路径
	dc.SetHexColor(opts.SVG.PathColor)
	dc.SetLineWidth(g.StrokeWidth)
	dc.MoveTo(g.Start.X, g.Start.Y)
	dc.QuadraticTo(g.Control.X, g.Control.Y, g.End.X, g.End.Y)
	if err := dc.Stroke(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("绘制轨迹失败: %w", err)
	}

	// 太阳标记
	pulse := math.Max(0, math.Min(1, opts.Pulse))
	radius := g.Radius + (g.PulseRadius-g.Radius)*pulse
	dc.SetHexColor(opts.SVG.SunColor)
	dc.DrawCircle(f.Sun.X, f.Sun.Y, radius)
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("绘制太阳失败: %w", err)
	}

	// 时间标签需要字体
	if opts.FontPath != "" {
		if err := dc.LoadFontFace(opts.FontPath, g.FontSize); err != nil {
			dc.Close()
			return nil, fmt.Errorf("加载字体失败: %w", err)
		}
		dc.SetHexColor(opts.SVG.LabelColor)
		dc.DrawString(f.Sunrise, g.SunriseLabel.X, g.SunriseLabel.Y)
		dc.DrawString(f.Sunset, g.SunsetLabel.X, g.SunsetLabel.Y)
	}

	return dc, nil
}
