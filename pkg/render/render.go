package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Kevin-Rudy/gosun/pkg/core"
)

// Format 输出格式
type Format int

const (
	FormatSVG Format = iota
	FormatPNG
)

// String 返回格式名称
func (f Format) String() string {
	if f == FormatPNG {
		return "png"
	}
	return "svg"
}

// ContentType 返回对应的MIME类型
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// ParseFormat 根据名称或文件扩展名获取输出格式
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return FormatSVG, fmt.Errorf("不支持的输出格式: %q（可选 svg, png）", name)
	}
}

// Render 按格式输出一帧
func Render(w io.Writer, f core.Frame, format Format, opts PNGOptions) error {
	switch format {
	case FormatPNG:
		return PNG(w, f, opts)
	default:
		return SVG(w, f, opts.SVG)
	}
}
