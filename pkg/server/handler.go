package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/render"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
)

// Handler 处理太阳轨迹相关的HTTP请求
type Handler struct {
	cfg    *Config
	logger *slog.Logger
	clock  core.Clock
}

// NewHandler 创建处理器，clock 为空时由映射器使用系统时钟
func NewHandler(cfg *Config, logger *slog.Logger, clock core.Clock) *Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Mapper == nil {
		cfg.Mapper = trajectory.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, logger: logger.With("component", "server"), clock: clock}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SVG 返回带动画的SVG组件
func (h *Handler) SVG(c *gin.Context) {
	h.image(c, render.FormatSVG)
}

// PNG 返回当前时刻的PNG快照
func (h *Handler) PNG(c *gin.Context) {
	h.image(c, render.FormatPNG)
}

// Frame 以JSON返回计算好的帧
func (h *Handler) Frame(c *gin.Context) {
	frame, _, ok := h.frame(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, frame)
}

func (h *Handler) image(c *gin.Context, format render.Format) {
	frame, cfg, ok := h.frame(c)
	if !ok {
		return
	}

	opts := render.DefaultPNGOptions()
	if cfg.Profile.Mode == trajectory.SizingFixed {
		opts.SVG = render.FixedSVGOptions()
	}
	opts.FontPath = h.cfg.FontPath

	var buf bytes.Buffer
	if err := render.Render(&buf, frame, format, opts); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "render_failed", "failed to render "+format.String(), err))
		return
	}

	// 内容随时钟变化，不允许缓存
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// frame 根据查询参数计算帧
// 返回 false 时响应已经处理完毕（错误或视口为空时的 204）
func (h *Handler) frame(c *gin.Context) (core.Frame, *trajectory.Config, bool) {
	cfg, httpErr := h.mapperConfig(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return core.Frame{}, nil, false
	}

	vp, httpErr := h.viewport(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return core.Frame{}, nil, false
	}

	sunrise := c.DefaultQuery("sunrise", h.cfg.Sunrise)
	sunset := c.DefaultQuery("sunset", h.cfg.Sunset)

	frame, err := trajectory.NewMapper(cfg, h.clock).Frame(sunrise, sunset, vp)
	switch {
	case errors.Is(err, trajectory.ErrNoViewport):
		c.Status(http.StatusNoContent)
		c.Abort()
		return core.Frame{}, nil, false
	case errors.Is(err, trajectory.ErrInvalidTime):
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_time", err.Error(), err))
		return core.Frame{}, nil, false
	case err != nil:
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "frame_failed", "", err))
		return core.Frame{}, nil, false
	}

	return frame, cfg, true
}

// mapperConfig 在默认配置上应用 profile 与 easing 查询参数
func (h *Handler) mapperConfig(c *gin.Context) (*trajectory.Config, *HTTPError) {
	cfg := *h.cfg.Mapper

	if name, ok := c.GetQuery("profile"); ok {
		profile, err := trajectory.ProfileByName(name)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid_profile", err.Error(), err)
		}
		cfg.Profile = profile
	}

	if name, ok := c.GetQuery("easing"); ok {
		easing, err := trajectory.ParseEasing(name)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid_easing", err.Error(), err)
		}
		cfg.Easing = easing
	}

	return &cfg, nil
}

// viewport 读取 w、h 查询参数，缺省时使用配置的尺寸
func (h *Handler) viewport(c *gin.Context) (core.Viewport, *HTTPError) {
	vp := core.Viewport{Width: h.cfg.Width, Height: h.cfg.Height}

	for _, p := range []struct {
		key string
		max float64
		dst *float64
	}{
		{"w", h.cfg.MaxWidth, &vp.Width},
		{"h", h.cfg.MaxHeight, &vp.Height},
	} {
		raw, ok := c.GetQuery(p.key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return core.Viewport{}, NewHTTPError(http.StatusBadRequest, "invalid_viewport", "viewport size must be a non-negative number", err)
		}
		if v > p.max {
			msg := fmt.Sprintf("viewport %s must not exceed %s", p.key, strconv.FormatFloat(p.max, 'f', -1, 64))
			return core.Viewport{}, NewHTTPError(http.StatusBadRequest, "invalid_viewport", msg, nil)
		}
		*p.dst = v
	}

	return vp, nil
}
