package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kevin-Rudy/gosun/pkg/core"
	"github.com/Kevin-Rudy/gosun/pkg/trajectory"
)

func TestRouter_Health(t *testing.T) {
	recorder := performRequest("/healthz", newRouterUnderTest(t, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
}

func TestRouter_FrameJSON(t *testing.T) {
	recorder := performRequest("/api/v1/frame?sunrise=06:00&sunset=18:00&profile=fixed", newRouterUnderTest(t, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var frame core.Frame
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &frame))
	require.Equal(t, "06:00", frame.Sunrise)
	require.Equal(t, "18:00", frame.Sunset)
	require.InDelta(t, 0.5, frame.Progress, 1e-9)
	require.Equal(t, core.Viewport{Width: 400, Height: 200}, frame.Geometry.Viewport)
	require.InDelta(t, 200, frame.Sun.X, 1e-9)
	require.InDelta(t, 40, frame.Sun.Y, 1e-9)
}

func TestRouter_FrameUsesConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sunrise = "11:00"
	cfg.Sunset = "13:00"

	recorder := performRequest("/api/v1/frame?w=100&h=50&easing=bezier", newRouterUnderTest(t, cfg))
	require.Equal(t, http.StatusOK, recorder.Code)

	var frame core.Frame
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &frame))
	require.Equal(t, "11:00", frame.Sunrise)
	require.Equal(t, core.Viewport{Width: 100, Height: 50}, frame.Geometry.Viewport)
	// 对称曲线在 t=0.5 处位于水平中央
	require.InDelta(t, 50, frame.Sun.X, 1e-9)
}

func TestRouter_SVG(t *testing.T) {
	recorder := performRequest("/sun.svg?sunrise=06:00&sunset=18:00&profile=fixed", newRouterUnderTest(t, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "image/svg+xml", recorder.Header().Get("Content-Type"))
	require.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))

	body := recorder.Body.String()
	require.True(t, strings.HasPrefix(body, "<svg"))
	require.Contains(t, body, `d="M 40 160 Q 200 40 360 160"`)
	require.Contains(t, body, `<animate attributeName="r"`)
	require.Contains(t, body, ">06:00</text>")
	require.Contains(t, body, ">18:00</text>")
}

func TestRouter_PNG(t *testing.T) {
	recorder := performRequest("/sun.png?w=120&h=60", newRouterUnderTest(t, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "image/png", recorder.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(recorder.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 120, img.Bounds().Dx())
	require.Equal(t, 60, img.Bounds().Dy())
}

func TestRouter_InvalidTime(t *testing.T) {
	recorder := performRequest("/sun.svg?sunrise=abc&sunset=18:00", newRouterUnderTest(t, nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_time", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "日出时间")
}

func TestRouter_InvalidQuery(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	tests := []struct {
		path string
		code string
	}{
		{"/sun.svg?profile=tiny", "invalid_profile"},
		{"/sun.svg?easing=linear", "invalid_easing"},
		{"/sun.svg?w=abc", "invalid_viewport"},
		{"/api/v1/frame?h=-1", "invalid_viewport"},
	}

	for _, tt := range tests {
		recorder := performRequest(tt.path, server)
		require.Equal(t, http.StatusBadRequest, recorder.Code, tt.path)
		require.Equal(t, tt.code, decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"], tt.path)
	}
}

func TestRouter_ViewportTooLarge(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	for _, path := range []string{
		"/sun.png?w=6000&h=6000",
		"/sun.svg?w=4097",
		"/api/v1/frame?h=1e9",
	} {
		recorder := performRequest(path, server)
		require.Equal(t, http.StatusBadRequest, recorder.Code, path)
		require.Equal(t, "invalid_viewport", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"], path)
	}

	// 上限本身可以使用
	recorder := performRequest("/sun.png?w=4096&h=1", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	cfg := DefaultConfig()
	cfg.MaxWidth = 100
	recorder = performRequest("/sun.svg?w=101&h=50", newRouterUnderTest(t, cfg))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, decodeErrorBody(t, recorder.Body.Bytes())["error"]["message"], "100")
}

func TestRouter_ZeroViewportSuppressesRendering(t *testing.T) {
	server := newRouterUnderTest(t, nil)

	recorder := performRequest("/sun.svg?w=0&h=0", server)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Zero(t, recorder.Body.Len())

	// 固定策略忽略视口
	recorder = performRequest("/sun.svg?w=0&h=0&profile=fixed", server)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	var nilCfg *Config
	require.Error(t, nilCfg.Validate())

	cfg := DefaultConfig()
	cfg.Address = ""
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Sunrise = "6"
	require.ErrorIs(t, cfg.Validate(), trajectory.ErrInvalidTime)

	cfg = DefaultConfig()
	cfg.Width = -1
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Mapper = nil
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxWidth = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxHeight = 100
	require.Error(t, cfg.Validate(), "default height above the cap")

	cfg = DefaultConfig()
	cfg.MaxConns = 0
	require.Error(t, cfg.Validate())
}

func TestServe_LimitsConnections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.MaxConns = 1

	ln, err := Listen(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, newRouterUnderTest(t, cfg), ln, newTestLogger())
	}()

	addr := ln.Addr().String()
	get := func(timeout time.Duration) (*http.Response, error) {
		client := &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		}
		return client.Get("http://" + addr + "/healthz")
	}

	resp, err := get(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 占用唯一的连接名额，之后的请求在关闭前得不到响应
	held, err := net.Dial("tcp", addr)
	require.NoError(t, err)

	_, err = get(200 * time.Millisecond)
	require.Error(t, err)

	require.NoError(t, held.Close())

	resp, err = get(2 * time.Second)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve should return after the context is cancelled")
	}
}

func performRequest(path string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, cfg *Config) *http.Server {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	handler := NewHandler(cfg, newTestLogger(), clock)
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
