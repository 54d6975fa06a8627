package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/netutil"
)

// NewRouter 注册路由并返回配置好的 http.Server
func NewRouter(cfg *Config, h *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(h.logger),
		errorHandlingMiddleware(h.logger),
	)

	router.GET("/healthz", h.Health)
	router.GET("/sun.svg", h.SVG)
	router.GET("/sun.png", h.PNG)

	api := router.Group("/api/v1")
	{
		api.GET("/frame", h.Frame)
	}

	return &http.Server{
		Addr:           cfg.Address,
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "query", c.Request.URL.RawQuery, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}

// Listen 在配置的地址上监听，同时接受的连接数不超过 MaxConns
// 超出上限的连接留在内核队列中，直到有连接关闭
func Listen(cfg *Config) (net.Listener, error) {
	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, err
	}
	return netutil.LimitListener(ln, cfg.MaxConns), nil
}

// Serve 在 ln 上提供服务并阻塞，ctx 取消后优雅关闭
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutdown signal received")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
