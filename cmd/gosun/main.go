package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 服务模式下由信号触发优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 创建CLI应用
	app := createCliApp()

	// 运行应用
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
