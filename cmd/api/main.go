package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// @title           图书目录 API
// @version         1.0
// @description     图书目录服务：图书管理、点赞收藏评分、聚合视图
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     格式: Bearer {access_token}

// main 主程序入口
// 启动流程：配置 → 日志 → 链路追踪 → 指标 → 依赖注入（Wire） → HTTP服务 → 优雅关闭
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志（替换zap全局Logger）
	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			zlog.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zlog.Warn("关闭链路追踪失败", zap.Error(err))
			}
		}()
		zlog.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 4. Prometheus指标
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 5. 依赖注入（Wire生成）
	engine, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 6. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("服务启动成功", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 7. 优雅关闭：停止接收新请求，等待现有请求处理完成
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在优雅关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务器强制关闭", zap.Error(err))
		return
	}

	zlog.Info("服务已关闭")
}
