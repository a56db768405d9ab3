package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// New 根据配置创建zap日志
// 设计说明：
// 1. format=json 使用生产环境编码（便于日志采集），console 使用开发环境编码（便于阅读）
// 2. 创建后替换zap全局Logger，pkg/response等无注入点的地方通过zap.L()使用
func New(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Log.Level, err)
	}

	var zcfg zap.Config
	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		zcfg = zap.NewProductionConfig()
	default:
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableCaller = !cfg.Log.EnableCaller

	output := cfg.Log.Output
	if output == "" {
		output = "stdout"
	}
	zcfg.OutputPaths = []string{output}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志失败: %w", err)
	}
	log = log.With(zap.String("service", cfg.Tracing.ServiceName))

	zap.ReplaceGlobals(log)
	return log, nil
}
