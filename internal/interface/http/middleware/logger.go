package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 生成请求ID（客户端传入X-Request-ID时沿用）
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 慢请求输出Warn日志
//
// 不记录请求体和Authorization头
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 请求ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		// 步骤2: 处理请求
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 步骤3: 结构化日志
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("http request", fields...)
		case latency > slowRequestThreshold:
			logger.Warn("slow request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}
