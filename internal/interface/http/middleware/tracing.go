package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Tracing 为每个请求创建根Span
// 1. 请求头带traceparent时延续上游的Trace
// 2. 用例层的Span挂在它下面，日志中间件从同一个ctx提取trace_id
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracing.StartSpan(ctx, c.Request.Method+" "+route,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}
