package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Metrics HTTP请求指标
// path标签使用路由模板（/api/v1/books/:id），避免标签基数爆炸
func Metrics() gin.HandlerFunc {
	metrics.InitMetrics()

	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
