// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
//   - HTTP指标：请求总数、耗时、正在处理的请求数（由middleware.Metrics记录）
//   - 业务指标：图书写操作、关系更新、用户登录、用例耗时（由application层记录）
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds），
// 标签只使用有限取值（method、status、operation、result），不使用user_id等高基数字段。
//
// 使用示例：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	err := doSomething(ctx)
//	metrics.ObserveUseCase("book.publish", start, err)
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// BookOperationsTotal 图书写操作总数
	// 标签：operation（create/update/delete）、result（success/forbidden/not_found/invalid/error）
	BookOperationsTotal *prometheus.CounterVec

	// RelationUpdatesTotal 用户-图书关系更新总数
	// 标签：result
	RelationUpdatesTotal *prometheus.CounterVec

	// UserLoginsTotal 登录总数
	// 标签：result
	UserLoginsTotal *prometheus.CounterVec

	// UseCaseDuration 用例耗时
	// 标签：usecase（如book.list、relation.patch）
	UseCaseDuration *prometheus.HistogramVec
)

// InitMetrics 初始化所有Prometheus指标
// 注册到默认Registry，多次调用只注册一次
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_book_operations_total",
				Help: "图书写操作总数",
			},
			[]string{"operation", "result"},
		)

		RelationUpdatesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_relation_updates_total",
				Help: "用户-图书关系更新总数",
			},
			[]string{"result"},
		)

		UserLoginsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_user_logins_total",
				Help: "用户登录总数",
			},
			[]string{"result"},
		)

		UseCaseDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_usecase_duration_seconds",
				Help:    "用例执行耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"usecase"},
		)
	})
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// 下面几个业务指标函数会先确保指标已注册，调用方不需要关心初始化顺序

// ObserveUseCase 记录用例耗时
func ObserveUseCase(usecase string, start time.Time) {
	InitMetrics()
	ObserveHistogramVec(UseCaseDuration, map[string]string{"usecase": usecase}, time.Since(start).Seconds())
}

// RecordBookOperation 记录图书写操作结果
func RecordBookOperation(operation string, err error) {
	InitMetrics()
	IncCounterVec(BookOperationsTotal, map[string]string{"operation": operation, "result": Result(err)})
}

// RecordRelationUpdate 记录关系更新结果
func RecordRelationUpdate(err error) {
	InitMetrics()
	IncCounterVec(RelationUpdatesTotal, map[string]string{"result": Result(err)})
}

// RecordLogin 记录登录结果
func RecordLogin(err error) {
	InitMetrics()
	IncCounterVec(UserLoginsTotal, map[string]string{"result": Result(err)})
}
