package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// TestInitMetrics 测试指标初始化（重复调用不会重复注册而panic）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics()

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, BookOperationsTotal)
	assert.NotNil(t, RelationUpdatesTotal)
	assert.NotNil(t, UserLoginsTotal)
	assert.NotNil(t, UseCaseDuration)
}

// TestResult 测试错误 → result标签
func TestResult(t *testing.T) {
	assert.Equal(t, "success", Result(nil))
	assert.Equal(t, "forbidden", Result(apperrors.ErrForbidden))
	assert.Equal(t, "unauthorized", Result(apperrors.ErrInvalidToken))
	assert.Equal(t, "not_found", Result(apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")))
	assert.Equal(t, "invalid", Result(apperrors.InvalidParam("rate", "x")))
	assert.Equal(t, "error", Result(apperrors.ErrDatabaseError))
	assert.Equal(t, "error", Result(errors.New("boom")))
}

// TestRecordBookOperation 测试图书操作计数
func TestRecordBookOperation(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"operation": "delete", "result": "forbidden"}
	before := getCounterVecValue(t, BookOperationsTotal, labels)

	RecordBookOperation("delete", apperrors.ErrForbidden)
	RecordBookOperation("delete", apperrors.ErrForbidden)
	RecordBookOperation("delete", nil)

	assert.Equal(t, before+2, getCounterVecValue(t, BookOperationsTotal, labels))
}

// TestRecordRelationAndLogin 测试关系更新和登录计数
func TestRecordRelationAndLogin(t *testing.T) {
	InitMetrics()

	invalid := map[string]string{"result": "invalid"}
	before := getCounterVecValue(t, RelationUpdatesTotal, invalid)
	RecordRelationUpdate(apperrors.InvalidParam("rate", "x"))
	assert.Equal(t, before+1, getCounterVecValue(t, RelationUpdatesTotal, invalid))

	success := map[string]string{"result": "success"}
	before = getCounterVecValue(t, UserLoginsTotal, success)
	RecordLogin(nil)
	assert.Equal(t, before+1, getCounterVecValue(t, UserLoginsTotal, success))
}

// TestObserveUseCase 测试用例耗时
func TestObserveUseCase(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"usecase": "book.list"}
	before := getHistogramVecCount(t, UseCaseDuration, labels)

	ObserveUseCase("book.list", time.Now().Add(-20*time.Millisecond))
	ObserveUseCase("book.list", time.Now())

	assert.Equal(t, before+2, getHistogramVecCount(t, UseCaseDuration, labels))
}

// TestGauge 测试正在处理的请求数
func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	assert.Equal(t, before+2, getGaugeValue(t, HTTPRequestsInProgress))

	DecGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, before, getGaugeValue(t, HTTPRequestsInProgress))
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric))
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, histogramVec.With(labels).(prometheus.Histogram).Write(&metric))
	return metric.Histogram.GetSampleCount()
}
