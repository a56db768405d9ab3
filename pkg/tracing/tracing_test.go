package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 安装一个内存Span记录器作为全局Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

// TestInitTracer 测试Tracer初始化（exporter惰性连接，不需要Collector在线）
func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := InitTracer("test-service", "localhost:4317", 1.0)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "TestOperation")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	// Collector不在线时导出失败是预期的，只要不阻塞即可
	_ = shutdown(context.Background())
}

// TestStartSpan 测试父子Span
func TestStartSpan(t *testing.T) {
	recorder := useRecorder(t)

	ctx, root := StartSpan(context.Background(), "book.List", attribute.String("search", "Author 1"))
	_, child := StartSpan(ctx, "repo.ListViews")

	assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())
	assert.Equal(t, root.SpanContext().TraceID().String(), ExtractTraceID(ctx))

	EndSpan(child, nil)
	EndSpan(root, nil)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "repo.ListViews", ended[0].Name())
	assert.Equal(t, "book.List", ended[1].Name())
	assert.Contains(t, ended[1].Attributes(), attribute.String("search", "Author 1"))
}

// TestEndSpanWithError 测试错误记录
func TestEndSpanWithError(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartSpan(context.Background(), "relation.Patch")
	EndSpan(span, errors.New("rate: 评分必须是1到5之间的整数"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

// TestExtractTraceID 没有Span时返回空
func TestExtractTraceID(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}
