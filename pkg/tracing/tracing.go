// Package tracing 提供基于OpenTelemetry的链路追踪
//
// 每个application层用例创建一个Span（如book.List、relation.Patch），
// 失败时记录错误并把Span状态置为Error。TraceID会写入请求日志，便于从日志跳到追踪。
//
// 使用示例：
//
//	shutdown, err := tracing.InitTracer("bookcatalog", "localhost:4317", 1.0)
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "book.List")
//	defer func() { tracing.EndSpan(span, err) }()
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName 本服务的Tracer名称
const TracerName = "bookcatalog"

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: OTLP gRPC端点（host:port，如localhost:4317）
//   - sampleRatio: 采样率，1表示全部采样；父Span已采样时子Span跟随父Span
//
// 返回的shutdown必须在程序退出前调用，否则可能丢失最后一批Span
func InitTracer(serviceName, endpoint string, sampleRatio float64) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. OTLP gRPC Exporter（连接是惰性的，Collector不在线不影响启动）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. Resource：附加到所有Span上的服务属性
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. Tracer Provider：批量发送Span
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	// 4. W3C Trace Context + Baggage
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// StartSpan 创建Span
// 必须使用返回的ctx调用下游函数，否则无法构建调用树
func StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// EndSpan 结束Span，err不为nil时记录错误
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ExtractTraceID 从Context提取TraceID（用于关联日志），没有Span时返回空字符串
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
