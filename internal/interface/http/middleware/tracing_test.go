package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing_ContinuesIncomingTrace(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	r := gin.New()
	r.Use(Tracing())
	r.GET("/api/v1/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	const (
		traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
		spanID  = "00f067aa0ba902b7"
	)

	t.Run("带traceparent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books/1", nil)
		req.Header.Set("traceparent", "00-"+traceID+"-"+spanID+"-01")
		r.ServeHTTP(httptest.NewRecorder(), req)

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		span := spans[0]
		assert.Equal(t, "GET /api/v1/books/:id", span.Name())
		assert.Equal(t, traceID, span.SpanContext().TraceID().String())
		assert.Equal(t, spanID, span.Parent().SpanID().String())
		assert.True(t, span.Parent().IsRemote())
	})

	t.Run("不带traceparent", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/books/2", nil))

		spans := recorder.Ended()
		require.Len(t, spans, 2)
		span := spans[1]
		assert.False(t, span.Parent().IsValid())
		assert.NotEqual(t, traceID, span.SpanContext().TraceID().String())
	})
}
