package telemetry_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/cityroutes/config"
	"github.com/katalvlaran/cityroutes/telemetry"
)

func TestInit_None(t *testing.T) {
	p, err := telemetry.Init(context.Background(), config.TelemetryConfig{
		ServiceName: "test", TraceExporter: "none", MetricExporter: "none",
	}, io.Discard)
	require.NoError(t, err)
	assert.Nil(t, p.MetricsHandler())
	assert.NoError(t, p.Shutdown(context.Background()))
}

//nolint:staticcheck // a nil context is the case under test
func TestInit_NilContext(t *testing.T) {
	_, err := telemetry.Init(nil, config.TelemetryConfig{}, io.Discard)
	assert.ErrorIs(t, err, telemetry.ErrNilContext)
}

func TestInit_UnknownExporter(t *testing.T) {
	_, err := telemetry.Init(context.Background(), config.TelemetryConfig{TraceExporter: "zipkin"}, io.Discard)
	assert.ErrorIs(t, err, telemetry.ErrUnknownExporter)

	_, err = telemetry.Init(context.Background(), config.TelemetryConfig{MetricExporter: "statsd"}, io.Discard)
	assert.ErrorIs(t, err, telemetry.ErrUnknownExporter)
}

func TestInit_PrometheusServesMetrics(t *testing.T) {
	ctx := context.Background()
	p, err := telemetry.Init(ctx, config.TelemetryConfig{
		ServiceName: "test", MetricExporter: "prometheus",
	}, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	counter, err := otel.Meter("telemetry_test").Int64Counter("cityroutes_test_total")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	rec := httptest.NewRecorder()
	p.MetricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "cityroutes_test_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestInit_StdoutTraces(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	p, err := telemetry.Init(ctx, config.TelemetryConfig{ServiceName: "test", TraceExporter: "stdout"}, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry_test").Start(ctx, "sample-span")
	span.End()
	require.NoError(t, p.Shutdown(ctx))
	assert.Contains(t, buf.String(), "sample-span")
}
