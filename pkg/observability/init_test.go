package observability_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/uastkit/pkg/config"
	"github.com/Sumatoshi-tech/uastkit/pkg/observability"
)

func TestInit_NoopWithoutExporters(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Logger)
	assert.Nil(t, providers.Registry)

	require.ErrorIs(t, observability.WritePrometheus(providers.Registry, "unused"), observability.ErrNoRegistry)
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_SpanProcessorsAreFiltered(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()

	cfg := observability.DefaultConfig()
	cfg.SpanProcessors = []sdktrace.SpanProcessor{recorder}

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), observability.SpanConvert)
	span.SetAttributes(
		attribute.Int(observability.AttrFiles, 2),
		attribute.String("uastkit.source.text", "fun main() {}"),
	)
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, observability.SpanConvert, ended[0].Name())

	keys := make([]string, 0, len(ended[0].Attributes()))
	for _, kv := range ended[0].Attributes() {
		keys = append(keys, string(kv.Key))
	}

	assert.Equal(t, []string{observability.AttrFiles}, keys)
}

func TestInit_PrometheusTextfile(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Prometheus = true

	providers, err := observability.Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Registry)

	t.Cleanup(func() {
		assert.NoError(t, providers.Shutdown(context.Background()))
	})

	cm, err := observability.NewConversionMetrics(providers.Meter)
	require.NoError(t, err)

	cm.ObserveLowering("destructuring", 3)

	path := filepath.Join(t.TempDir(), "uastkit.prom")
	require.NoError(t, observability.WritePrometheus(providers.Registry, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "uastkit_lowerings_total")
	assert.Contains(t, string(data), `construct="destructuring"`)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "JSON"
	cfg.Observability.OTLPEndpoint = "collector:4317"
	cfg.Observability.OTLPInsecure = true
	cfg.Observability.SampleRatio = 0.5
	cfg.Observability.MetricsFile = "/tmp/out.prom"

	got := observability.FromConfig(cfg, "1.2.3", observability.ModeBatch)

	assert.Equal(t, "uastkit", got.ServiceName)
	assert.Equal(t, "1.2.3", got.ServiceVersion)
	assert.Equal(t, observability.ModeBatch, got.Mode)
	assert.Equal(t, "collector:4317", got.OTLPEndpoint)
	assert.True(t, got.OTLPInsecure)
	assert.InDelta(t, 0.5, got.SampleRatio, 1e-9)
	assert.True(t, got.Prometheus)
	assert.True(t, got.LogJSON)
	assert.Equal(t, "DEBUG", got.LogLevel.String())
}

func TestParseOTLPHeaders(t *testing.T) {
	t.Parallel()

	assert.Nil(t, observability.ParseOTLPHeaders(""))
	assert.Nil(t, observability.ParseOTLPHeaders("novalue"))
	assert.Equal(t,
		map[string]string{"authorization": "Bearer x", "team": "parsers"},
		observability.ParseOTLPHeaders(" authorization = Bearer x ,team=parsers"),
	)
}
