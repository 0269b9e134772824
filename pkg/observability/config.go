// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for the uastkit tools.
package observability

import (
	"log/slog"
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Sumatoshi-tech/uastkit/pkg/config"
)

// AppMode identifies the application execution mode.
type AppMode string

const (
	// ModeCLI is a single interactive command.
	ModeCLI AppMode = "cli"
	// ModeBatch is a multi-file conversion run.
	ModeBatch AppMode = "batch"
)

const (
	// defaultServiceName is the default OTel service name.
	defaultServiceName = "uastkit"

	// defaultShutdownTimeoutSec is the default shutdown timeout in seconds.
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables OTLP export.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporter.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// SampleRatio is the trace sampling ratio (0.0 to 1.0). Zero samples
	// every root span.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// Prometheus attaches a Prometheus reader to the meter provider so that
	// metrics can be written with WritePrometheus.
	Prometheus bool

	// SpanProcessors receive every span in addition to the OTLP exporter.
	// Setting any enables tracing without an endpoint.
	SpanProcessors []sdktrace.SpanProcessor

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

// FromConfig derives the observability settings from the tool configuration.
func FromConfig(cfg *config.Config, version string, mode AppMode) Config {
	out := DefaultConfig()
	out.ServiceVersion = version
	out.Mode = mode
	out.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	out.OTLPInsecure = cfg.Observability.OTLPInsecure
	out.SampleRatio = cfg.Observability.SampleRatio
	out.Prometheus = cfg.Observability.MetricsFile != ""
	out.LogLevel = ParseLevel(cfg.Logging.Level)
	out.LogJSON = strings.EqualFold(cfg.Logging.Format, "json")

	return out
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
