package observability

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrNoRegistry is returned when metrics are written without a Prometheus
// registry.
var ErrNoRegistry = errors.New("prometheus registry not configured")

// WritePrometheus writes the gathered metrics to path in the Prometheus text
// exposition format, suitable for the node exporter textfile collector.
func WritePrometheus(registry *prometheus.Registry, path string) error {
	if registry == nil {
		return ErrNoRegistry
	}

	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		return fmt.Errorf("write prometheus textfile: %w", err)
	}

	return nil
}
