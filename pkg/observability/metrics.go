package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

const (
	metricFilesTotal        = "uastkit.files.total"
	metricFileDuration      = "uastkit.file.duration.seconds"
	metricErrorsTotal       = "uastkit.errors.total"
	metricInflightFiles     = "uastkit.inflight.files"
	metricConversionsTotal  = "uastkit.conversions.total"
	metricLoweringsTotal    = "uastkit.lowerings.total"
	metricLoweringElements  = "uastkit.lowering.elements"
	metricElementsConverted = "uastkit.elements.total"

	attrLanguage  = "language"
	attrKind      = "kind"
	attrResult    = "result"
	attrConstruct = "construct"
	attrStatus    = "status"

	resultConverted   = "converted"
	resultUnsupported = "unsupported"

	// StatusOK marks a file that converted without error.
	StatusOK = "ok"
	// StatusError marks a file that failed to parse or convert.
	StatusError = "error"
	// StatusSkipped marks a file that was filtered out before parsing.
	StatusSkipped = "skipped"

	languageUnknown = "unknown"
)

// durationBucketBoundaries covers 1ms to 30s per file.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// loweringBucketBoundaries covers the element counts produced by desugaring.
var loweringBucketBoundaries = []float64{1, 2, 3, 4, 6, 8, 12, 16, 32}

// FileMetrics holds the OTel instruments for per-file rate, error, and
// duration metrics.
type FileMetrics struct {
	filesTotal    metric.Int64Counter
	fileDuration  metric.Float64Histogram
	errorsTotal   metric.Int64Counter
	inflightFiles metric.Int64UpDownCounter
	elementsTotal metric.Int64Counter
}

// NewFileMetrics creates file metric instruments from the given meter.
func NewFileMetrics(mt metric.Meter) (*FileMetrics, error) {
	filesTotal, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Total number of processed files"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	fileDuration, err := mt.Float64Histogram(metricFileDuration,
		metric.WithDescription("Parse and convert duration per file in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFileDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed files"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricInflightFiles,
		metric.WithDescription("Number of files being converted"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInflightFiles, err)
	}

	elements, err := mt.Int64Counter(metricElementsConverted,
		metric.WithDescription("Total number of uniform elements produced"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricElementsConverted, err)
	}

	return &FileMetrics{
		filesTotal:    filesTotal,
		fileDuration:  fileDuration,
		errorsTotal:   errTotal,
		inflightFiles: inflight,
		elementsTotal: elements,
	}, nil
}

// RecordFile records a processed file with its language, status, element
// count, and duration.
func (fm *FileMetrics) RecordFile(
	ctx context.Context, language native.Language, status string, elements int, duration time.Duration,
) {
	lang := languageName(language)
	attrs := metric.WithAttributes(
		attribute.String(attrLanguage, lang),
		attribute.String(attrStatus, status),
	)

	fm.filesTotal.Add(ctx, 1, attrs)

	if status == StatusSkipped {
		return
	}

	fm.fileDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		fm.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String(attrLanguage, lang),
		))

		return
	}

	fm.elementsTotal.Add(ctx, int64(elements), metric.WithAttributes(
		attribute.String(attrLanguage, lang),
	))
}

// TrackInflight increments the in-flight gauge and returns a function to decrement it.
func (fm *FileMetrics) TrackInflight(ctx context.Context, language native.Language) func() {
	attrs := metric.WithAttributes(attribute.String(attrLanguage, languageName(language)))
	fm.inflightFiles.Add(ctx, 1, attrs)

	return func() {
		fm.inflightFiles.Add(ctx, -1, attrs)
	}
}

// ConversionMetrics counts dispatcher outcomes and desugaring activity. It
// satisfies the uast observer contract and is safe for concurrent use.
type ConversionMetrics struct {
	conversions   metric.Int64Counter
	lowerings     metric.Int64Counter
	loweringSizes metric.Int64Histogram
}

// NewConversionMetrics creates conversion metric instruments from the given meter.
func NewConversionMetrics(mt metric.Meter) (*ConversionMetrics, error) {
	conversions, err := mt.Int64Counter(metricConversionsTotal,
		metric.WithDescription("Native nodes dispatched for conversion"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricConversionsTotal, err)
	}

	lowerings, err := mt.Int64Counter(metricLoweringsTotal,
		metric.WithDescription("Constructs desugared into simpler elements"),
		metric.WithUnit("{construct}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricLoweringsTotal, err)
	}

	sizes, err := mt.Int64Histogram(metricLoweringElements,
		metric.WithDescription("Elements produced per desugared construct"),
		metric.WithUnit("{element}"),
		metric.WithExplicitBucketBoundaries(loweringBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricLoweringElements, err)
	}

	return &ConversionMetrics{
		conversions:   conversions,
		lowerings:     lowerings,
		loweringSizes: sizes,
	}, nil
}

// ObserveConversion counts one dispatch outcome.
func (cm *ConversionMetrics) ObserveConversion(language native.Language, kind native.Kind, converted bool) {
	result := resultUnsupported
	if converted {
		result = resultConverted
	}

	cm.conversions.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(attrLanguage, languageName(language)),
		attribute.String(attrKind, kind.String()),
		attribute.String(attrResult, result),
	))
}

// ObserveLowering counts one desugared construct and the number of elements
// it produced.
func (cm *ConversionMetrics) ObserveLowering(construct string, size int) {
	attrs := metric.WithAttributes(attribute.String(attrConstruct, construct))

	cm.lowerings.Add(context.Background(), 1, attrs)
	cm.loweringSizes.Record(context.Background(), int64(size), attrs)
}

func languageName(language native.Language) string {
	if language == "" {
		return languageUnknown
	}

	return string(language)
}
