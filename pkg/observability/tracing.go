package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanConvert     = "uastkit.convert"
	SpanConvertFile = "uastkit.convert.file"
	SpanParse       = "uastkit.parse"
)

// Span attribute keys.
const (
	AttrFilePath  = "file.path"
	AttrFileSize  = "file.size"
	AttrLanguage  = "language"
	AttrElements  = "uastkit.elements"
	AttrFiles     = "uastkit.files"
	AttrFailed    = "uastkit.failed"
	AttrWorkers   = "workers"
	AttrFormat    = "format"
	AttrErrorType = "error.type"
)

// Error types recorded on spans.
const (
	ErrTypeUnsupported = "unsupported"
	ErrTypeDisabled    = "disabled"
	ErrTypeParse       = "parse"
	ErrTypeConversion  = "conversion"
	ErrTypeIO          = "io"
)

// StartFileSpan starts the span covering the conversion of one source file.
func StartFileSpan(ctx context.Context, tracer trace.Tracer, path string, size int) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanConvertFile,
		trace.WithAttributes(
			attribute.String(AttrFilePath, path),
			attribute.Int(AttrFileSize, size),
		))
}

// RecordSpanError marks span as failed with err and tags it with errType.
func RecordSpanError(span trace.Span, err error, errType string) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorType, errType))
}
