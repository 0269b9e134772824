package observability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// maxAttributeValueLen bounds exported string values. Longer values keep
// their tail, which is the informative end of a file path.
const maxAttributeValueLen = 256

// truncationMarker prefixes a shortened value.
const truncationMarker = "..."

// allowedKeys are the exact keys the converter sets on spans.
var allowedKeys = map[string]bool{
	AttrFilePath:  true,
	AttrFileSize:  true,
	AttrLanguage:  true,
	AttrWorkers:   true,
	AttrFormat:    true,
	AttrErrorType: true,
	"error":       true,
}

// allowedPrefixes pass any key below them.
var allowedPrefixes = []string{"uastkit.", "error."}

// sourcePrefix marks attributes carrying source text. Source never leaves
// the process, even under an allowed prefix.
const sourcePrefix = "uastkit.source."

// attributeFilter is a SpanProcessor that drops attributes outside the
// converter's key set and shortens long values before the delegate sees
// the span.
type attributeFilter struct {
	delegate sdktrace.SpanProcessor
	logger   *slog.Logger
}

// NewAttributeFilter wraps delegate. When logger is non-nil, dropped keys
// are logged as warnings.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, logger *slog.Logger) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate, logger: logger}
}

func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

// OnEnd hands the delegate a filtered view, since ended spans are read-only.
func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	f.delegate.OnEnd(&filteredSpan{ReadOnlySpan: s, filter: f})
}

func (f *attributeFilter) Shutdown(ctx context.Context) error {
	err := f.delegate.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter shutdown: %w", err)
	}

	return nil
}

func (f *attributeFilter) ForceFlush(ctx context.Context) error {
	err := f.delegate.ForceFlush(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter flush: %w", err)
	}

	return nil
}

func (f *attributeFilter) allowed(key string) bool {
	if strings.HasPrefix(key, sourcePrefix) {
		return false
	}

	if allowedKeys[key] {
		return true
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

func (f *attributeFilter) apply(kv attribute.KeyValue) (attribute.KeyValue, bool) {
	key := string(kv.Key)
	if !f.allowed(key) {
		if f.logger != nil {
			f.logger.Warn("span attribute dropped", "key", key)
		}

		return kv, false
	}

	if kv.Value.Type() == attribute.STRING {
		if value := kv.Value.AsString(); len(value) > maxAttributeValueLen {
			keep := maxAttributeValueLen - len(truncationMarker)

			return kv.Key.String(truncationMarker + value[len(value)-keep:]), true
		}
	}

	return kv, true
}

// filteredSpan is a ReadOnlySpan exposing only the filtered attributes.
type filteredSpan struct {
	sdktrace.ReadOnlySpan

	filter *attributeFilter
}

func (s *filteredSpan) Attributes() []attribute.KeyValue {
	orig := s.ReadOnlySpan.Attributes()
	out := make([]attribute.KeyValue, 0, len(orig))

	for _, kv := range orig {
		if filtered, ok := s.filter.apply(kv); ok {
			out = append(out, filtered)
		}
	}

	return out
}
