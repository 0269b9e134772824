package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/uastkit/pkg/config"
	"github.com/Sumatoshi-tech/uastkit/pkg/observability"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/dump"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/java"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/kotlin"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/syntax"
	"github.com/Sumatoshi-tech/uastkit/pkg/version"
)

// Sentinel errors shared by the commands.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrLanguageDisabled    = errors.New("frontend disabled by configuration")
	ErrNoFileElement       = errors.New("root did not convert to a file element")
)

// app holds the state shared by every command of one invocation.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	parser      *syntax.Parser
	files       *observability.FileMetrics
	conversions *observability.ConversionMetrics
	providers   observability.Providers

	// spanProcessors receive the spans of every conversion.
	spanProcessors []sdktrace.SpanProcessor

	cfgFile string
	verbose bool
	quiet   bool
}

// setup loads the configuration and starts logging, metrics and the parser.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}

	switch {
	case a.verbose:
		cfg.Logging.Level = "debug"
	case a.quiet:
		cfg.Logging.Level = "error"
	}

	mode := observability.ModeCLI
	if cmd.Name() == "convert" {
		mode = observability.ModeBatch
	}

	obsCfg := observability.FromConfig(cfg, version.Version, mode)
	obsCfg.SpanProcessors = a.spanProcessors

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	files, err := observability.NewFileMetrics(providers.Meter)
	if err != nil {
		return errors.Join(err, providers.Shutdown(context.Background()))
	}

	conversions, err := observability.NewConversionMetrics(providers.Meter)
	if err != nil {
		return errors.Join(err, providers.Shutdown(context.Background()))
	}

	parser, err := syntax.NewParser(syntax.WithLogger(providers.Logger))
	if err != nil {
		return errors.Join(fmt.Errorf("failed to initialize parser: %w", err), providers.Shutdown(context.Background()))
	}

	a.cfg = cfg
	a.providers = providers
	a.logger = providers.Logger
	a.files = files
	a.conversions = conversions
	a.parser = parser

	return nil
}

// teardown writes the metrics textfile when configured and flushes telemetry.
func (a *app) teardown(ctx context.Context) error {
	if a.cfg == nil {
		return nil
	}

	var writeErr error

	if path := a.cfg.Observability.MetricsFile; path != "" {
		writeErr = observability.WritePrometheus(a.providers.Registry, path)
	}

	return errors.Join(writeErr, a.providers.Shutdown(ctx))
}

// newContext builds a dispatcher holding both frontends. Kotlin hands
// Java-shaped light elements to the Java frontend, so both are always
// registered; the enabled flags gate which source files are accepted.
func (a *app) newContext() *uast.Context {
	ctx := uast.NewContext(nil, uast.WithLogger(a.logger), uast.WithObserver(a.conversions))
	ctx.Register(java.NewPlugin(ctx, java.WithPriority(a.cfg.Frontends.Java.Priority)))
	ctx.Register(kotlin.NewPlugin(ctx, kotlin.WithPriority(a.cfg.Frontends.Kotlin.Priority)))

	return ctx
}

// enabled reports whether the configuration accepts sources of lang.
func (a *app) enabled(lang native.Language) bool {
	switch lang {
	case native.Java:
		return a.cfg.Frontends.Java.Enabled
	case native.Kotlin:
		return a.cfg.Frontends.Kotlin.Enabled
	default:
		return false
	}
}

// converted is one parsed and converted source file.
type converted struct {
	tree     *native.Tree
	file     uast.File
	ctx      *uast.Context
	elements int
}

// convertSource parses content and converts the tree to a uniform file
// under one span per file.
func (a *app) convertSource(ctx context.Context, filename string, content []byte) (*converted, error) {
	ctx, span := observability.StartFileSpan(ctx, a.providers.Tracer, filename, len(content))
	defer span.End()

	lang, ok := a.parser.Language(filename, content)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
		observability.RecordSpanError(span, err, observability.ErrTypeUnsupported)

		return nil, err
	}

	span.SetAttributes(attribute.String(observability.AttrLanguage, string(lang)))

	if !a.enabled(lang) {
		err := fmt.Errorf("%w: %s", ErrLanguageDisabled, lang)
		observability.RecordSpanError(span, err, observability.ErrTypeDisabled)

		return nil, err
	}

	done := a.files.TrackInflight(ctx, lang)
	defer done()

	start := time.Now()

	tree, err := a.parse(ctx, lang, filename, content)
	if err != nil {
		a.files.RecordFile(ctx, lang, observability.StatusError, 0, time.Since(start))
		observability.RecordSpanError(span, err, observability.ErrTypeParse)

		return nil, err
	}

	uctx := a.newContext()

	file, ok := uast.ConvertOpt[uast.File](uctx, tree.Root(), nil)
	if !ok {
		a.files.RecordFile(ctx, lang, observability.StatusError, 0, time.Since(start))

		err = fmt.Errorf("%w: %s", ErrNoFileElement, filename)
		observability.RecordSpanError(span, err, observability.ErrTypeConversion)

		return nil, err
	}

	elements := 0

	uast.Walk(file, func(uast.Element) bool {
		elements++

		return true
	})

	a.files.RecordFile(ctx, lang, observability.StatusOK, elements, time.Since(start))
	span.SetAttributes(attribute.Int(observability.AttrElements, elements))
	a.logger.DebugContext(ctx, "converted file", "file", filename, "language", lang, "elements", elements)

	return &converted{tree: tree, file: file, ctx: uctx, elements: elements}, nil
}

// parse runs the syntax frontend under its own span.
func (a *app) parse(ctx context.Context, lang native.Language, filename string, content []byte) (*native.Tree, error) {
	ctx, span := a.providers.Tracer.Start(ctx, observability.SpanParse,
		trace.WithAttributes(attribute.String(observability.AttrLanguage, string(lang))))
	defer span.End()

	tree, err := a.parser.ParseAs(ctx, lang, filename, content)
	if err != nil {
		observability.RecordSpanError(span, err, observability.ErrTypeParse)

		return nil, err
	}

	return tree, nil
}

// snapshotFile reads, converts and snapshots one source file.
func (a *app) snapshotFile(ctx context.Context, path string) (*dump.Document, error) {
	content, resolved, err := safeReadFile(path, a.cfg.Convert.MaxFileSize)
	if err != nil {
		return nil, err
	}

	result, err := a.convertSource(ctx, resolved, content)
	if err != nil {
		return nil, err
	}

	return dump.NewDocument(path, result.file), nil
}
