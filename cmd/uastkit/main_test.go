package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/uastkit/pkg/observability"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/dump"
)

const javaGreeter = `package demo;

class Greeter {
    private String greeting = "Hi";

    String greet(String name) {
        return greeting + name;
    }
}
`

const kotlinGreeter = `package demo

class Greeter {
    val greeting: String = "Hi"

    fun greet(name: String): String {
        return greeting + name
    }
}
`

// testCase holds the test data for help and subcommand tests.
type testCase struct {
	wantOut string
	args    []string
	wantErr bool
}

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	rootCmd := newRootCmd()

	var outBuf, errBuf bytes.Buffer

	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestCLI_HelpAndSubcommands(t *testing.T) {
	t.Parallel()

	tests := []testCase{
		{wantOut: "uniform tree model", args: []string{"--help"}},
		{wantOut: "Convert Java and Kotlin source files", args: []string{"convert", "--help"}},
		{wantOut: "chain", args: []string{"at", "--help"}},
		{wantOut: "Compare two source files", args: []string{"diff", "--help"}},
		{wantOut: "embedded dump schema", args: []string{"validate", "--help"}},
		{wantOut: "uastkit ", args: []string{"version"}},
		{wantOut: "unknown command", args: []string{"unknown"}, wantErr: true},
	}

	for _, tt := range tests {
		stdout, stderr, err := execute(t, tt.args...)
		if tt.wantErr {
			require.Error(t, err, tt.args)
			assert.Contains(t, err.Error()+stderr, tt.wantOut, tt.args)

			continue
		}

		require.NoError(t, err, tt.args)
		assert.Contains(t, stdout, tt.wantOut, tt.args)
	}
}

func TestConvert_SingleFileJSON(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "Greeter.java", javaGreeter)

	stdout, _, err := execute(t, "convert", "-q", "-f", "json", path)
	require.NoError(t, err)

	require.NoError(t, dump.Validate([]byte(stdout)))

	doc, err := dump.Decode(strings.NewReader(stdout))
	require.NoError(t, err)
	assert.Equal(t, path, doc.File)
	assert.Equal(t, "File", doc.Root.Kind)
	assert.Contains(t, dump.Text(doc.Root), `Class name="demo.Greeter"`)
}

func TestConvert_DirectoryToOutDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeSource(t, src, "java/Greeter.java", javaGreeter)
	writeSource(t, src, "kotlin/Greeter.kt", kotlinGreeter)
	writeSource(t, src, "README.md", "# not source\n")
	writeSource(t, src, ".hidden/Skipped.kt", kotlinGreeter)

	out := filepath.Join(t.TempDir(), "out")

	_, stderr, err := execute(t, "convert", "--out-dir", out, "--compress", "-w", "2", src)
	require.NoError(t, err)
	assert.Contains(t, stderr, "converted 2 of 2 files")

	var dumps []string

	require.NoError(t, filepath.Walk(out, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			dumps = append(dumps, path)
		}

		return err
	}))
	require.Len(t, dumps, 2)

	for _, path := range dumps {
		assert.True(t, strings.HasSuffix(path, ".uast.json.lz4"), path)

		stdout, _, validateErr := execute(t, "validate", path)
		require.NoError(t, validateErr, path)
		assert.Contains(t, stdout, "dump is valid")
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unsupported := writeSource(t, dir, "main.go", "package main\n")
	java := writeSource(t, dir, "Greeter.java", javaGreeter)
	kotlin := writeSource(t, dir, "Greeter.kt", kotlinGreeter)

	_, _, err := execute(t, "convert", "-q", unsupported)
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	_, _, err = execute(t, "convert", "-q", "-k", unsupported, java)
	require.ErrorIs(t, err, ErrConversionFailed)

	_, _, err = execute(t, "convert", "-q", "-o", filepath.Join(dir, "out.json"), java, kotlin)
	require.ErrorIs(t, err, ErrOutputNeedsSingle)

	_, _, err = execute(t, "convert", "-q", filepath.Join(dir, "nothing", "*.kt"))
	require.ErrorIs(t, err, ErrNoSourceFiles)

	_, _, err = execute(t, "convert", "-q", "-f", "xml", java)
	require.ErrorIs(t, err, dump.ErrUnknownFormat)
}

func TestConvert_GlobAndTreeOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, dir, "a/Greeter.kt", kotlinGreeter)
	writeSource(t, dir, "b/Other.java", javaGreeter)

	stdout, _, err := execute(t, "convert", "-q", "-f", "tree", filepath.Join(dir, "**", "*.kt"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "File"))
	assert.Contains(t, stdout, "[kotlin.class]")
	assert.NotContains(t, stdout, "[java.class]")
}

func TestConvert_DisabledFrontend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeSource(t, dir, "uastkit.yaml", "frontends:\n  kotlin:\n    enabled: false\n")
	kotlin := writeSource(t, dir, "Greeter.kt", kotlinGreeter)

	_, _, err := execute(t, "--config", cfg, "convert", "-q", kotlin)
	require.ErrorIs(t, err, ErrLanguageDisabled)
}

func TestConvert_WritesMetricsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	metrics := filepath.Join(dir, "uastkit.prom")
	cfg := writeSource(t, dir, "uastkit.yaml", "observability:\n  metrics_file: "+metrics+"\n")
	kotlin := writeSource(t, dir, "Greeter.kt", kotlinGreeter)

	_, _, err := execute(t, "--config", cfg, "convert", "-q", kotlin)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "uastkit_files_total")
	assert.Contains(t, string(data), "uastkit_conversions_total")
}

// spanAttrs flattens the attributes of a recorded span.
func spanAttrs(span sdktrace.ReadOnlySpan) map[string]any {
	attrs := map[string]any{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}

	return attrs
}

func TestConvertSource_RecordsSpans(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kotlin := writeSource(t, dir, "Greeter.kt", kotlinGreeter)
	unsupported := writeSource(t, dir, "main.go", "package main\n")

	recorder := tracetest.NewSpanRecorder()
	a := &app{quiet: true, spanProcessors: []sdktrace.SpanProcessor{recorder}}
	require.NoError(t, a.setup(&cobra.Command{Use: "convert"}))

	ctx := context.Background()

	result, err := a.convertSource(ctx, kotlin, []byte(kotlinGreeter))
	require.NoError(t, err)

	_, err = a.convertSource(ctx, unsupported, []byte("package main\n"))
	require.ErrorIs(t, err, ErrUnsupportedFileType)

	require.NoError(t, a.teardown(ctx))

	var files, parses []sdktrace.ReadOnlySpan

	for _, span := range recorder.Ended() {
		switch span.Name() {
		case observability.SpanConvertFile:
			files = append(files, span)
		case observability.SpanParse:
			parses = append(parses, span)
		}
	}

	require.Len(t, files, 2)
	require.Len(t, parses, 1)

	done := spanAttrs(files[0])
	assert.Equal(t, kotlin, done[observability.AttrFilePath])
	assert.Equal(t, "kotlin", done[observability.AttrLanguage])
	assert.Equal(t, int64(result.elements), done[observability.AttrElements])
	assert.Equal(t, codes.Unset, files[0].Status().Code)
	assert.Equal(t, files[0].SpanContext().SpanID(), parses[0].Parent().SpanID())

	failed := spanAttrs(files[1])
	assert.Equal(t, unsupported, failed[observability.AttrFilePath])
	assert.Equal(t, observability.ErrTypeUnsupported, failed[observability.AttrErrorType])
	assert.NotContains(t, failed, observability.AttrLanguage)
	assert.Equal(t, codes.Error, files[1].Status().Code)
}

func TestAt(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "Greeter.kt", kotlinGreeter)

	stdout, _, err := execute(t, "at", path, "7:16")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Binary")
	assert.Contains(t, stdout, `Method "greet"`)
	assert.Contains(t, stdout, `Class "Greeter"`)
	assert.Contains(t, stdout, "[kotlin.function] @6:5")

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "File"))

	_, _, err = execute(t, "at", path, "seven")
	require.ErrorIs(t, err, ErrBadPosition)

	_, _, err = execute(t, "at", path, "99:1")
	require.ErrorIs(t, err, ErrNoElementAt)
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "languages")
	require.NoError(t, err)

	assert.Contains(t, stdout, "java")
	assert.Contains(t, stdout, ".kt .kts")
	assert.Contains(t, strings.ToLower(stdout), "total: 2 languages")
}

func TestDiff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	before := writeSource(t, dir, "before/Greeter.java", javaGreeter)
	after := writeSource(t, dir, "after/Greeter.java", strings.Replace(javaGreeter, `"Hi"`, `"Hello"`, 1))

	stdout, _, err := execute(t, "diff", before, after)
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- "+before)
	assert.Contains(t, stdout, "+++ "+after)

	var removed, added []string

	for line := range strings.Lines(stdout) {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		}
	}

	require.Len(t, removed, 1)
	require.Len(t, added, 1)
	assert.Contains(t, removed[0], "Hi")
	assert.Contains(t, added[0], "Hello")

	stdout, _, err = execute(t, "diff", "-f", "summary", before, after)
	require.NoError(t, err)
	assert.Contains(t, stdout, "inserted: 1")
	assert.Contains(t, stdout, "deleted: 1")

	stdout, _, err = execute(t, "diff", "-f", "json", before, before)
	require.NoError(t, err)

	var lines []diffLine
	require.NoError(t, json.Unmarshal([]byte(stdout), &lines))
	assert.Empty(t, lines)

	_, _, err = execute(t, "diff", "-f", "html", before, after)
	require.ErrorIs(t, err, ErrUnsupportedDiffFmt)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.json", `{"file":"A.java","kind_set_version":1,"root":{"kind":"Widget"}}`)

	stdout, _, err := execute(t, "validate", bad)
	require.ErrorIs(t, err, dump.ErrInvalidDocument)
	assert.Contains(t, stdout, "dump validation failed")

	stdout, _, err = execute(t, "validate", "--print-schema")
	require.NoError(t, err)
	assert.JSONEq(t, string(dump.Schema()), stdout)

	_, _, err = execute(t, "validate")
	require.ErrorIs(t, err, ErrMissingInput)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	line, column, err := parsePosition("3:15")
	require.NoError(t, err)
	assert.Equal(t, 3, line)
	assert.Equal(t, 15, column)

	for _, bad := range []string{"", "3", "0:1", "a:b", "3:-1"} {
		_, _, err := parsePosition(bad)
		require.ErrorIs(t, err, ErrBadPosition, bad)
	}
}

func TestDumpName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("src", "A.kt.uast.json"), dumpName(filepath.Join("src", "A.kt"), dump.FormatJSON, false))
	assert.Equal(t, "A.java.uast.txt.lz4", dumpName("A.java", dump.FormatTree, true))
	assert.Equal(t, filepath.Join("x", "A.kt.uast.yaml"), dumpName(filepath.Join("..", "x", "A.kt"), dump.FormatYAML, false))
}
