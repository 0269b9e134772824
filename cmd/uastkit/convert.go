package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/uastkit/pkg/observability"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/dump"
)

// Sentinel errors for the convert command.
var (
	ErrNoSourceFiles     = errors.New("no source files matched")
	ErrConversionFailed  = errors.New("some files failed to convert")
	ErrOutputNeedsSingle = errors.New("--output needs exactly one input file; use --out-dir")
)

type convertOptions struct {
	format    string
	output    string
	outDir    string
	include   []string
	workers   int
	compress  bool
	keepGoing bool
}

func convertCmd(a *app) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert Java and Kotlin sources into uniform trees",
		Long: `Convert Java and Kotlin source files into uniform trees.

Paths may be files, directories or doublestar globs. Directories are walked
and filtered by the include patterns (convert.include).

Examples:
  uastkit convert Main.java                 # Print the tree as JSON
  uastkit convert -f tree src/              # Outline every source under src/
  uastkit convert 'src/**/*.kt' --out-dir out --compress
  uastkit convert -o greeter.yaml -f yaml Greeter.kt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = a.cfg.Convert.Format
			}

			if !cmd.Flags().Changed("workers") {
				opts.workers = a.cfg.Convert.Workers
			}

			if !cmd.Flags().Changed("include") {
				opts.include = a.cfg.Convert.Include
			}

			return runConvert(cmd.Context(), a, args, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format (json, yaml, tree)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file for a single input (default: stdout)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write one dump per input under this directory")
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "doublestar patterns selecting files in directories")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of parallel workers")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "compress --out-dir dumps with LZ4")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "continue after a file fails")

	return cmd
}

// convertResult is the outcome for one input, kept in input order.
type convertResult struct {
	doc  *dump.Document
	err  error
	path string
}

func runConvert(ctx context.Context, a *app, args []string, opts convertOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := dump.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	files, err := collectInputs(args, opts.include)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return ErrNoSourceFiles
	}

	if opts.output != "" && len(files) > 1 {
		return ErrOutputNeedsSingle
	}

	ctx, span := a.providers.Tracer.Start(ctx, observability.SpanConvert,
		trace.WithAttributes(
			attribute.Int(observability.AttrFiles, len(files)),
			attribute.Int(observability.AttrWorkers, max(1, opts.workers)),
			attribute.String(observability.AttrFormat, string(format)),
		))
	defer span.End()

	start := time.Now()
	results := make([]convertResult, len(files))

	var failed atomic.Int64

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(max(1, opts.workers))

	for idx, path := range files {
		grp.Go(func() error {
			doc, convErr := a.snapshotFile(gctx, path)
			results[idx] = convertResult{doc: doc, err: convErr, path: path}

			if convErr == nil {
				return nil
			}

			failed.Add(1)
			a.logger.WarnContext(gctx, "convert failed", "file", path, "error", convErr)

			if opts.keepGoing {
				return nil
			}

			return fmt.Errorf("failed to convert %s: %w", path, convErr)
		})
	}

	waitErr := grp.Wait()
	span.SetAttributes(attribute.Int64(observability.AttrFailed, failed.Load()))

	if waitErr != nil {
		observability.RecordSpanError(span, waitErr, observability.ErrTypeConversion)

		return waitErr
	}

	elements := 0

	for _, res := range results {
		if res.err != nil {
			continue
		}

		elements += res.doc.Root.Count()

		writeErr := writeResult(res, format, opts, stdout)
		if writeErr != nil {
			return writeErr
		}
	}

	if !a.quiet {
		printConvertSummary(stderr, len(files), int(failed.Load()), elements, time.Since(start))
	}

	if failed.Load() > 0 {
		err = fmt.Errorf("%w: %d of %d", ErrConversionFailed, failed.Load(), len(files))
		observability.RecordSpanError(span, err, observability.ErrTypeConversion)

		return err
	}

	return nil
}

func writeResult(res convertResult, format dump.Format, opts convertOptions, stdout io.Writer) error {
	path := opts.output
	if opts.outDir != "" {
		path = filepath.Join(opts.outDir, dumpName(res.path, format, opts.compress))
	}

	if path == "" {
		return dump.Encode(stdout, res.doc, format)
	}

	out, err := createOutput(path)
	if err != nil {
		return err
	}

	encodeErr := dump.Encode(out, res.doc, format)

	return errors.Join(encodeErr, out.Close())
}

// dumpName maps a source path to its dump path under --out-dir.
func dumpName(source string, format dump.Format, compress bool) string {
	rel := filepath.Clean(source)
	if filepath.IsAbs(rel) {
		rel = strings.TrimPrefix(rel, filepath.VolumeName(rel))
		rel = strings.TrimLeft(rel, string(filepath.Separator))
	}

	rel = strings.ReplaceAll(rel, ".."+string(filepath.Separator), "")

	ext := string(format)
	if format == dump.FormatTree {
		ext = "txt"
	}

	name := rel + ".uast." + ext
	if compress {
		name += lz4Ext
	}

	return name
}

// collectInputs expands args into a sorted, de-duplicated file list.
func collectInputs(args, include []string) ([]string, error) {
	seen := make(map[string]bool)

	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, statErr := os.Stat(arg)

		switch {
		case statErr == nil && info.IsDir():
			walked, err := walkDir(arg, include)
			if err != nil {
				return nil, err
			}

			for _, path := range walked {
				add(path)
			}
		case statErr == nil:
			add(arg)
		default:
			if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
				return nil, fmt.Errorf("stat %s: %w", arg, statErr)
			}

			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", arg, err)
			}

			for _, path := range matches {
				add(path)
			}
		}
	}

	slices.Sort(files)

	return files, nil
}

func walkDir(root string, include []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != root && isHiddenDir(entry.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("relative path for %s: %w", path, relErr)
		}

		if matchesAny(filepath.ToSlash(rel), include) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// isHiddenDir returns true for directories that start with a dot (e.g. .git),
// except for "." and ".." which are filesystem navigation entries.
func isHiddenDir(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}

func printConvertSummary(w io.Writer, total, failed, elements int, elapsed time.Duration) {
	ok := total - failed
	line := fmt.Sprintf("converted %s of %s files (%s elements) in %s",
		humanize.Comma(int64(ok)), humanize.Comma(int64(total)), humanize.Comma(int64(elements)),
		elapsed.Round(time.Millisecond))

	if failed > 0 {
		color.New(color.FgYellow).Fprintf(w, "%s, %d failed\n", line, failed)

		return
	}

	color.New(color.FgGreen).Fprintln(w, line)
}
