package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/dump"
)

// diffArgCount is the number of arguments expected by the diff command.
const diffArgCount = 2

// Output formats of the diff command.
const (
	diffUnified = "unified"
	diffSummary = "summary"
	diffJSON    = "json"
)

// ErrUnsupportedDiffFmt is returned for an unknown diff output format.
var ErrUnsupportedDiffFmt = errors.New("unsupported format")

func diffCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff file1 file2",
		Short: "Compare the uniform trees of two files",
		Long: `Compare two source files and report the differences between their
uniform trees, line by line over the tree outline.

Examples:
  uastkit diff Old.java New.java          # Unified diff of the outlines
  uastkit diff -f summary A.kt B.kt       # Inserted and deleted line counts`,
		Args: cobra.ExactArgs(diffArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), a, args[0], args[1], format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", diffUnified, "output format (unified, summary, json)")

	return cmd
}

// diffLine is the JSON form of one change.
type diffLine struct {
	Op   string `json:"op"`
	Line string `json:"line"`
}

func runDiff(ctx context.Context, a *app, file1, file2, format string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch format {
	case diffUnified, diffSummary, diffJSON:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedDiffFmt, format)
	}

	before, err := a.snapshotFile(ctx, file1)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", file1, err)
	}

	after, err := a.snapshotFile(ctx, file2)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", file2, err)
	}

	changes := dump.Diff(before.Root, after.Root)

	switch format {
	case diffJSON:
		return writeDiffJSON(w, changes)
	case diffSummary:
		inserted, deleted := dump.Stats(changes)
		fmt.Fprintf(w, "Change Summary:\n  inserted: %d\n  deleted: %d\n", inserted, deleted)

		return nil
	default:
		writeUnified(w, file1, file2, changes)

		return nil
	}
}

func writeDiffJSON(w io.Writer, changes []dump.Change) error {
	lines := make([]diffLine, 0, len(changes))

	for _, c := range changes {
		if c.Op == diffmatchpatch.DiffEqual {
			continue
		}

		lines = append(lines, diffLine{Op: c.Op.String(), Line: c.Line})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(lines)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeUnified(w io.Writer, file1, file2 string, changes []dump.Change) {
	if len(changes) == 0 {
		return
	}

	fmt.Fprintf(w, "--- %s\n+++ %s\n", file1, file2)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, c := range changes {
		switch c.Op {
		case diffmatchpatch.DiffInsert:
			added.Fprintf(w, "+%s\n", c.Line)
		case diffmatchpatch.DiffDelete:
			removed.Fprintf(w, "-%s\n", c.Line)
		case diffmatchpatch.DiffEqual:
			fmt.Fprintf(w, " %s\n", c.Line)
		}
	}
}
