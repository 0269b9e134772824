package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/syntax"
)

// atArgCount is the number of arguments expected by the at command.
const atArgCount = 2

// Sentinel errors for the at command.
var (
	ErrBadPosition    = errors.New("position must be line:column")
	ErrNoElementAt    = errors.New("no element at position")
	ErrNoUniformChain = errors.New("no uniform element contains position")
)

func atCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "at file line:column",
		Short: "Show the uniform element at a source position",
		Long: `Show the innermost uniform element at a source position and the chain
of elements containing it, up to the file.

Positions are 1-based.

Examples:
  uastkit at Greeter.kt 3:15`,
		Args: cobra.ExactArgs(atArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, column, err := parsePosition(args[1])
			if err != nil {
				return err
			}

			return runAt(cmd.Context(), a, args[0], line, column, cmd.OutOrStdout())
		},
	}

	return cmd
}

func parsePosition(pos string) (line, column int, err error) {
	lineText, columnText, ok := strings.Cut(pos, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPosition, pos)
	}

	line, lineErr := strconv.Atoi(lineText)
	column, columnErr := strconv.Atoi(columnText)

	if lineErr != nil || columnErr != nil || line < 1 || column < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPosition, pos)
	}

	return line, column, nil
}

func runAt(ctx context.Context, a *app, path string, line, column int, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	content, resolved, err := safeReadFile(path, a.cfg.Convert.MaxFileSize)
	if err != nil {
		return err
	}

	result, err := a.convertSource(ctx, resolved, content)
	if err != nil {
		return err
	}

	idx := syntax.NewIndex(result.tree)

	target := idx.AtPosition(line, column)
	if target == nil {
		return fmt.Errorf("%w: %d:%d", ErrNoElementAt, line, column)
	}

	element := nearestUniform(result.ctx, target)
	if element == nil {
		return fmt.Errorf("%w: %d:%d", ErrNoUniformChain, line, column)
	}

	chain := append([]uast.Element{element}, uast.Parents(element)...)

	for depth, e := range chain {
		writeChainLine(w, idx, depth, e)
	}

	return nil
}

// nearestUniform converts n, climbing native parents until one has a
// uniform counterpart.
func nearestUniform(ctx *uast.Context, n native.Node) uast.Element {
	for cur := n; cur != nil; cur = cur.Parent() {
		if e := ctx.ConvertWithParent(cur); e != nil {
			return e
		}
	}

	return nil
}

func writeChainLine(w io.Writer, idx *syntax.Index, depth int, e uast.Element) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(color.New(color.FgCyan, color.Bold).Sprint(e.ElementKind().String()))

	if named, ok := e.(uast.Named); ok && named.Name() != "" {
		fmt.Fprintf(&sb, " %s", color.New(color.FgGreen).Sprintf("%q", sanitizeForTerminal(named.Name())))
	}

	if origin := e.Origin(); origin != nil {
		fmt.Fprintf(&sb, " [%s]", origin.Kind())

		if span := origin.Span(); !span.Synthetic() {
			line, column := idx.Position(span.Start)
			fmt.Fprintf(&sb, " @%d:%d", line, column)
		}
	}

	fmt.Fprintln(w, sb.String())
}
