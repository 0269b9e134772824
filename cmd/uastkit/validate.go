package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/dump"
)

// ErrMissingInput is returned when validate gets no input path.
var ErrMissingInput = errors.New("missing input: pass a dump file or -")

func validateCmd(a *app) *cobra.Command {
	var printSchema, colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <file.json|file.json.lz4|->",
		Short: "Validate a JSON dump against the dump schema",
		Long: `Validate a JSON dump produced by "uastkit convert" against the
embedded dump schema.

Examples:
  uastkit validate Greeter.kt.uast.json
  uastkit validate out/Greeter.kt.uast.json.lz4
  uastkit convert Main.java | uastkit validate -
  uastkit validate --print-schema > schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nocolor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			} else if colorize {
				color.NoColor = false //nolint:reassign // intentional override of library global
			}

			if printSchema {
				_, err := cmd.OutOrStdout().Write(dump.Schema())
				if err != nil {
					return fmt.Errorf("write schema: %w", err)
				}

				return nil
			}

			if len(args) == 0 {
				return ErrMissingInput
			}

			return runValidate(a, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&printSchema, "print-schema", false, "print the embedded schema and exit")
	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(a *app, path string, stdin io.Reader, w io.Writer) error {
	data, label, err := readDump(path, stdin)
	if err != nil {
		return err
	}

	err = dump.Validate(data)
	if err == nil {
		if !a.quiet {
			color.New(color.FgGreen).Fprintf(w, "dump is valid (%s)\n", label)
		}

		return nil
	}

	var verr *dump.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("invalid dump %s: %w", label, err)
	}

	color.New(color.FgRed).Fprintf(w, "dump validation failed (%s)\n", label)
	fmt.Fprintf(w, "\nErrors:\n")

	for _, problem := range verr.Problems {
		color.New(color.FgRed).Fprintf(w, "  - %s\n", problem)
	}

	return err
}
