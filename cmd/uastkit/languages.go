package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func languagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages and their frontends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(a, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runLanguages(a *app, w io.Writer) error {
	ctx := a.newContext()

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"Language", "Extensions", "Grammar", "Rules", "Priority", "Enabled"})

	langs := a.parser.Languages()

	for _, lang := range langs {
		km := a.parser.KindMap(lang)

		priority := "-"
		if plugin := ctx.Registry().ByLanguage(lang); plugin != nil {
			priority = strconv.Itoa(plugin.Priority())
		}

		tbl.AppendRow(table.Row{
			string(lang),
			strings.Join(km.Extensions, " "),
			km.GrammarName(),
			len(km.Nodes),
			priority,
			a.enabled(lang),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d languages", len(langs))})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
