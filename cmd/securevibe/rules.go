package main

import (
	"github.com/ejagojo/SecureVibe/internal/scanner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the built-in detection rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Rule", "Severity", "Scope", "Issue"})

			for _, r := range scanner.Rules() {
				scope := "file"
				if r.PerLine {
					scope = "line"
				}
				t.AppendRow(table.Row{r.ID, r.Severity, scope, r.Issue})
			}

			t.Render()
			return nil
		},
	}
}
