package main

import (
	"github.com/npillmayer/slrgen/lr/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newSetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sets",
		Short: "Show FIRST and FOLLOW sets of the non-terminals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadGrammar(rootFlags.grammar)
			if err != nil {
				return err
			}
			out, err := report.Sets(t.ga)
			if err != nil {
				return err
			}
			pterm.Println(out)
			return nil
		},
	}
}
