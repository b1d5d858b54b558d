package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/slrgen/lr/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newAutomatonCmd() *cobra.Command {
	var dotfile string
	cmd := &cobra.Command{
		Use:     "automaton",
		Aliases: []string{"cfsm", "states"},
		Short:   "Show the states and transitions of the LR(0) automaton",
		Example: "  slrgen automaton --dot cfsm.dot && dot -Tsvg -o cfsm.svg cfsm.dot",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadGrammar(rootFlags.grammar)
			if err != nil {
				return err
			}
			cfsm := t.lrgen.CFSM()
			if dotfile != "" {
				f, err := os.Create(dotfile)
				if err != nil {
					return fmt.Errorf("cannot create %s: %w", dotfile, err)
				}
				defer f.Close()
				if err = cfsm.CFSM2GraphViz(f); err != nil {
					return err
				}
				pterm.Info.Printfln("wrote %d states to %s", cfsm.Size(), dotfile)
				return nil
			}
			out, err := report.States(cfsm)
			if err != nil {
				return err
			}
			pterm.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dotfile, "dot", "", "write the automaton in GraphViz DOT format to this file")
	return cmd
}
