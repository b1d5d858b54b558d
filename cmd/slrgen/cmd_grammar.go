package main

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newGrammarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grammars",
		Short: "List the built-in grammars and their rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(grammars))
			for name := range grammars {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				g, err := grammars[name].create()
				if err != nil {
					return err
				}
				pterm.DefaultSection.Println(name + ": " + grammars[name].description)
				for _, r := range g.Rules() {
					pterm.Println(r.String())
				}
			}
			return nil
		},
	}
}
