package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/lr/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTablesCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Show the SLR(1) ACTION and GOTO tables",
		Long: `Show the SLR(1) ACTION and GOTO tables. If the grammar is not SLR(1),
the overwritten table entries are listed after the tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadGrammar(rootFlags.grammar)
			if err != nil {
				return err
			}
			if prefix != "" {
				return writeHTMLTables(t.lrgen, prefix)
			}
			out, err := report.Tables(t.lrgen)
			if err != nil {
				return err
			}
			pterm.Println(out)
			if t.lrgen.HasConflicts {
				out, err = report.Conflicts(t.lrgen)
				if err != nil {
					return err
				}
				pterm.Error.Printfln("grammar %s is not SLR(1)", t.name)
				pterm.Println(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "html", "", "write tables as HTML to <prefix>_action.html and <prefix>_goto.html")
	return cmd
}

func writeHTMLTables(lrgen *lr.TableGenerator, prefix string) error {
	export := func(name string, f func(*lr.TableGenerator, io.Writer) error) error {
		w, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", name, err)
		}
		defer w.Close()
		if err = f(lrgen, w); err != nil {
			return err
		}
		pterm.Info.Printfln("wrote %s", name)
		return nil
	}
	if err := export(prefix+"_action.html", lr.ActionTableAsHTML); err != nil {
		return err
	}
	return export(prefix+"_goto.html", lr.GotoTableAsHTML)
}
