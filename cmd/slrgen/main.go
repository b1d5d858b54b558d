package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	grammar string
	trace   string
}{}

// main() dispatches to one of the sub-commands. Every sub-command works on
// the tables of the grammar selected by flag --grammar.
//
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slrgen",
		Short: "Construct SLR(1) parser tables and trace parses",
		Long: `slrgen builds the canonical LR(0) automaton for a built-in grammar,
computes FIRST and FOLLOW sets, derives SLR(1) ACTION and GOTO tables,
and runs a table-driven shift-reduce parser on input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := grammars[rootFlags.grammar]; !ok {
				return fmt.Errorf("unknown grammar %q, known grammars are %s",
					rootFlags.grammar, grammarNames())
			}
			level := traceLevel(rootFlags.trace)
			for _, key := range []string{"slrgen.cli", "slrgen.lr", "slrgen.scanner"} {
				tracing.Select(key).SetTraceLevel(level)
			}
			tracer().Debugf("trace level is %s", rootFlags.trace)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&rootFlags.grammar, "grammar", "g", "expr",
		"built-in grammar ["+grammarNames()+"]")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.trace, "trace", "t", "Error",
		"trace level [Debug|Info|Error]")
	rootCmd.AddCommand(newAutomatonCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newGrammarsCmd())
	return rootCmd
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
