package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/slrgen/lr/report"
	"github.com/npillmayer/slrgen/lr/scanner"
	"github.com/npillmayer/slrgen/lr/scanner/lexmach"
	"github.com/npillmayer/slrgen/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Scanners for parse input. Scanner "go" maps Go token types to terminals,
// "lexmachine" compiles a DFA from the terminals of the grammar and the
// patterns of a built-in grammar, "names" splits input at whitespace into
// terminal names.
const (
	scanGo      = "go"
	scanLexmach = "lexmachine"
	scanNames   = "names"
)

func newParseCmd() *cobra.Command {
	var scan string
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse input and show every step of the parser",
		Example: `  slrgen parse "(1 + 2) / 3"
  slrgen parse --scanner names "( num + num ) / num"
  slrgen --grammar signed parse --scanner lexmachine "- x"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadGrammar(rootFlags.grammar)
			if err != nil {
				return err
			}
			return runParse(t, scan, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVarP(&scan, "scanner", "s", scanGo,
		"how to split input into terminals ["+scanGo+"|"+scanLexmach+"|"+scanNames+"]")
	return cmd
}

func runParse(t *tables, scan string, input string) error {
	trace, err := parse(t, scan, input)
	if len(trace) > 0 {
		out, rerr := report.Trace(trace)
		if rerr != nil {
			return rerr
		}
		pterm.Println(out)
	}
	if err != nil {
		return err
	}
	pterm.Info.Println("input accepted")
	return nil
}

// parse runs the SLR(1) parser for grammar tables t on input.
func parse(t *tables, scan string, input string) (slr.Trace, error) {
	p := slr.NewParser(t.lrgen.Grammar(), t.lrgen.GotoTable(), t.lrgen.ActionTable())
	tracer().Infof("parsing %q with scanner %s", input, scan)
	switch scan {
	case scanGo:
		return p.ParseTokens(scanner.GoTokenizer(t.name, strings.NewReader(input)))
	case scanLexmach:
		lm, err := lexmach.GrammarAdapter(t.lrgen.Grammar(), t.patterns)
		if err != nil {
			return nil, err
		}
		lms, err := lm.Scanner(input)
		if err != nil {
			return nil, err
		}
		return p.ParseTokens(lms)
	case scanNames:
		return p.Parse(strings.Fields(input))
	}
	return nil, fmt.Errorf("unknown scanner %q", scan)
}
