package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/slrgen/lr/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd() *cobra.Command {
	var scan string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse lines of input",
		Long: `Start an interactive session. Every line is parsed with the tables of
the selected grammar. Lines starting with ':' are commands:

  :automaton   show the LR(0) automaton
  :sets        show FIRST and FOLLOW sets
  :tables      show ACTION and GOTO tables
  :quit        leave the session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadGrammar(rootFlags.grammar)
			if err != nil {
				return err
			}
			repl, err := readline.New(t.name + "> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Printfln("Welcome to slrgen, grammar is %s", t.name)
			tracer().Infof("Quit with <ctrl>D")
			intp := &Intp{tables: t, scan: scan, repl: repl}
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVarP(&scan, "scanner", "s", scanGo,
		"how to split input into terminals ["+scanGo+"|"+scanLexmach+"|"+scanNames+"]")
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	tables *tables
	scan   string
	repl   *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.Eval(line) {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a line of input. It returns true if
// the user asked to quit.
func (intp *Intp) Eval(line string) bool {
	if !strings.HasPrefix(line, ":") {
		if err := runParse(intp.tables, intp.scan, line); err != nil {
			pterm.Error.Println(err.Error())
		}
		return false
	}
	var out string
	var err error
	switch line {
	case ":quit", ":q":
		return true
	case ":automaton":
		out, err = report.States(intp.tables.lrgen.CFSM())
	case ":sets":
		out, err = report.Sets(intp.tables.ga)
	case ":tables":
		out, err = report.Tables(intp.tables.lrgen)
	default:
		pterm.Error.Printfln("unknown command %s", line)
		return false
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	pterm.Println(out)
	return false
}
