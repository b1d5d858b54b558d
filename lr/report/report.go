/*
Package report renders the artefacts of SLR(1) table construction and
parsing as text tables: the states of the CFSM, FIRST and FOLLOW sets,
the combined ACTION/GOTO table and the step-by-step trace of a parse.

Rendering uses pterm. Output is meant for terminals; for HTML output of the
parser tables see lr.ActionTableAsHTML and lr.GotoTableAsHTML.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"fmt"
	"strings"

	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/lr/slr"
	"github.com/pterm/pterm"
)

func render(data pterm.TableData) (string, error) {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func names(syms []*lr.Symbol) string {
	n := make([]string, len(syms))
	for i, A := range syms {
		n[i] = A.Name
	}
	return strings.Join(n, " ")
}

// States renders the states of a CFSM, one row per state, listing the items
// and the outgoing edges.
func States(cfsm *lr.CFSM) (string, error) {
	data := pterm.TableData{{"State", "Items", "Transitions"}}
	for _, s := range cfsm.States() {
		items := make([]string, 0, 8)
		for _, i := range s.Items() {
			items = append(items, i.String())
		}
		edges := make([]string, 0, 4)
		for _, e := range cfsm.EdgesFrom(s) {
			edges = append(edges, fmt.Sprintf("%s → %d", e.Label, e.To.ID))
		}
		id := fmt.Sprintf("%d", s.ID)
		if s.Accept {
			id += " (acc)"
		}
		data = append(data, []string{id, strings.Join(items, "\n"), strings.Join(edges, "\n")})
	}
	return render(data)
}

// Sets renders FIRST and FOLLOW sets for all non-terminals.
func Sets(ga *lr.LRAnalysis) (string, error) {
	data := pterm.TableData{{"Non-terminal", "FIRST", "FOLLOW", "Nullable"}}
	ga.Grammar().EachNonTerminal(func(name string, N *lr.Symbol) interface{} {
		nullable := ""
		if ga.DerivesEpsilon(N) {
			nullable = "yes"
		}
		data = append(data, []string{name, names(ga.First(N)), names(ga.Follow(N)), nullable})
		return nil
	})
	return render(data)
}

// Tables renders the ACTION and GOTO tables side by side. Columns are the
// terminals, the end-of-input marker and the non-terminals (except the
// augmented start symbol).
func Tables(lrgen *lr.TableGenerator) (string, error) {
	actions, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	if actions == nil || gotos == nil {
		return "", fmt.Errorf("tables for grammar %s not yet created", lrgen.Grammar().Name)
	}
	start := lrgen.Grammar().StartSymbol()
	header := []string{"State"}
	for _, A := range actions.Columns() {
		header = append(header, A.Name)
	}
	for _, N := range gotos.Columns() {
		if N != start {
			header = append(header, N.Name)
		}
	}
	data := pterm.TableData{header}
	for state := 0; state < actions.Rows(); state++ {
		row := []string{fmt.Sprintf("%d", state)}
		for _, A := range actions.Columns() {
			cell := ""
			if a, ok := actions.Action(state, A); ok {
				cell = a.String()
			}
			row = append(row, cell)
		}
		for _, N := range gotos.Columns() {
			if N == start {
				continue
			}
			cell := ""
			if target, ok := gotos.Goto(state, N); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return render(data)
}

// Conflicts renders the overwritten entries of an ACTION table.
func Conflicts(lrgen *lr.TableGenerator) (string, error) {
	data := pterm.TableData{{"State", "Symbol", "Kind", "Overwritten", "Winner"}}
	for _, c := range lrgen.Conflicts() {
		data = append(data, []string{
			fmt.Sprintf("%d", c.State), c.Symbol.Name, c.Kind(), c.Previous.String(), c.Winner.String(),
		})
	}
	return render(data)
}

// Trace renders the steps of a parse: state stack, symbol stack, remaining
// input and the action taken.
func Trace(trace slr.Trace) (string, error) {
	data := pterm.TableData{{"Step", "States", "Symbols", "Input", "Action"}}
	for i, step := range trace {
		states := make([]string, len(step.States))
		for k, s := range step.States {
			states[k] = fmt.Sprintf("%d", s)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			strings.Join(states, " "),
			names(step.Symbols),
			names(step.Input),
			step.Action.String(),
		})
	}
	return render(data)
}
