package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func createTables(t *testing.T, g *Grammar) *TableGenerator {
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(ga)
	if err = lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	return lrgen
}

func TestTablesExpr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	lrgen := createTables(t, g)
	if lrgen.HasConflicts {
		t.Errorf("expected expression grammar to be SLR(1), conflicts: %v", lrgen.Conflicts())
	}
	actions, gotos := lrgen.ActionTable(), lrgen.GotoTable()
	if actions.Rows() != 16 || gotos.Rows() != 16 {
		t.Errorf("expected tables to have 16 rows")
	}
	sym := g.SymbolByName
	if a, ok := actions.Action(0, sym("num")); !ok || a != Shift(5) {
		t.Errorf("expected ACTION[0, num] = S5, is %v", a)
	}
	if a, ok := actions.Action(5, sym("+")); !ok || a.Kind != ReduceAction || a.Rule != g.Rule(5) {
		t.Errorf("expected ACTION[5, +] = R F → num, is %v", a)
	}
	if a, ok := actions.Action(1, EOFSymbol); !ok || a.String() != "ACC" {
		t.Errorf("expected ACTION[1, $] = ACC, is %v", a)
	}
	if _, ok := actions.Action(0, sym("+")); ok {
		t.Errorf("expected ACTION[0, +] to be empty")
	}
	if _, ok := actions.Action(0, sym("E")); ok {
		t.Errorf("expected no ACTION entry for a non-terminal")
	}
	for name, target := range map[string]int{"E": 1, "F": 2, "T": 3} {
		if s, ok := gotos.Goto(0, sym(name)); !ok || s != target {
			t.Errorf("expected GOTO[0, %s] = %d, is %d", name, target, s)
		}
	}
	if _, ok := gotos.Goto(0, sym("num")); ok {
		t.Errorf("expected no GOTO entry for a terminal")
	}
	if acc := lrgen.AcceptingStates(); len(acc) != 1 || acc[0] != 1 {
		t.Errorf("expected state 1 to be the only accepting state, have %v", acc)
	}
}

func TestTablesAcceptAndCompleteness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	for _, g := range []*Grammar{exprGrammar(t), epsGrammar(t)} {
		lrgen := createTables(t, g)
		actions := lrgen.ActionTable()
		accepts := 0
		for state := 0; state < actions.Rows(); state++ {
			defined := 0
			for _, A := range actions.Columns() {
				a, ok := actions.Action(state, A)
				if !ok {
					continue
				}
				defined++
				if a.Kind == AcceptAction {
					accepts++
					if A != EOFSymbol {
						t.Errorf("grammar %s: accept action on %v", g.Name, A)
					}
				}
			}
			if defined == 0 {
				t.Errorf("grammar %s: state %d has no actions", g.Name, state)
			}
		}
		if accepts != 1 {
			t.Errorf("grammar %s: expected exactly 1 accept action, have %d", g.Name, accepts)
		}
	}
}

func TestTablesConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	// S → L = R | R,  L → * R | id,  R → L   is LALR(1), but not SLR(1)
	b := NewGrammarBuilder("Assign")
	b.LHS("S").N("L").T("=", '=').N("R").End()
	b.LHS("S").N("R").End()
	b.LHS("L").T("*", '*').N("R").End()
	b.LHS("L").T("id", 1000).End()
	b.LHS("R").N("L").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen := createTables(t, g)
	if !lrgen.HasConflicts {
		t.Fatalf("expected grammar to have conflicts")
	}
	conflicts := lrgen.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, have %d: %v", len(conflicts), conflicts)
	}
	c := conflicts[0]
	if c.Symbol.Name != "=" || c.Kind() != "shift/reduce" {
		t.Errorf("expected shift/reduce conflict on =, have %v", c)
	}
	if c.Winner.Rule == nil || c.Winner.Rule.String() != "R → L" {
		t.Errorf("expected reduction R → L to win, winner is %v", c.Winner)
	}
	if a, _ := lrgen.ActionTable().Action(c.State, c.Symbol); a != c.Winner {
		t.Errorf("expected table to hold the winning action %v, holds %v", c.Winner, a)
	}
}

func TestTablesHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(ga)
	var buf bytes.Buffer
	if err = ActionTableAsHTML(lrgen, &buf); err == nil {
		t.Errorf("expected HTML export to fail before tables are created")
	}
	if err = lrgen.CreateTables(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err = ActionTableAsHTML(lrgen, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<td>ACC</td>") {
		t.Errorf("expected ACTION table to contain an accept entry")
	}
	buf.Reset()
	if err = GotoTableAsHTML(lrgen, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "<tr>") != 16 {
		t.Errorf("expected 16 state rows in GOTO table")
	}
}

func TestAnalysisGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	i, _ := StartItem(g.Rule(0))
	C := ga.Closure(NewItemSet(i))
	if ga.Goto(C, g.SymbolByName(")")) != nil {
		t.Errorf("expected dead goto to be nil")
	}
	if S := ga.Goto(C, g.SymbolByName("(")); S == nil || S.Size() != 9 {
		t.Errorf("expected goto(C, '(') to have 9 items")
	}
}
