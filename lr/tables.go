package lr

import (
	"fmt"
	"html"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/slrgen/lr/sparse"
)

// === Parser Actions ========================================================

// ActionKind is the kind of an entry in an ACTION table.
type ActionKind int8

// Kinds of parser actions.
const (
	ShiftAction ActionKind = iota + 1
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "<none>"
}

// Action is an entry of an ACTION table. State is the target state of a shift,
// Rule is the rule to reduce for a reduce action.
type Action struct {
	Kind  ActionKind
	State int
	Rule  *Rule
}

// Shift creates a shift action to state target.
func Shift(target int) Action {
	return Action{Kind: ShiftAction, State: target}
}

// Reduce creates a reduce action for rule r.
func Reduce(r *Rule) Action {
	return Action{Kind: ReduceAction, Rule: r}
}

// Accept creates an accept action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("S%d", a.State)
	case ReduceAction:
		return "R " + a.Rule.String()
	case AcceptAction:
		return "ACC"
	}
	return "<none>"
}

// Conflict is an ACTION table entry which has been assigned twice with
// different actions. The later assignment wins.
type Conflict struct {
	State    int
	Symbol   *Symbol
	Previous Action
	Winner   Action
	seq      int
}

// Kind returns "shift/reduce", "reduce/reduce" etc.
func (c Conflict) Kind() string {
	return c.Previous.Kind.String() + "/" + c.Winner.Kind.String()
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %s: %v overwritten by %v",
		c.Kind(), c.State, c.Symbol, c.Previous, c.Winner)
}

func conflictComparator(a, b interface{}) int {
	c1, c2 := a.(Conflict), b.(Conflict)
	if d := utils.IntComparator(c1.State, c2.State); d != 0 {
		return d
	}
	if d := utils.IntComparator(c1.Symbol.ID, c2.Symbol.ID); d != 0 {
		return d
	}
	return utils.IntComparator(c1.seq, c2.seq)
}

// === Parser Tables =========================================================

// ActionTable is an SLR(1) ACTION table, indexed by state and terminal
// (including the end-of-input marker).
type ActionTable struct {
	g      *Grammar
	matrix *sparse.Matrix[Action]
}

// Action returns the action for a state and a lookahead symbol. If there is
// no action, ok is false.
func (t *ActionTable) Action(state int, A *Symbol) (action Action, ok bool) {
	if A == nil || A.ID > t.g.maxSymbolID() || state < 0 || state >= t.matrix.M() {
		return Action{}, false
	}
	return t.matrix.Value(state, A.ID)
}

// Rows returns the number of states.
func (t *ActionTable) Rows() int {
	return t.matrix.M()
}

// Columns returns the terminals of the grammar, followed by the end-of-input
// marker.
func (t *ActionTable) Columns() []*Symbol {
	return append(t.g.Terminals(), EOFSymbol)
}

// ValueCount returns the number of entries in the table.
func (t *ActionTable) ValueCount() int {
	return t.matrix.ValueCount()
}

// GotoTable is a GOTO table, indexed by state and non-terminal.
type GotoTable struct {
	g      *Grammar
	matrix *sparse.Matrix[int]
}

// Goto returns the target state for a state and a non-terminal. If there is
// no transition, ok is false.
func (t *GotoTable) Goto(state int, N *Symbol) (target int, ok bool) {
	if N == nil || !N.IsNonTerminal() || state < 0 || state >= t.matrix.M() {
		return 0, false
	}
	return t.matrix.Value(state, N.ID)
}

// Rows returns the number of states.
func (t *GotoTable) Rows() int {
	return t.matrix.M()
}

// Columns returns the non-terminals of the grammar.
func (t *GotoTable) Columns() []*Symbol {
	return t.g.NonTerminals()
}

// ValueCount returns the number of entries in the table.
func (t *GotoTable) ValueCount() int {
	return t.matrix.ValueCount()
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct SLR(1) parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an SLR(1) parser recognizing grammar G.
//
// Conflicts are resolved by letting the last action written win. All
// overwritten entries are available from Conflicts().
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	gototable    *GotoTable
	actiontable  *ActionTable
	conflicts    *treeset.Set
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	lrgen.conflicts = treeset.NewWith(conflictComparator)
	return lrgen
}

// Grammar returns the grammar tables are generated for.
func (lrgen *TableGenerator) Grammar() *Grammar {
	return lrgen.g
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously. On failure, CFSM returns nil.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		dfa, err := BuildCFSM(lrgen.g)
		if err != nil {
			tracer().Errorf("cannot build CFSM: %v", err)
			return nil
		}
		lrgen.dfa = dfa
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildGotoTable(...).)
func (lrgen *TableGenerator) GotoTable() *GotoTable {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously (or a separate call to
// BuildSLR1ActionTable(...).)
func (lrgen *TableGenerator) ActionTable() *ActionTable {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// CreateTables creates the necessary data structures for an SLR parser.
func (lrgen *TableGenerator) CreateTables() error {
	dfa, err := BuildCFSM(lrgen.g)
	if err != nil {
		return err
	}
	lrgen.dfa = dfa
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable, lrgen.HasConflicts = lrgen.BuildSLR1ActionTable()
	return nil
}

// Conflicts returns all overwritten ACTION table entries, ordered by state
// and symbol.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	r := make([]Conflict, 0, lrgen.conflicts.Size())
	for _, x := range lrgen.conflicts.Values() {
		r = append(r, x.(Conflict))
	}
	return r
}

// AcceptingStates returns the IDs of all states of the CFSM which hold an
// accept action. Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []int {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]int, 0, 1)
	for _, state := range lrgen.dfa.states {
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// BuildGotoTable builds the GOTO table. This is normally not called directly, but rather
// via CreateTables(). The GOTO table is the transition map of the CFSM,
// restricted to non-terminals.
func (lrgen *TableGenerator) BuildGotoTable() *GotoTable {
	dfa := lrgen.CFSM()
	statescnt := dfa.Size()
	tracer().Infof("GOTO table of size %d x %d", statescnt, len(lrgen.g.nonterminals))
	gototable := &GotoTable{
		g:      lrgen.g,
		matrix: sparse.NewMatrix[int](statescnt, lrgen.g.maxSymbolID()+1),
	}
	for _, e := range dfa.Edges() {
		if e.Label.IsNonTerminal() {
			gototable.matrix.Set(e.From.ID, e.Label.ID, e.To.ID)
		}
	}
	return gototable
}

// BuildSLR1ActionTable constructs the SLR(1) Action table. This method is normally not called
// by clients, but rather via CreateTables(). It builds an action table including
// lookahead (using the FOLLOW-set created by the grammar analyzer).
//
// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the items within a CFSM-state, ordered by
// rule and dot position:
//
// - for the completed start rule S' → S ● we produce an accept entry on $
//
// - for any other item with the dot behind the complete RHS we produce a
// reduce entry for each terminal from FOLLOW(LHS)
//
// - if an item has a terminal immediately after the dot, we produce a shift entry.
//
// An entry written twice with different actions is a conflict; the second
// one wins.
func (lrgen *TableGenerator) BuildSLR1ActionTable() (*ActionTable, bool) {
	dfa := lrgen.CFSM()
	statescnt := dfa.Size()
	tracer().Infof("ACTION table of size %d x %d", statescnt, len(lrgen.g.terminals)+1)
	actions := &ActionTable{
		g:      lrgen.g,
		matrix: sparse.NewMatrix[Action](statescnt, lrgen.g.maxSymbolID()+1),
	}
	lrgen.conflicts.Clear()
	for _, state := range dfa.states {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			tracer().Debugf("item in s%d = %v", state.ID, i)
			A := i.PeekSymbol()
			switch {
			case i.rule.Serial == 0 && i.IsReduction():
				lrgen.setAction(actions, state, EOFSymbol, Accept())
			case i.IsReduction():
				lookaheads := lrgen.ga.followIDs(i.rule.LHS).AppendTo(nil)
				tracer().Debugf("    Follow(%v) = %v", i.rule.LHS, lrgen.ga.Follow(i.rule.LHS))
				for _, la := range lookaheads {
					lrgen.setAction(actions, state, lrgen.g.symbolByID(la), Reduce(i.rule))
				}
			case A.IsTerminal():
				t := dfa.Transition(state.ID, A)
				if !t.Exists() {
					panic(fmt.Sprintf("no CFSM transition from state %d for %v", state.ID, A))
				}
				lrgen.setAction(actions, state, A, Shift(t.Target))
			}
		}
	}
	hasConflicts := !lrgen.conflicts.Empty()
	if hasConflicts {
		tracer().Infof("grammar %s is not SLR(1): %d conflicts", lrgen.g.Name, lrgen.conflicts.Size())
	}
	return actions, hasConflicts
}

func (lrgen *TableGenerator) setAction(actions *ActionTable, state *CFSMState, A *Symbol, a Action) {
	prev, replaced := actions.matrix.Set(state.ID, A.ID, a)
	tracer().Debugf("    ACTION[%d, %v] = %v", state.ID, A, a)
	if replaced && prev != a {
		c := Conflict{
			State:    state.ID,
			Symbol:   A,
			Previous: prev,
			Winner:   a,
			seq:      lrgen.conflicts.Size(),
		}
		tracer().Infof("%v", c)
		lrgen.conflicts.Add(c)
	}
}

// === HTML Export ===========================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return fmt.Errorf("GOTO table for grammar %s not yet created", lrgen.g.Name)
	}
	t := lrgen.gototable
	return parserTableAsHTML(lrgen, "GOTO", t.Columns(), t.ValueCount(), w,
		func(state int, A *Symbol) string {
			if target, ok := t.Goto(state, A); ok {
				return fmt.Sprintf("%d", target)
			}
			return ""
		})
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return fmt.Errorf("ACTION table for grammar %s not yet created", lrgen.g.Name)
	}
	t := lrgen.actiontable
	return parserTableAsHTML(lrgen, "ACTION", t.Columns(), t.ValueCount(), w,
		func(state int, A *Symbol) string {
			if a, ok := t.Action(state, A); ok {
				return a.String()
			}
			return ""
		})
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, columns []*Symbol, size int,
	w io.Writer, cell func(int, *Symbol) string) error {
	//
	ew := &errWriter{w: w}
	ew.write("<html><body>\n")
	ew.write(fmt.Sprintf("<p>%s table of size = %d</p>\n", tname, size))
	ew.write("<table border=1 cellspacing=0 cellpadding=5>\n")
	ew.write("<tr bgcolor=#cccccc><td></td>")
	for _, A := range columns {
		ew.write(fmt.Sprintf("<td>%s</td>", html.EscapeString(A.Name)))
	}
	ew.write("</tr>\n")
	for _, state := range lrgen.dfa.states {
		ew.write(fmt.Sprintf("<tr><td>state %d</td>", state.ID))
		for _, A := range columns {
			td := cell(state.ID, A)
			if td == "" {
				td = "&nbsp;"
			} else {
				td = html.EscapeString(td)
			}
			ew.write("<td>" + td + "</td>")
		}
		ew.write("</tr>\n")
	}
	ew.write("</table></body></html>\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
