package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/slrgen/lr/iteratable"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int             // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	key    string          // canonical hash of items
	Accept bool            // is this an accepting state?
}

// Items returns the items of this state, ordered by rule and dot position.
func (s *CFSMState) Items() []Item {
	return sortedItems(s.items)
}

// ItemSet returns a copy of the items of this state as a set.
func (s *CFSMState) ItemSet() *iteratable.Set {
	return s.items.Copy()
}

// Contains is true if item i is part of this state.
func (s *CFSMState) Contains(i Item) bool {
	return s.items.Contains(i)
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, i := range s.Items() {
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// TransitionKind tells apart the outcomes of looking up a CFSM transition.
type TransitionKind int8

const (
	// NoTransition: the pair (state, symbol) has never been computed.
	NoTransition TransitionKind = iota
	// DeadTransition: goto(state, symbol) has been computed and is empty.
	DeadTransition
	// EdgeTransition: goto(state, symbol) leads to Transition.Target.
	EdgeTransition
)

func (k TransitionKind) String() string {
	switch k {
	case DeadTransition:
		return "dead"
	case EdgeTransition:
		return "edge"
	}
	return "none"
}

// Transition is the result of looking up the CFSM's transition map.
// Target is only meaningful for kind EdgeTransition.
type Transition struct {
	Kind   TransitionKind
	Target int
}

// Exists is true for edges to a state.
func (t Transition) Exists() bool {
	return t.Kind == EdgeTransition
}

// Edge is a directed CFSM edge between 2 states, labeled with a grammar symbol.
type Edge struct {
	From  *CFSMState
	To    *CFSMState
	Label *Symbol
}

type transitionKey struct {
	state  int
	symbol int // symbol ID
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram of viable prefixes. Will be constructed by BuildCFSM
// or by a TableGenerator. After construction the CFSM is read-only.
type CFSM struct {
	g      *Grammar                     // this CFSM is for Grammar g
	states []*CFSMState                 // all the states, index = ID
	byKey  map[string][]*CFSMState      // states by canonical item set hash
	trans  map[transitionKey]Transition // transition map, including dead transitions
	edges  *arraylist.List              // all the edges between states
	S0     *CFSMState                   // start state
}

// create an empty (initial) CFSM automaton.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:     g,
		byKey: make(map[string][]*CFSMState),
		trans: make(map[transitionKey]Transition),
		edges: arraylist.New(),
	}
}

// Grammar returns the grammar this CFSM has been built for.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return len(c.states)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return append([]*CFSMState(nil), c.states...)
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Transition looks up the transition for a state and a symbol.
func (c *CFSM) Transition(state int, A *Symbol) Transition {
	return c.trans[transitionKey{state: state, symbol: A.ID}]
}

// Edges returns all edges, in order of their creation.
func (c *CFSM) Edges() []Edge {
	r := make([]Edge, 0, c.edges.Size())
	it := c.edges.Iterator()
	for it.Next() {
		r = append(r, it.Value().(Edge))
	}
	return r
}

// EdgesFrom returns all edges leaving state s.
func (c *CFSM) EdgesFrom(s *CFSMState) []Edge {
	r := make([]Edge, 0, 2)
	it := c.edges.Iterator()
	for it.Next() {
		e := it.Value().(Edge)
		if e.From == s {
			r = append(r, e)
		}
	}
	return r
}

func (c *CFSM) findStateByItems(iset *iteratable.Set, key string) *CFSMState {
	for _, s := range c.byKey[key] {
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

// Add a state to the CFSM. Checks first if state is present.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool, error) {
	key, err := itemSetHash(iset)
	if err != nil {
		return nil, false, fmt.Errorf("cannot hash item set: %w", err)
	}
	if s := c.findStateByItems(iset, key); s != nil {
		return s, false, nil
	}
	s := &CFSMState{ID: len(c.states), items: iset, key: key}
	s.Accept = s.containsCompletedStartRule()
	c.states = append(c.states, s)
	c.byKey[key] = append(c.byKey[key], s)
	return s, true, nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, A *Symbol) {
	c.trans[transitionKey{state: s0.ID, symbol: A.ID}] = Transition{Kind: EdgeTransition, Target: s1.ID}
	c.edges.Add(Edge{From: s0, To: s1, Label: A})
}

func (c *CFSM) addDeadEnd(s *CFSMState, A *Symbol) {
	c.trans[transitionKey{state: s.ID, symbol: A.ID}] = Transition{Kind: DeadTransition}
}

// BuildCFSM constructs the characteristic finite state machine for an
// augmented grammar. State 0 is the closure of S' → ● S. States are
// numbered in the order of their discovery, scanning states by ID and
// symbols in grammar order (non-terminals first, then terminals).
func BuildCFSM(g *Grammar) (*CFSM, error) {
	if !g.IsAugmented() {
		return nil, fmt.Errorf("cannot build CFSM for grammar %s: %w", g.Name, ErrNotAugmented)
	}
	tracer().Debugf("=== build CFSM ==================================================")
	cfsm := emptyCFSM(g)
	item, sym := StartItem(g.Rule(0))
	tracer().Debugf("Start item=%v/%v", item, sym)
	closure0 := Closure(g, NewItemSet(item))
	var err error
	if cfsm.S0, _, err = cfsm.addState(closure0); err != nil {
		return nil, err
	}
	cfsm.S0.Dump()
	for id := 0; id < len(cfsm.states); id++ { // states are appended while we scan
		s := cfsm.states[id]
		if r := g.EachSymbol(func(A *Symbol) interface{} {
			gotoset := Goto(g, s.items, A)
			if gotoset.Empty() {
				cfsm.addDeadEnd(s, A)
				return nil
			}
			snew, isNew, err := cfsm.addState(gotoset)
			if err != nil {
				return err
			}
			if isNew {
				tracer().Debugf("new state %d for goto(%d, %s)", snew.ID, s.ID, A)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
			return nil
		}); r != nil {
			return nil, r.(error)
		}
	}
	tracer().Infof("CFSM for grammar %s has %d states", g.Name, len(cfsm.states))
	return cfsm, nil
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, rankdir=LR, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s)))
	}
	for _, e := range c.Edges() {
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From.ID, e.To.ID,
			escapeGraphviz(e.Label.Name)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(s *CFSMState) string {
	var b strings.Builder
	for k, i := range s.Items() {
		if k > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(escapeGraphviz(i.String()))
	}
	b.WriteString("\\l")
	return b.String()
}

var graphvizEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}
