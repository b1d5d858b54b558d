/*
Package slr provides an SLR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The SLR parser
utilizes these tables to recognize a given input, provided either as a
sequence of terminal names or through a scanner interface.

The parser records every step it takes: for each step, a snapshot of the
state stack, the symbol stack and the remaining input is taken before the
action is performed. The sequence of snapshots is returned as a Trace, which
makes the parser suited for studying shift-reduce parsing.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	ga, err := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	err = lrgen.CreateTables()
	if lrgen.HasConflicts { ... }  // last action written wins

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	trace, err := p.Parse([]string{"+", "a"})

or, using a scanner:

	trace, err := p.ParseTokens(scanner.GoTokenizer("input", strings.NewReader("+a")))

Parsing fails with a *SyntaxError if there is no action for the current state
and lookahead.

Configuration flag 'panic-on-syntax-error' lets the parser panic on syntax
errors, which may be helpful for post-mortem debugging.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/lr/scanner"
	"golang.org/x/exp/slices"
)

// tracer traces with key 'slrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.lr")
}

var (
	// ErrIllegalInput is returned for input which is not a sequence of terminals
	// of the grammar. The end-of-input marker must not be part of the input.
	ErrIllegalInput = errors.New("illegal input symbol")
	// ErrNoProgress is returned if the parser performs reductions without
	// ever shifting. This may happen for tables with overwritten conflicts.
	ErrNoProgress = errors.New("parser does not make progress")
)

// SyntaxError is returned if there is no parser action for a state and
// the current input symbol.
type SyntaxError struct {
	State    int        // state on top of the stack
	Symbol   *lr.Symbol // current input symbol
	Position int        // index of Symbol within the input, 0…n
	Span     slrgen.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in state %d at input position %d: unexpected %s",
		e.State, e.Position, e.Symbol)
}

// Step is a snapshot of the parser, taken before an action is performed.
type Step struct {
	States  []int        // state stack, bottom first
	Symbols []*lr.Symbol // symbol stack, bottom first, starting with lr.BottomSymbol
	Input   []*lr.Symbol // remaining input, including the end-of-input marker
	Action  lr.Action    // action to perform
}

func (s Step) String() string {
	return fmt.Sprintf("%v | %s | %s | %v", s.States, symbolString(s.Symbols),
		symbolString(s.Input), s.Action)
}

func symbolString(syms []*lr.Symbol) string {
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return strings.Join(names, " ")
}

// Trace is the sequence of steps of a parse.
type Trace []Step

// Accepted is true if the last step of a trace is an accept action.
func (t Trace) Accepted() bool {
	return len(t) > 0 && t[len(t)-1].Action.Kind == lr.AcceptAction
}

// Parser is an SLR(1)-parser type. Create and initialize one with slr.NewParser(...)
type Parser struct {
	G       *lr.Grammar
	gotoT   *lr.GotoTable   // GOTO table
	actionT *lr.ActionTable // ACTION table
}

// NewParser creates an SLR(1) parser.
func NewParser(g *lr.Grammar, gotoTable *lr.GotoTable, actionTable *lr.ActionTable) *Parser {
	return &Parser{
		G:       g,
		gotoT:   gotoTable,
		actionT: actionTable,
	}
}

// Parse parses a sequence of terminals, given by name.
func (p *Parser) Parse(input []string) (Trace, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	syms := make([]*lr.Symbol, len(input))
	for i, name := range input {
		A := p.G.SymbolByName(name)
		if A == nil {
			return nil, fmt.Errorf("input position %d: %q: %w", i, name, ErrIllegalInput)
		}
		syms[i] = A
	}
	return p.ParseSymbols(syms)
}

// ParseSymbols parses a sequence of terminals.
func (p *Parser) ParseSymbols(input []*lr.Symbol) (Trace, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return p.parse(input, nil)
}

// ParseTokens parses the tokens delivered by a scanner. Token types are
// mapped to terminals of the grammar.
func (p *Parser) ParseTokens(scan scanner.Tokenizer) (Trace, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	var syms []*lr.Symbol
	var spans []slrgen.Span
	for token := scan.NextToken(); token.TokType() != slrgen.EOF; token = scan.NextToken() {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), token.TokType())
		A := p.G.TerminalByToken(token.TokType())
		if A == nil {
			return nil, fmt.Errorf("token %q at %v: %w", token.Lexeme(), token.Span(), ErrIllegalInput)
		}
		syms = append(syms, A)
		spans = append(spans, token.Span())
	}
	return p.parse(syms, spans)
}

func (p *Parser) check() error {
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		tracer().Errorf("SLR(1)-parser not initialized")
		return errors.New("SLR(1)-parser not initialized")
	}
	return nil
}

// parse runs the shift-reduce automaton. spans is either nil or holds the
// input spans of the tokens of input.
//
// http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
func (p *Parser) parse(input []*lr.Symbol, spans []slrgen.Span) (Trace, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	for i, A := range input {
		if A == nil || !A.IsTerminal() || A.IsEOF() {
			return nil, fmt.Errorf("input position %d: %v: %w", i, A, ErrIllegalInput)
		}
	}
	input = append(slices.Clone(input), lr.EOFSymbol)
	states := []int{0}
	symbols := []*lr.Symbol{lr.BottomSymbol}
	maxReductions := p.actionT.Rows()*p.G.Size() + 1
	reductions := 0 // reductions since last shift
	var trace Trace
	pos := 0
	for {
		state, A := states[len(states)-1], input[pos]
		action, ok := p.actionT.Action(state, A)
		if !ok {
			return trace, p.syntaxError(state, A, pos, spans)
		}
		tracer().Debugf("action(%d, %v) = %v", state, A, action)
		trace = append(trace, Step{
			States:  slices.Clone(states),
			Symbols: slices.Clone(symbols),
			Input:   slices.Clone(input[pos:]),
			Action:  action,
		})
		switch action.Kind {
		case lr.AcceptAction:
			tracer().Infof("input accepted after %d steps", len(trace))
			return trace, nil
		case lr.ShiftAction:
			tracer().Debugf("shifting, next state = %d", action.State)
			states = append(states, action.State)
			symbols = append(symbols, A)
			pos++
			reductions = 0
		case lr.ReduceAction:
			if reductions++; reductions > maxReductions {
				tracer().Errorf("%d reductions without shift", reductions-1)
				return trace, fmt.Errorf("state %d, input position %d: %w", state, pos, ErrNoProgress)
			}
			next, err := p.reduce(&states, &symbols, action.Rule)
			if err != nil {
				return trace, err
			}
			tracer().Debugf("reduced to next state = %d", next)
		default:
			panic(fmt.Sprintf("illegal action in ACTION table: %v", action))
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are popped from the stacks, then LHS and the GOTO state
// for LHS are pushed. For an epsilon rule nothing is popped.
func (p *Parser) reduce(states *[]int, symbols *[]*lr.Symbol, rule *lr.Rule) (int, error) {
	tracer().Infof("reduce %v", rule)
	n := rule.Len()
	if n >= len(*states) {
		return 0, fmt.Errorf("cannot reduce %v: stack too short", rule)
	}
	for k, A := range rule.RHS() {
		if B := (*symbols)[len(*symbols)-n+k]; B != A {
			tracer().Errorf("expected %v on stack, got %v", A, B)
		}
	}
	*states = (*states)[:len(*states)-n]
	*symbols = (*symbols)[:len(*symbols)-n]
	top := (*states)[len(*states)-1]
	next, ok := p.gotoT.Goto(top, rule.LHS)
	if !ok {
		return 0, fmt.Errorf("no GOTO entry for state %d and %v", top, rule.LHS)
	}
	*states = append(*states, next)
	*symbols = append(*symbols, rule.LHS)
	return next, nil
}

func (p *Parser) syntaxError(state int, A *lr.Symbol, pos int, spans []slrgen.Span) error {
	err := &SyntaxError{State: state, Symbol: A, Position: pos}
	if pos < len(spans) {
		err.Span = spans[pos]
	} else if len(spans) > 0 {
		last := spans[len(spans)-1].To()
		err.Span = slrgen.Span{last, last}
	}
	tracer().Errorf("%v", err)
	if panicOnSyntaxError() {
		panic(`SLR(1)-parser detected a syntax error.

Configuration flag panic-on-syntax-error is set to true. It is aimed at helping
to debug a parser and do a post-mortem of a failing parse. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-syntax-error to its default (false).

` + err.Error())
	}
	return err
}

// panicOnSyntaxError reads configuration flag 'panic-on-syntax-error',
// tolerating an uninitialized global configuration.
func panicOnSyntaxError() (flag bool) {
	defer func() {
		if r := recover(); r != nil {
			flag = false
		}
	}()
	return gconf.GetBool("panic-on-syntax-error")
}
