package lr

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/slrgen"
)

// Structural errors of grammars. They are wrapped with more context, use
// errors.Is to check for them.
var (
	ErrEmptyGrammar     = errors.New("grammar has no non-terminals")
	ErrUndeclaredSymbol = errors.New("symbol is neither a terminal nor a non-terminal")
	ErrReservedSymbol   = errors.New("symbol name is reserved")
	ErrDuplicateSymbol  = errors.New("symbol declared more than once")
	ErrNotAugmented     = errors.New("grammar is not augmented")
	ErrAlreadyAugmented = errors.New("grammar is already augmented")
	ErrNoConvergence    = errors.New("fixed point computation did not converge")
)

// --- Symbols ---------------------------------------------------------------

type symbolKind int8

const (
	sentinelSym symbolKind = iota
	terminalSym
	nonTerminalSym
)

// Symbol is a grammar symbol: a terminal, a non-terminal or one of the
// sentinels EpsilonSymbol, EOFSymbol and BottomSymbol.
// Symbols are compared by identity; a grammar holds exactly one *Symbol
// for every name.
type Symbol struct {
	Name  string
	ID    int            // serial number, unique within a grammar
	Value slrgen.TokType // token type of a terminal
	kind  symbolKind
}

// Sentinel symbols, shared by all grammars.
var (
	EpsilonSymbol = &Symbol{Name: "ε", ID: 0}
	EOFSymbol     = &Symbol{Name: "$", ID: 1, Value: slrgen.EOF}
	BottomSymbol  = &Symbol{Name: "#", ID: 2}
)

const firstSymbolID = 3

// Token types for terminals with names longer than a single rune start
// behind the range of runes.
const firstNamedTokType = slrgen.TokType(unicode.MaxRune + 1)

// IsTerminal is true for terminals and for the end-of-input marker.
func (A *Symbol) IsTerminal() bool {
	return A.kind == terminalSym || A == EOFSymbol
}

// IsNonTerminal is true for non-terminals.
func (A *Symbol) IsNonTerminal() bool {
	return A.kind == nonTerminalSym
}

// IsEpsilon is true for the epsilon marker.
func (A *Symbol) IsEpsilon() bool {
	return A == EpsilonSymbol
}

// IsEOF is true for the end-of-input marker.
func (A *Symbol) IsEOF() bool {
	return A == EOFSymbol
}

// TokenType returns the token type a scanner delivers for this terminal.
func (A *Symbol) TokenType() slrgen.TokType {
	return A.Value
}

func (A *Symbol) String() string {
	return A.Name
}

func isReserved(name string) bool {
	return name == EpsilonSymbol.Name || name == EOFSymbol.Name || name == BottomSymbol.Name || name == ""
}

// --- Rules -----------------------------------------------------------------

// Rule is a production of a grammar: LHS → RHS. The RHS may be empty
// (epsilon production).
type Rule struct {
	Serial int     // ordinal number of this rule within its grammar
	LHS    *Symbol // head of the rule
	rhs    []*Symbol
}

// RHS returns a copy of the right hand side of the rule.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the length of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEpsilon is true for an empty right hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.Name)
	b.WriteString(" →")
	if len(r.rhs) == 0 {
		b.WriteString(" ")
		b.WriteString(EpsilonSymbol.Name)
	}
	for _, A := range r.rhs {
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	return b.String()
}

func sameRHS(a, b []*Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Grammars --------------------------------------------------------------

// Grammar is an immutable context-free grammar. Non-terminals are ordered,
// the first one is the start symbol. Rules are grouped by their LHS, in the
// order of the non-terminals.
//
// Grammars have to be augmented before they may be analysed or used for
// table construction.
type Grammar struct {
	Name         string
	rules        []*Rule
	nonterminals []*Symbol
	terminals    []*Symbol
	symbols      map[string]*Symbol
	byID         []*Symbol
	byToken      map[slrgen.TokType]*Symbol
	augmented    bool
}

// GrammarOption configures grammar creation.
type GrammarOption func(*grammarConfig)

type grammarConfig struct {
	tokens map[string]slrgen.TokType
}

// TokenTypes binds terminals to token types. Terminals not mentioned get
// a default token type: single-rune names are bound to their rune, others
// to a unique value outside the range of runes.
func TokenTypes(m map[string]slrgen.TokType) GrammarOption {
	return func(conf *grammarConfig) {
		for name, tt := range m {
			conf.tokens[name] = tt
		}
	}
}

// NewGrammar creates a grammar from a list of non-terminals, a list of
// terminals and productions, keyed by non-terminal. The first non-terminal
// is the start symbol. Every symbol in a production body has to be declared
// as either a terminal or a non-terminal. Duplicate bodies for the same
// non-terminal are dropped.
//
// The grammar is not augmented; call Augment before analysing it.
func NewGrammar(name string, nonterminals, terminals []string,
	productions map[string][][]string, opts ...GrammarOption) (*Grammar, error) {
	//
	conf := &grammarConfig{tokens: make(map[string]slrgen.TokType)}
	for _, opt := range opts {
		opt(conf)
	}
	if len(nonterminals) == 0 {
		return nil, fmt.Errorf("grammar %s: %w", name, ErrEmptyGrammar)
	}
	g := emptyGrammar(name)
	for _, n := range nonterminals {
		if _, err := g.declare(n, nonTerminalSym); err != nil {
			return nil, fmt.Errorf("grammar %s: %w", name, err)
		}
	}
	for i, n := range terminals {
		A, err := g.declare(n, terminalSym)
		if err != nil {
			return nil, fmt.Errorf("grammar %s: %w", name, err)
		}
		A.Value = defaultTokType(n, i)
		if tt, ok := conf.tokens[n]; ok {
			A.Value = tt
		}
		if B, ok := g.byToken[A.Value]; ok {
			return nil, fmt.Errorf("grammar %s: terminals %q and %q share token type %d: %w",
				name, B.Name, A.Name, A.Value, ErrDuplicateSymbol)
		}
		g.byToken[A.Value] = A
	}
	for head := range productions {
		if A, ok := g.symbols[head]; !ok || !A.IsNonTerminal() {
			return nil, fmt.Errorf("grammar %s: head %q: %w", name, head, ErrUndeclaredSymbol)
		}
	}
	for _, N := range g.nonterminals {
		for _, body := range productions[N.Name] {
			rhs := make([]*Symbol, 0, len(body))
			for _, n := range body {
				A, ok := g.symbols[n]
				if !ok {
					return nil, fmt.Errorf("grammar %s: symbol %q in rule for %s: %w",
						name, n, N.Name, ErrUndeclaredSymbol)
				}
				rhs = append(rhs, A)
			}
			g.addRule(N, rhs)
		}
	}
	tracer().Debugf("grammar %s has %d rules", name, len(g.rules))
	return g, nil
}

func emptyGrammar(name string) *Grammar {
	return &Grammar{
		Name:    name,
		symbols: make(map[string]*Symbol),
		byID:    []*Symbol{EpsilonSymbol, EOFSymbol, BottomSymbol},
		byToken: map[slrgen.TokType]*Symbol{slrgen.EOF: EOFSymbol},
	}
}

func defaultTokType(name string, inx int) slrgen.TokType {
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && r != utf8.RuneError {
		return slrgen.TokType(r)
	}
	return firstNamedTokType + slrgen.TokType(inx)
}

func (g *Grammar) declare(name string, kind symbolKind) (*Symbol, error) {
	if isReserved(name) {
		return nil, fmt.Errorf("symbol %q: %w", name, ErrReservedSymbol)
	}
	if _, ok := g.symbols[name]; ok {
		return nil, fmt.Errorf("symbol %q: %w", name, ErrDuplicateSymbol)
	}
	A := &Symbol{Name: name, ID: len(g.byID), kind: kind}
	g.symbols[name] = A
	g.byID = append(g.byID, A)
	if kind == terminalSym {
		g.terminals = append(g.terminals, A)
	} else {
		g.nonterminals = append(g.nonterminals, A)
	}
	return A, nil
}

func (g *Grammar) addRule(lhs *Symbol, rhs []*Symbol) *Rule {
	for _, r := range g.rules {
		if r.LHS == lhs && sameRHS(r.rhs, rhs) {
			tracer().Debugf("dropping duplicate rule %v", r)
			return r
		}
	}
	r := &Rule{Serial: len(g.rules), LHS: lhs, rhs: rhs}
	g.rules = append(g.rules, r)
	return r
}

// Augment creates a new grammar with a fresh start symbol S', which is
// the LHS of a single new rule S' → S, with S being the start symbol of g.
// S' is prepended to the non-terminals and the new rule is rule #0.
func (g *Grammar) Augment() (*Grammar, error) {
	if g.augmented {
		return nil, fmt.Errorf("grammar %s: %w", g.Name, ErrAlreadyAugmented)
	}
	S := g.StartSymbol()
	name := S.Name + "'"
	for g.symbols[name] != nil {
		name += "'"
	}
	ag := emptyGrammar(g.Name)
	ag.augmented = true
	ag.byID = append(ag.byID, g.byID[firstSymbolID:]...)
	for n, A := range g.symbols {
		ag.symbols[n] = A
	}
	for tt, A := range g.byToken {
		ag.byToken[tt] = A
	}
	start := &Symbol{Name: name, ID: len(ag.byID), kind: nonTerminalSym}
	ag.byID = append(ag.byID, start)
	ag.symbols[name] = start
	ag.nonterminals = append([]*Symbol{start}, g.nonterminals...)
	ag.terminals = append([]*Symbol(nil), g.terminals...)
	ag.addRule(start, []*Symbol{S})
	for _, r := range g.rules {
		ag.addRule(r.LHS, r.rhs)
	}
	tracer().Debugf("augmented grammar %s with %v", g.Name, ag.rules[0])
	return ag, nil
}

// IsAugmented is true for grammars created by Augment.
func (g *Grammar) IsAugmented() bool {
	return g.augmented
}

// StartSymbol returns the start symbol, which is S' for augmented grammars.
func (g *Grammar) StartSymbol() *Symbol {
	return g.nonterminals[0]
}

// OriginalStartSymbol returns S for an augmented grammar with rule S' → S,
// and the start symbol otherwise.
func (g *Grammar) OriginalStartSymbol() *Symbol {
	if g.augmented {
		return g.rules[0].rhs[0]
	}
	return g.StartSymbol()
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule #no.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Rules returns all rules, ordered by serial number.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// RulesFor returns the rules with LHS N, in grammar order.
func (g *Grammar) RulesFor(N *Symbol) []*Rule {
	var rules []*Rule
	for _, r := range g.rules {
		if r.LHS == N {
			rules = append(rules, r)
		}
	}
	return rules
}

// Terminals returns the terminals of g, in declaration order.
// The end-of-input marker is not included.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminals of g, in declaration order,
// starting with the start symbol.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals...)
}

// SymbolByName finds a grammar symbol or a sentinel by name.
func (g *Grammar) SymbolByName(name string) *Symbol {
	switch name {
	case EOFSymbol.Name:
		return EOFSymbol
	case EpsilonSymbol.Name:
		return EpsilonSymbol
	case BottomSymbol.Name:
		return BottomSymbol
	}
	return g.symbols[name]
}

// TerminalByToken finds the terminal bound to a token type. For slrgen.EOF
// it returns EOFSymbol.
func (g *Grammar) TerminalByToken(tt slrgen.TokType) *Symbol {
	return g.byToken[tt]
}

// symbolByID returns the symbol with a given ID, or nil.
func (g *Grammar) symbolByID(id int) *Symbol {
	if id < 0 || id >= len(g.byID) {
		return nil
	}
	return g.byID[id]
}

// maxSymbolID is the largest symbol ID in use.
func (g *Grammar) maxSymbolID() int {
	return len(g.byID) - 1
}

// EachSymbol calls mapper for every non-terminal, then for every terminal.
// If mapper returns a non-nil value, iteration stops and this value is returned.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) interface{} {
	for _, A := range g.nonterminals {
		if r := mapper(A); r != nil {
			return r
		}
	}
	for _, A := range g.terminals {
		if r := mapper(A); r != nil {
			return r
		}
	}
	return nil
}

// EachNonTerminal calls mapper for every non-terminal.
// If mapper returns a non-nil value, iteration stops and this value is returned.
func (g *Grammar) EachNonTerminal(mapper func(name string, N *Symbol) interface{}) interface{} {
	for _, N := range g.nonterminals {
		if r := mapper(N.Name, N); r != nil {
			return r
		}
	}
	return nil
}

// Dump is a debugging helper, tracing all rules.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s -----------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %v", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------")
}

// --- Grammar builder -------------------------------------------------------

// GrammarBuilder is a helper to construct grammars rule by rule:
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
//    b.LHS("A").T("b", 2).End()         // A  ->  b
//    b.LHS("A").Epsilon()               // A  ->
//    g, err := b.Grammar()
//
// The LHS of the first rule is the start symbol.
type GrammarBuilder struct {
	name    string
	nonterm []string
	term    []string
	known   map[string]bool
	prods   map[string][][]string
	tokens  map[string]slrgen.TokType
	err     error
}

// RuleBuilder collects the RHS of a single rule.
type RuleBuilder struct {
	b   *GrammarBuilder
	lhs string
	rhs []string
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:   name,
		known:  make(map[string]bool),
		prods:  make(map[string][][]string),
		tokens: make(map[string]slrgen.TokType),
	}
}

// LHS starts a new rule with non-terminal name as its head.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	b.nonTerminal(name)
	return &RuleBuilder{b: b, lhs: name}
}

func (b *GrammarBuilder) nonTerminal(name string) {
	if !b.known[name] {
		b.known[name] = true
		b.nonterm = append(b.nonterm, name)
	}
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.b.nonTerminal(name)
	rb.rhs = append(rb.rhs, name)
	return rb
}

// T appends a terminal to the RHS. tokval is the token type a scanner
// will deliver for this terminal.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	b := rb.b
	if !b.known[name] {
		b.known[name] = true
		b.term = append(b.term, name)
		b.tokens[name] = slrgen.TokType(tokval)
	} else if tt, ok := b.tokens[name]; ok && tt != slrgen.TokType(tokval) && b.err == nil {
		b.err = fmt.Errorf("terminal %q bound to token types %d and %d: %w",
			name, tt, tokval, ErrDuplicateSymbol)
	}
	rb.rhs = append(rb.rhs, name)
	return rb
}

// End completes the rule.
func (rb *RuleBuilder) End() {
	rb.b.prods[rb.lhs] = append(rb.b.prods[rb.lhs], rb.rhs)
}

// Epsilon completes the rule with an empty RHS. Symbols appended before are
// discarded.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}

// Grammar creates the augmented grammar for all rules collected so far.
// Rule #0 will be S' → S.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, fmt.Errorf("grammar %s: %w", b.name, b.err)
	}
	g, err := NewGrammar(b.name, b.nonterm, b.term, b.prods, TokenTypes(b.tokens))
	if err != nil {
		return nil, err
	}
	return g.Augment()
}
