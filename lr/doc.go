/*
Package lr implements prerequisites for SLR(1) parsing: grammars, grammar
analysis, the characteristic finite state machine and parser tables.

Building a Grammar

Grammars are either created from lists of symbols and a production map,

    g, err := lr.NewGrammar("Expr",
        []string{"E", "T"},                         // non-terminals, E is start symbol
        []string{"+", "num"},                       // terminals
        map[string][][]string{
            "E": {{"E", "+", "T"}, {"T"}},
            "T": {{"num"}},
        },
        lr.TokenTypes(map[string]slrgen.TokType{"num": scanner.Int}))
    ga, err := g.Augment()                          // adds E' → E as rule #0

or by using a grammar builder object. Clients add rules, consisting of
non-terminal symbols and terminals. Terminals carry a token type of type int.
Grammars may contain epsilon-productions.

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).End()         // D  ->  d
    b.LHS("D").Epsilon()               // D  ->
    g, err := b.Grammar()              // builders return augmented grammars

This results in the following trivial grammar:

   g.Dump()

   0: S' → S
   1: S → A a
   2: A → B D
   3: B → b
   4: B → ε
   5: D → d
   6: D → ε

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST and
FOLLOW sets for the grammar and determines all epsilon-derivable
non-terminals. Both are fixed point computations; for a grammar which does
not converge within a bounded number of passes, Analysis reports
ErrNoConvergence.

    ga, err := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(
        func(name string, N *lr.Symbol) interface{} {
            fmt.Printf("FIRST(%s) = %v", name, ga.First(N))
            return nil
        })

    // Output:
    FIRST(S') = [a b d]
    FIRST(S) = [a b d]
    FIRST(A) = [ε b d]
    FIRST(B) = [ε b]
    FIRST(D) = [ε d]

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar. The CFSM will then be transformed into a GOTO table and an
ACTION table for an SLR(1) parser. The CFSM will not be thrown away,
but is made available to the client. It can be exported to Graphviz's Dot-format.

    lrgen := lr.NewTableGenerator(ga)
    err := lrgen.CreateTables()       // construct SLR(1) parser tables
    if lrgen.HasConflicts { ... }     // last action written wins, see lrgen.Conflicts()

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrgen.lr'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.lr")
}
