package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/lr/scanner"
)

// builtin is a grammar the CLI knows about, together with the regular
// expressions for terminals which are not matched literally.
type builtin struct {
	description string
	create      func() (*lr.Grammar, error)
	patterns    map[string]string
}

var grammars = map[string]builtin{
	"expr": {
		description: "arithmetic expressions over num with + - * / and parentheses",
		create:      makeExprGrammar,
		patterns:    map[string]string{"num": `[0-9]+`},
	},
	"signed": {
		description: "optionally signed variables, including an epsilon rule",
		create:      makeSignedGrammar,
		patterns:    map[string]string{"a": `([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`},
	},
}

func grammarNames() string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// We provide a simple expression grammar as a default.
//
//  E' ➞ E
//  E  ➞ E + T  |  E - T  |  T
//  F  ➞ ( E )  |  num
//  T  ➞ T * F  |  T / F  |  F
//
func makeExprGrammar() (*lr.Grammar, error) {
	g, err := lr.NewGrammar("expr",
		[]string{"E", "F", "T"},
		[]string{"+", "-", "*", "/", "(", ")", "num"},
		map[string][][]string{
			"E": {{"E", "+", "T"}, {"E", "-", "T"}, {"T"}},
			"F": {{"(", "E", ")"}, {"num"}},
			"T": {{"T", "*", "F"}, {"T", "/", "F"}, {"F"}},
		},
		lr.TokenTypes(map[string]slrgen.TokType{"num": scanner.Int}))
	if err != nil {
		return nil, err
	}
	return g.Augment()
}

//  Var' ➞ Var
//  Var  ➞ Sign a
//  Sign ➞ +  |  -  |  ε
//
func makeSignedGrammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("signed")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()
	b.LHS("Sign").T("+", '+').End()
	b.LHS("Sign").T("-", '-').End()
	b.LHS("Sign").Epsilon()
	return b.Grammar()
}

// tables bundles the results of table construction for a grammar.
type tables struct {
	name     string
	ga       *lr.LRAnalysis
	lrgen    *lr.TableGenerator
	patterns map[string]string
}

// loadGrammar creates, analyses and generates tables for a built-in grammar.
// Construction is traced on level Error only, except in debug mode.
func loadGrammar(name string) (*tables, error) {
	b, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q, known grammars are %s", name, grammarNames())
	}
	lrtracer := tracing.Select("slrgen.lr")
	if level := lrtracer.GetTraceLevel(); level != tracing.LevelDebug {
		lrtracer.SetTraceLevel(tracing.LevelError)
		defer lrtracer.SetTraceLevel(level)
	}
	g, err := b.create()
	if err != nil {
		return nil, fmt.Errorf("error creating grammar: %w", err)
	}
	g.Dump() // only visible in debug mode
	ga, err := lr.Analysis(g)
	if err != nil {
		return nil, fmt.Errorf("error analysing grammar: %w", err)
	}
	lrgen := lr.NewTableGenerator(ga)
	if err = lrgen.CreateTables(); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}
	if lrgen.HasConflicts {
		tracer().Infof("grammar %s is not SLR(1), %d conflicts", name, len(lrgen.Conflicts()))
	}
	return &tables{name: name, ga: ga, lrgen: lrgen, patterns: b.patterns}, nil
}
