package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuiltinGrammars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	//
	for name := range grammars {
		tabs, err := loadGrammar(name)
		if err != nil {
			t.Fatalf("grammar %s: %v", name, err)
		}
		if tabs.lrgen.HasConflicts {
			t.Errorf("expected grammar %s to be SLR(1)", name)
		}
	}
	if _, err := loadGrammar("nonsense"); err == nil {
		t.Errorf("expected error for unknown grammar")
	}
}

func TestParseWithScanners(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	//
	inputs := []struct {
		grammar, scan, input string
	}{
		{"expr", scanGo, "(1 + 2) / 3"},
		{"expr", scanLexmach, "(1 + 22)*3 - 4"},
		{"expr", scanNames, "( num + num ) / num"},
		{"signed", scanNames, "- a"},
		{"signed", scanLexmach, "+ x_1"},
		{"signed", scanGo, "y"},
	}
	for _, in := range inputs {
		tabs, err := loadGrammar(in.grammar)
		if err != nil {
			t.Fatal(err)
		}
		trace, err := parse(tabs, in.scan, in.input)
		if err != nil {
			t.Errorf("%s/%s: cannot parse %q: %v", in.grammar, in.scan, in.input, err)
			continue
		}
		if !trace.Accepted() {
			t.Errorf("%s/%s: expected %q to be accepted", in.grammar, in.scan, in.input)
		}
	}
	tabs, _ := loadGrammar("expr")
	if _, err := parse(tabs, "nonsense", "1"); err == nil {
		t.Errorf("expected error for unknown scanner")
	}
	if _, err := parse(tabs, scanGo, "1 +"); err == nil {
		t.Errorf("expected syntax error for incomplete input")
	}
}

func TestReplCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.cli")
	defer teardown()
	//
	tabs, err := loadGrammar("expr")
	if err != nil {
		t.Fatal(err)
	}
	intp := &Intp{tables: tabs, scan: scanGo}
	for _, line := range []string{":sets", ":tables", ":automaton", ":unknown", "1 + 2", "1 +"} {
		if intp.Eval(line) {
			t.Errorf("did not expect %q to quit", line)
		}
	}
	if !intp.Eval(":quit") {
		t.Errorf("expected :quit to end the session")
	}
}
