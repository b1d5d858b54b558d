package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func names(syms []*Symbol) []string {
	r := make([]string, len(syms))
	for i, A := range syms {
		r[i] = A.Name
	}
	return r
}

func sameNames(a, b []string) bool {
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

func TestFirstFollowExpr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	for _, N := range []string{"E'", "E", "F", "T"} {
		if first := names(ga.First(g.SymbolByName(N))); !sameNames(first, []string{"(", "num"}) {
			t.Errorf("expected FIRST(%s) = [( num], is %v", N, first)
		}
	}
	follow := map[string][]string{
		"E'": {"$"},
		"E":  {"$", "+", "-", ")"},
		"F":  {"$", "+", "-", "*", "/", ")"},
		"T":  {"$", "+", "-", "*", "/", ")"},
	}
	for N, expected := range follow {
		if f := names(ga.Follow(g.SymbolByName(N))); !sameNames(f, expected) {
			t.Errorf("expected FOLLOW(%s) = %v, is %v", N, expected, f)
		}
	}
	if f := names(ga.First(g.SymbolByName("+"))); !sameNames(f, []string{"+"}) {
		t.Errorf("expected FIRST(+) = [+], is %v", f)
	}
	if ga.Follow(g.SymbolByName("num")) != nil {
		t.Errorf("expected no FOLLOW set for a terminal")
	}
}

func TestFirstFollowEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	g := epsGrammar(t)
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	first := map[string][]string{
		"S'": {"a", "b", "d"},
		"S":  {"a", "b", "d"},
		"A":  {"ε", "b", "d"},
		"B":  {"ε", "b"},
		"D":  {"ε", "d"},
	}
	for N, expected := range first {
		if f := names(ga.First(g.SymbolByName(N))); !sameNames(f, expected) {
			t.Errorf("expected FIRST(%s) = %v, is %v", N, expected, f)
		}
	}
	follow := map[string][]string{
		"S": {"$"},
		"A": {"a"},
		"B": {"a", "d"},
		"D": {"a"},
	}
	for N, expected := range follow {
		if f := names(ga.Follow(g.SymbolByName(N))); !sameNames(f, expected) {
			t.Errorf("expected FOLLOW(%s) = %v, is %v", N, expected, f)
		}
	}
	for N, nullable := range map[string]bool{"S": false, "A": true, "B": true, "D": true} {
		if ga.DerivesEpsilon(g.SymbolByName(N)) != nullable {
			t.Errorf("expected DerivesEpsilon(%s) = %v", N, nullable)
		}
	}
	r := g.Rule(1) // S → A a
	if f := names(ga.FirstOfSequence(r, 0)); !sameNames(f, []string{"a", "b", "d"}) {
		t.Errorf("expected FIRST(A a) = [a b d], is %v", f)
	}
	if f := names(ga.FirstOfSequence(r, 2)); !sameNames(f, []string{"ε"}) {
		t.Errorf("expected FIRST of empty suffix = [ε], is %v", f)
	}
	if f := names(ga.FirstOfSequence(g.Rule(2), 0)); !sameNames(f, []string{"ε", "b", "d"}) {
		t.Errorf("expected FIRST(B D) = [ε b d], is %v", f)
	}
}

func TestFixedPointConvergence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	for _, g := range []*Grammar{exprGrammar(t), epsGrammar(t)} {
		var prev map[string][]string
		var kind SetKind
		passes := map[SetKind]int{}
		_, err := Analysis(g, ObservePasses(func(snap PassSnapshot) {
			if snap.Kind != kind || prev == nil {
				prev, kind = nil, snap.Kind
			}
			passes[snap.Kind] = snap.Pass
			for N, set := range snap.Sets {
				for _, A := range prev[N] {
					if !contains(set, A) {
						t.Errorf("%s(%s) lost %s in pass %d", snap.Kind, N, A, snap.Pass)
					}
				}
			}
			prev = snap.Sets
		}))
		if err != nil {
			t.Fatal(err)
		}
		if passes[FirstSets] < 2 || passes[FollowSets] < 2 {
			t.Errorf("expected at least 2 passes for grammar %s, have %v", g.Name, passes)
		}
	}
}

func contains(set []string, name string) bool {
	for _, n := range set {
		if n == name {
			return true
		}
	}
	return false
}

func TestPassLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	if _, err := Analysis(g, MaxPasses(1)); !errors.Is(err, ErrNoConvergence) {
		t.Errorf("expected analysis with 1 pass to fail, got %v", err)
	}
	if _, err := Analysis(g, MaxPasses(100)); err != nil {
		t.Errorf("expected analysis with 100 passes to succeed, got %v", err)
	}
	plain, err := NewGrammar("G", []string{"S"}, []string{"a"}, map[string][][]string{"S": {{"a"}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Analysis(plain); !errors.Is(err, ErrNotAugmented) {
		t.Errorf("expected error for grammar which is not augmented, got %v", err)
	}
}
