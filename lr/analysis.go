package lr

import (
	"fmt"

	"github.com/npillmayer/slrgen/lr/iteratable"
	"golang.org/x/tools/container/intsets"
)

// === Grammar Analysis ======================================================

// LRAnalysis is an object for static analysis of a grammar: FIRST sets,
// FOLLOW sets and epsilon-derivable non-terminals. It is the input for
// table construction.
//
// All sets are sets of symbol IDs. They are computed once by Analysis and
// are read-only afterwards.
type LRAnalysis struct {
	g          *Grammar
	firstSets  map[int]*intsets.Sparse       // FIRST(N), keyed by symbol ID
	followSets map[int]*intsets.Sparse       // FOLLOW(N), keyed by symbol ID
	suffixes   map[suffixKey]*intsets.Sparse // FIRST(β) for rule suffixes β
	maxPasses  int                           // 0 = default cap
	observer   func(PassSnapshot)
}

type suffixKey struct {
	rule   int // rule serial
	offset int // start of suffix within RHS
}

// SetKind tells which kind of sets a PassSnapshot holds.
type SetKind int8

// Kinds of sets computed by the analysis.
const (
	FirstSets SetKind = iota
	FollowSets
)

func (k SetKind) String() string {
	if k == FollowSets {
		return "FOLLOW"
	}
	return "FIRST"
}

// PassSnapshot holds the sets of all non-terminals after a single pass of a
// fixed point computation. Sets are keyed by non-terminal name and hold the
// symbol names ordered by symbol ID.
type PassSnapshot struct {
	Kind SetKind
	Pass int // 1…n
	Sets map[string][]string
}

// AnalysisOption configures a grammar analysis.
type AnalysisOption func(*LRAnalysis)

// MaxPasses sets the maximum number of passes for each of the fixed point
// computations. If n ≤ 0, a cap derived from the size of the grammar is used.
func MaxPasses(n int) AnalysisOption {
	return func(ga *LRAnalysis) {
		ga.maxPasses = n
	}
}

// ObservePasses installs a function which is called after every pass of the
// FIRST and FOLLOW computations.
func ObservePasses(observer func(PassSnapshot)) AnalysisOption {
	return func(ga *LRAnalysis) {
		ga.observer = observer
	}
}

// Analysis computes FIRST and FOLLOW sets for an augmented grammar.
// If a fixed point is not reached within the pass limit, Analysis returns
// an error wrapping ErrNoConvergence.
func Analysis(g *Grammar, opts ...AnalysisOption) (*LRAnalysis, error) {
	if !g.IsAugmented() {
		return nil, fmt.Errorf("cannot analyse grammar %s: %w", g.Name, ErrNotAugmented)
	}
	ga := &LRAnalysis{
		g:          g,
		firstSets:  make(map[int]*intsets.Sparse),
		followSets: make(map[int]*intsets.Sparse),
		suffixes:   make(map[suffixKey]*intsets.Sparse),
	}
	for _, opt := range opts {
		opt(ga)
	}
	for _, N := range g.nonterminals {
		ga.firstSets[N.ID] = &intsets.Sparse{}
		ga.followSets[N.ID] = &intsets.Sparse{}
	}
	if err := ga.computeFirstSets(); err != nil {
		return nil, err
	}
	ga.computeSuffixFirstSets()
	if err := ga.computeFollowSets(); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the grammar this analysis is for.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// Closure computes the closure of an item set with respect to the analysed grammar.
func (ga *LRAnalysis) Closure(S *iteratable.Set) *iteratable.Set {
	return Closure(ga.g, S)
}

// Goto computes the successor item set of S for symbol A. It returns nil
// if there is no transition from S for A.
func (ga *LRAnalysis) Goto(S *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := Goto(ga.g, S, A)
	if gotoset.Empty() {
		return nil
	}
	return gotoset
}

// First returns FIRST(A). For a terminal A this is {A}, for epsilon {ε}.
// The result may contain EpsilonSymbol if A derives ε.
func (ga *LRAnalysis) First(A *Symbol) []*Symbol {
	if A == nil {
		return nil
	}
	if !A.IsNonTerminal() {
		return []*Symbol{A}
	}
	return ga.symbols(ga.firstSets[A.ID])
}

// FirstOfSequence returns FIRST(β) for the suffix β of a rule's RHS,
// starting at offset. For an empty suffix the result is {ε}.
func (ga *LRAnalysis) FirstOfSequence(r *Rule, offset int) []*Symbol {
	if s, ok := ga.suffixes[suffixKey{rule: r.Serial, offset: offset}]; ok && ga.g.Rule(r.Serial) == r {
		return ga.symbols(s)
	}
	return ga.symbols(ga.firstOfSuffix(r.rhs, offset))
}

// Follow returns FOLLOW(N), a set of terminals and possibly EOFSymbol.
func (ga *LRAnalysis) Follow(N *Symbol) []*Symbol {
	if N == nil || !N.IsNonTerminal() {
		return nil
	}
	return ga.symbols(ga.followSets[N.ID])
}

// DerivesEpsilon is true if N ⇒* ε.
func (ga *LRAnalysis) DerivesEpsilon(N *Symbol) bool {
	if N == nil || !N.IsNonTerminal() {
		return N == EpsilonSymbol
	}
	return ga.firstSets[N.ID].Has(EpsilonSymbol.ID)
}

// followIDs is FOLLOW(N) as a set of symbol IDs.
func (ga *LRAnalysis) followIDs(N *Symbol) *intsets.Sparse {
	return ga.followSets[N.ID]
}

func (ga *LRAnalysis) symbols(s *intsets.Sparse) []*Symbol {
	if s == nil {
		return nil
	}
	ids := s.AppendTo(nil)
	syms := make([]*Symbol, 0, len(ids))
	for _, id := range ids {
		syms = append(syms, ga.g.symbolByID(id))
	}
	return syms
}

// --- Fixed point computations ----------------------------------------------

// Every pass which does not terminate the computation adds at least one
// element to a set. FIRST sets hold terminals and ε, FOLLOW sets hold
// terminals and $.
func (ga *LRAnalysis) passLimit(kind SetKind) int {
	if ga.maxPasses > 0 {
		return ga.maxPasses
	}
	nt, t := len(ga.g.nonterminals), len(ga.g.terminals)
	if kind == FirstSets {
		return nt*(t+2) + 2
	}
	return nt*(t+1) + 2
}

func (ga *LRAnalysis) fixedPoint(kind SetKind, pass func() bool) error {
	limit := ga.passLimit(kind)
	for n := 1; ; n++ {
		if n > limit {
			tracer().Errorf("%s sets did not converge within %d passes", kind, limit)
			return fmt.Errorf("grammar %s: %s sets after %d passes: %w", ga.g.Name, kind, limit,
				ErrNoConvergence)
		}
		changed := pass()
		tracer().Debugf("%s pass %d, changed = %v", kind, n, changed)
		if ga.observer != nil {
			ga.observer(ga.snapshot(kind, n))
		}
		if !changed {
			return nil
		}
	}
}

func (ga *LRAnalysis) computeFirstSets() error {
	return ga.fixedPoint(FirstSets, func() bool {
		changed := false
		for _, r := range ga.g.rules {
			first := ga.firstSets[r.LHS.ID]
			if ga.addFirstOfSequence(first, r.rhs) {
				changed = true
			}
		}
		return changed
	})
}

// addFirstOfSequence adds FIRST(seq) to set, given the current state of the
// FIRST sets of non-terminals. Returns true if set changed.
func (ga *LRAnalysis) addFirstOfSequence(set *intsets.Sparse, seq []*Symbol) bool {
	changed := false
	for _, A := range seq {
		if !A.IsNonTerminal() {
			return set.Insert(A.ID) || changed
		}
		firstA := ga.firstSets[A.ID]
		if unionWithoutEpsilon(set, firstA) {
			changed = true
		}
		if !firstA.Has(EpsilonSymbol.ID) {
			return changed
		}
	}
	return set.Insert(EpsilonSymbol.ID) || changed // every symbol of seq is nullable
}

func (ga *LRAnalysis) firstOfSuffix(rhs []*Symbol, offset int) *intsets.Sparse {
	s := &intsets.Sparse{}
	if offset < 0 || offset > len(rhs) {
		return s
	}
	ga.addFirstOfSequence(s, rhs[offset:])
	return s
}

func (ga *LRAnalysis) computeSuffixFirstSets() {
	for _, r := range ga.g.rules {
		for k := 0; k <= len(r.rhs); k++ {
			ga.suffixes[suffixKey{rule: r.Serial, offset: k}] = ga.firstOfSuffix(r.rhs, k)
		}
	}
}

func (ga *LRAnalysis) computeFollowSets() error {
	ga.followSets[ga.g.StartSymbol().ID].Insert(EOFSymbol.ID)
	return ga.fixedPoint(FollowSets, func() bool {
		changed := false
		for _, r := range ga.g.rules {
			followHead := ga.followSets[r.LHS.ID]
			for k, Y := range r.rhs {
				if !Y.IsNonTerminal() {
					continue
				}
				followY := ga.followSets[Y.ID]
				rest := ga.suffixes[suffixKey{rule: r.Serial, offset: k + 1}]
				if unionWithoutEpsilon(followY, rest) {
					changed = true
				}
				if rest.Has(EpsilonSymbol.ID) && followY.UnionWith(followHead) {
					changed = true
				}
			}
		}
		return changed
	})
}

func unionWithoutEpsilon(dst, src *intsets.Sparse) bool {
	if !src.Has(EpsilonSymbol.ID) {
		return dst.UnionWith(src)
	}
	var s intsets.Sparse
	s.Copy(src)
	s.Remove(EpsilonSymbol.ID)
	return dst.UnionWith(&s)
}

func (ga *LRAnalysis) snapshot(kind SetKind, pass int) PassSnapshot {
	sets := ga.firstSets
	if kind == FollowSets {
		sets = ga.followSets
	}
	snap := PassSnapshot{Kind: kind, Pass: pass, Sets: make(map[string][]string, len(sets))}
	for _, N := range ga.g.nonterminals {
		syms := ga.symbols(sets[N.ID])
		names := make([]string, len(syms))
		for i, A := range syms {
			names[i] = A.Name
		}
		snap.Sets[N.Name] = names
	}
	return snap
}
