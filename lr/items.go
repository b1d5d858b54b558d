package lr

import (
	"bytes"

	"github.com/cnf/structhash"
	"github.com/npillmayer/slrgen/lr/iteratable"
	"golang.org/x/exp/slices"
)

// Item is an LR(0) item, i.e. a rule with a dot marking how much of the
// RHS has been recognized:
//
//    E → E ● + T
//
// Items are comparable values. As every (LHS, RHS) pair of a grammar is
// represented by exactly one rule, two items are equal iff LHS, RHS and dot
// position are equal.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the item for a rule with the dot in front of the RHS,
// together with the symbol after the dot (nil for epsilon rules).
func StartItem(r *Rule) (Item, *Symbol) {
	i := Item{rule: r, dot: 0}
	return i, i.PeekSymbol()
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position, 0…len(RHS).
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or nil if the dot is at the end.
func (i Item) PeekSymbol() *Symbol {
	if i.rule == nil || i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance returns the item with the dot moved one symbol to the right.
// For a reduction item, Advance returns the item itself.
func (i Item) Advance() Item {
	if i.IsReduction() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

// IsReduction is true if the dot is behind the complete RHS.
func (i Item) IsReduction() bool {
	return i.dot >= len(i.rule.rhs)
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" →")
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" ●")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.IsReduction() {
		b.WriteString(" ●")
	}
	return b.String()
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

// itemKey is a rule/dot pair, used for ordering items and for hashing
// item sets.
type itemKey struct {
	Rule int
	Dot  int
}

func (k itemKey) less(other itemKey) bool {
	return k.Rule < other.Rule || k.Rule == other.Rule && k.Dot < other.Dot
}

func (i Item) key() itemKey {
	return itemKey{Rule: i.rule.Serial, Dot: i.dot}
}

// sortedItems returns the items of S, ordered by rule serial and dot.
func sortedItems(S *iteratable.Set) []Item {
	items := make([]Item, 0, S.Size())
	for _, x := range S.Values() {
		items = append(items, asItem(x))
	}
	slices.SortFunc(items, func(a, b Item) int {
		ka, kb := a.key(), b.key()
		if ka.less(kb) {
			return -1
		} else if kb.less(ka) {
			return 1
		}
		return 0
	})
	return items
}

// NewItemSet creates an item set from items.
func NewItemSet(items ...Item) *iteratable.Set {
	S := newItemSet()
	for _, i := range items {
		S.Add(i)
	}
	return S
}

// Dump is a debugging helper, tracing the items of an item set.
func Dump(S *iteratable.Set) {
	for n, i := range sortedItems(S) {
		tracer().Debugf("[%2d] %s", n+1, i)
	}
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, i := range sortedItems(S) {
		if k == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set: for every item with the dot
// in front of a non-terminal N, items N → ● β are added for all rules of N,
// until no more items are added. S is not modified.
func Closure(g *Grammar, S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		A := item.PeekSymbol()              // get symbol A after dot
		if A == nil || !A.IsNonTerminal() { // reduction item or terminal
			continue
		}
		for _, r := range g.RulesFor(A) {
			i, _ := StartItem(r)
			C.Add(i) // will be visited by this iteration, if new
		}
	}
	return C
}

// GotoSet computes the kernel of the successor of item set S for symbol A:
// for every item N → … ● A … in S the item N → … A ● … is collected.
func GotoSet(S *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := newItemSet()
	for _, x := range S.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

// Goto computes closure(GotoSet(S, A)). An empty result means there is no
// transition from S for A.
func Goto(g *Grammar, S *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := GotoSet(S, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := Closure(g, gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(S), A, itemSetString(gclosure))
	return gclosure
}

// itemSetHash computes a canonical key for an item set, independent of
// the insertion order of items.
func itemSetHash(S *iteratable.Set) (string, error) {
	items := sortedItems(S)
	keys := struct {
		Items []itemKey
	}{
		Items: make([]itemKey, len(items)),
	}
	for k, i := range items {
		keys.Items[k] = i.key()
	}
	return structhash.Hash(keys, 1)
}
