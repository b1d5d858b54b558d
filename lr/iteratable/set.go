package iteratable

// Set is a duplicate-free collection which remembers insertion order.
// Elements have to be comparable, as they are used as map keys.
//
// Elements added during an iteration will be visited by the same iteration.
type Set struct {
	items  []interface{}
	index  map[interface{}]int
	cursor int
}

// NewSet creates an empty set with an initial capacity of n.
func NewSet(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{
		items:  make([]interface{}, 0, n),
		index:  make(map[interface{}]int, n),
		cursor: -1,
	}
}

// Add adds an element to S, if not already present.
// Returns true if S changed.
func (S *Set) Add(x interface{}) bool {
	if _, ok := S.index[x]; ok {
		return false
	}
	S.index[x] = len(S.items)
	S.items = append(S.items, x)
	return true
}

// Contains checks for membership of x.
func (S *Set) Contains(x interface{}) bool {
	_, ok := S.index[x]
	return ok
}

// Size returns the number of elements in S.
func (S *Set) Size() int {
	if S == nil {
		return 0
	}
	return len(S.items)
}

// Empty is true for a set without elements.
func (S *Set) Empty() bool {
	return S.Size() == 0
}

// Values returns the elements of S in insertion order.
func (S *Set) Values() []interface{} {
	if S == nil {
		return nil
	}
	return append([]interface{}(nil), S.items...)
}

// Copy creates a shallow copy of S. The iteration state is not copied.
func (S *Set) Copy() *Set {
	C := NewSet(S.Size())
	for _, x := range S.items {
		C.Add(x)
	}
	return C
}

// Equals is true if S and other contain the same elements, regardless of order.
func (S *Set) Equals(other *Set) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, x := range S.items {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration over S.
func (S *Set) IterateOnce() {
	S.cursor = -1
}

// Next moves the iteration to the next element. It returns false if there
// are no more elements.
func (S *Set) Next() bool {
	S.cursor++
	return S.cursor < len(S.items)
}

// Item returns the current element of an iteration.
func (S *Set) Item() interface{} {
	if S.cursor < 0 || S.cursor >= len(S.items) {
		return nil
	}
	return S.items[S.cursor]
}
