/*
Package sparse implements a simple type for sparse matrices.
It is mainly used for parser tables (GOTO-table and ACTION-table).
Every position in a matrix either holds a value or is empty; empty positions
are reported as such and never encoded by a magic null-value.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// Matrix is a type for a sparse matrix of values of type T. Construct with
//
//     M := NewMatrix[int](10, 10)
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v, ok := M.Value(2, 3)         // returns 4711, true
//     M.Set(2, 3, 123)               // overwrite it, returns 4711, true
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v, ok = M.Value(9, 9)          // returns 0, false
//
// Values cannot be deleted.
type Matrix[T any] struct {
	values []triplet[T] // sorted by row, then column
	rowcnt int
	colcnt int
}

// Triplet values to store
type triplet[T any] struct {
	row, col int
	value    T
}

// NewMatrix creates a new matrix for values of type T, size m x n.
func NewMatrix[T any](m, n int) *Matrix[T] {
	return &Matrix[T]{
		values: []triplet[T]{},
		rowcnt: m,
		colcnt: n,
	}
}

// M returns the row count.
func (m *Matrix[T]) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *Matrix[T]) N() int {
	return m.colcnt
}

// ValueCount returns the number of values in the matrix.
func (m *Matrix[T]) ValueCount() int {
	return len(m.values)
}

// Value returns the value at position (i,j). If the position is empty,
// ok will be false.
func (m *Matrix[T]) Value(i, j int) (value T, ok bool) {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value, true
	}
	return value, false
}

// Set puts a value at position (i,j). If the position held a value before,
// it is returned as old, with replaced set to true.
// Set panics for positions outside the matrix.
func (m *Matrix[T]) Set(i, j int, value T) (old T, replaced bool) {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.Matrix.Set(%d,%d) outside of %d x %d", i, j, m.rowcnt, m.colcnt))
	}
	at := m.search(i, j)
	if at < len(m.values) && m.values[at].storedAt(i, j) { // value already present
		old = m.values[at].value
		m.values[at].value = value
		return old, true
	}
	tnew := triplet[T]{row: i, col: j, value: value}
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return old, false
}

// search finds the index of the first triplet not stored left of (i,j).
func (m *Matrix[T]) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

func (t *triplet[T]) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet[T]) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}
