package sparse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMatrixSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	M := NewMatrix[int](10, 10)
	M.Set(2, 3, 4711)
	if v, ok := M.Value(2, 3); !ok || v != 4711 {
		t.Errorf("expected M(2,3) to be 4711, is %d (%v)", v, ok)
	}
	if _, ok := M.Value(3, 2); ok {
		t.Errorf("expected M(3,2) to be empty")
	}
	old, replaced := M.Set(2, 3, 123)
	if !replaced || old != 4711 {
		t.Errorf("expected overwrite to report old value 4711, got %d (%v)", old, replaced)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected value count to be 1, is %d", M.ValueCount())
	}
}

func TestMatrixOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	M := NewMatrix[string](3, 3)
	M.Set(2, 0, "c")
	M.Set(0, 2, "b")
	M.Set(0, 1, "a")
	M.Set(2, 2, "d")
	var seq string
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if v, ok := M.Value(i, j); ok {
				seq += v
			}
		}
	}
	if seq != "abcd" || M.ValueCount() != 4 {
		t.Errorf("expected values abcd at their positions, got %s", seq)
	}
	if _, ok := M.Value(1, 1); ok {
		t.Errorf("expected (1,1) to be empty")
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.lr")
	defer teardown()
	//
	defer func() {
		if recover() == nil {
			t.Errorf("expected Set outside of matrix to panic")
		}
	}()
	M := NewMatrix[int](2, 2)
	M.Set(2, 0, 1)
}
