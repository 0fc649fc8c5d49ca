// core/refine/fulcrum_test.go
package refine

import "testing"

func TestFulcrumCleanSplit(t *testing.T) {
	sig1 := spanSignal(10, -1, 1, 5, 1) // favors 1..5
	sig2 := spanSignal(10, -1, 6, 5, 1) // favors 6..10
	if got := Fulcrum(sig1, sig2, 1, 10); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestFulcrumEarliestMaximum(t *testing.T) {
	sig1 := flatSignal(10, 0, map[int]int{3: 1})
	sig2 := flatSignal(10, 0, map[int]int{6: 1})
	// every split in 3..5 scores the same; the earliest wins
	if got := Fulcrum(sig1, sig2, 1, 10); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestFulcrumFlatRegion(t *testing.T) {
	sig := flatSignal(10, 0, nil)
	if got := Fulcrum(sig, sig, 3, 8); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestFulcrumSecondDominates(t *testing.T) {
	sig1 := flatSignal(10, -1, nil)
	sig2 := flatSignal(10, 1, nil)
	// handing everything past lo to the second feature is optimal
	if got := Fulcrum(sig1, sig2, 2, 9); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
