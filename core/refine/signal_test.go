// core/refine/signal_test.go
package refine

// sliceSignal adapts a plain slice to the Signal interface for tests,
// indexing 1-based and wrapping.
type sliceSignal []int

func (s sliceSignal) Len() int { return len(s) }

func (s sliceSignal) At(pos int) int {
	n := len(s)
	return s[((pos-1)%n+n)%n]
}

// flatSignal returns a signal of length n filled with base, then
// overwrites positions from overlays given as pos:value pairs.
func flatSignal(n, base int, overlays map[int]int) sliceSignal {
	s := make(sliceSignal, n)
	for i := range s {
		s[i] = base
	}
	for pos, v := range overlays {
		s[((pos-1)%n+n)%n] = v
	}
	return s
}

// spanSignal fills the inclusive circular span pos..pos+length-1 with v
// on top of base.
func spanSignal(n, base, pos, length, v int) sliceSignal {
	s := flatSignal(n, base, nil)
	for k := 0; k < length; k++ {
		s[((pos+k-1)%n+n)%n] = v
	}
	return s
}
