// core/refine/fulcrum.go
package refine

// Fulcrum finds the split point between two features competing for the
// inclusive region lo..hi: the position maximizing the first feature's
// net signal over lo..p plus the second's over p+1..hi. The running
// score starts with the whole region assigned to the second feature;
// stepping the split across p transfers that position to the first
// feature, adjusting the score by 2*sig1(p) - 2*sig2(p). The earliest
// maximum wins.
func Fulcrum(sig1, sig2 Signal, lo, hi int) int {
	score := 0
	for p := lo; p <= hi; p++ {
		score += sig2.At(p) - sig1.At(p)
	}
	best, bestScore := lo, 0
	for p := lo; p <= hi; p++ {
		score += 2*sig1.At(p) - 2*sig2.At(p)
		if p == lo || score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}
