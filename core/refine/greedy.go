// core/refine/greedy.go
package refine

// DefaultSchedule is the chunk-size ladder ExpandChunked falls through.
var DefaultSchedule = []int{100, 80, 60, 40, 20, 10, 5, 2, 1}

// Expand walks outward from origin one position at a time in dir
// (+1 forward, -1 backward), claiming positions while their signal
// stays non-negative, and returns the last claimed position. At most
// max positions are claimed; origin itself is never given up.
func Expand(sig Signal, origin, dir, max int) int {
	pos := origin
	for step := 0; step < max; step++ {
		next := pos + dir
		if sig.At(next) < 0 {
			break
		}
		pos = next
	}
	return pos
}

// ExpandChunked is Expand with chunked leaps: for each chunk size in
// schedule it repeatedly claims whole chunks while the summed signal
// over the next chunk stays non-negative, then falls through to the
// next smaller size. A schedule ending in 1 finishes with single-step
// precision. The claimed distance never exceeds max.
func ExpandChunked(sig Signal, origin, dir, max int, schedule []int) int {
	if len(schedule) == 0 {
		schedule = DefaultSchedule
	}
	pos := origin
	budget := max
	for _, size := range schedule {
		if size <= 0 {
			continue
		}
		for budget >= size {
			if chunkSum(sig, pos, dir, size) < 0 {
				break
			}
			pos += dir * size
			budget -= size
		}
	}
	return pos
}

func chunkSum(sig Signal, pos, dir, size int) int {
	total := 0
	for k := 1; k <= size; k++ {
		total += sig.At(pos + dir*k)
	}
	return total
}
