package metrics

// Levenshtein computes the character edit distance between two strings,
// over runes, with a rolling single-row table sized by the shorter
// string. Zero iff the strings are equal; symmetric in its arguments.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the row proportional to the shorter string.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	cur := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		cur[0] = j
		bj := rb[j-1]
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == bj {
				cost = 0
			}
			cur[i] = min(cur[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(ra)]
}
