package metrics

// rougeBeta2 weights recall above precision in the ROUGE-L F score.
const rougeBeta2 = 1.2 * 1.2

// RougeL computes the ROUGE-L F score over whitespace tokens:
// precision = LCS/|hyp|, recall = LCS/|ref|,
// F = (1+β²)·P·R / (R + β²·P) with β² = 1.2².
// Returns 0.0 when either token sequence is empty; 1.0 for equal
// nonempty sequences.
func RougeL(ref, hyp string) float64 {
	refTokens := tokenize(ref)
	hypTokens := tokenize(hyp)
	if len(refTokens) == 0 || len(hypTokens) == 0 {
		return 0.0
	}

	lcs := lcsLength(refTokens, hypTokens)
	prec := float64(lcs) / float64(len(hypTokens))
	rec := float64(lcs) / float64(len(refTokens))
	if prec+rec == 0 {
		return 0.0
	}
	return (1 + rougeBeta2) * prec * rec / (rec + rougeBeta2*prec)
}

// lcsLength computes the longest-common-subsequence length with O(n·m)
// time and rolling rows sized by the shorter sequence.
func lcsLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		ai := a[i-1]
		cur[0] = 0
		for j := 1; j <= len(b); j++ {
			if ai == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
