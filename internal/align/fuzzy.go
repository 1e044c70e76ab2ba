package align

import (
	"math"
	"sort"
	"strings"
)

// Similarity scores two strings on the 0-100 scale used by the fuzzy
// threshold: the better of the plain indel ratio and the token-sorted
// indel ratio, so word order alone never sinks a title match.
func Similarity(a, b string) int {
	score := indelRatio(a, b)
	if sorted := indelRatio(sortTokens(a), sortTokens(b)); sorted > score {
		score = sorted
	}
	return score
}

// indelRatio is 100 × 2·LCS(a,b) / (|a|+|b|) over runes; 100 when both
// strings are empty.
func indelRatio(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 100
	}
	lcs := lcsRunes(ra, rb)
	return int(math.Round(200 * float64(lcs) / float64(len(ra)+len(rb))))
}

// sortTokens rebuilds the string from its whitespace tokens in sorted
// order.
func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcsRunes computes LCS length with rolling rows sized by the shorter
// sequence.
func lcsRunes(a, b []rune) int {
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
