package metrics

import "strings"

// tokenize splits text on whitespace. Empty input yields no tokens.
func tokenize(text string) []string {
	return strings.Fields(text)
}

// ngramCounts counts the order-n token n-grams. Tokens never contain
// whitespace, so a space join is a collision-free map key.
func ngramCounts(tokens []string, n int) map[string]int {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	counts := make(map[string]int, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}
