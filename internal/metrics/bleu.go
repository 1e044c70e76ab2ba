package metrics

import "math"

const (
	// bleuMaxN is the highest n-gram order scored.
	bleuMaxN = 4

	// bleuEpsilon smooths clipped precisions so no order contributes
	// log(0). The smoothing applies uniformly: an order with no
	// hypothesis n-grams at all scores (0+ε)/(0+ε) = 1, which keeps
	// identity at 1.0 for texts shorter than bleuMaxN tokens.
	bleuEpsilon = 1e-9
)

// Bleu computes page-level BLEU up to 4-grams over whitespace tokens:
// clipped n-gram precision per order with ε smoothing, uniform 1/4 log
// weights, and a brevity penalty of 1 when the hypothesis is longer than
// the reference, exp(1 − |ref|/|hyp|) otherwise.
// Returns 0.0 when either token sequence is empty; 1.0 for equal
// nonempty sequences.
func Bleu(ref, hyp string) float64 {
	refTokens := tokenize(ref)
	hypTokens := tokenize(hyp)
	if len(refTokens) == 0 || len(hypTokens) == 0 {
		return 0.0
	}

	logSum := 0.0
	for n := 1; n <= bleuMaxN; n++ {
		refCounts := ngramCounts(refTokens, n)
		hypCounts := ngramCounts(hypTokens, n)

		match, total := 0, 0
		for ngram, count := range hypCounts {
			total += count
			match += min(count, refCounts[ngram])
		}

		precision := (float64(match) + bleuEpsilon) / (float64(total) + bleuEpsilon)
		logSum += math.Log(precision) / bleuMaxN
	}

	hypLen := float64(len(hypTokens))
	refLen := float64(len(refTokens))
	brevity := 1.0
	if hypLen <= refLen {
		brevity = math.Exp(1 - refLen/hypLen)
	}

	return brevity * math.Exp(logSum)
}
