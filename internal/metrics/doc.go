// Package metrics implements the text-similarity suite: character edit
// distance, ROUGE-L F, and page-level BLEU, plus the registry declaring
// each metric family's report column and required alignment strategy.
//
// All scoring functions are pure (reference, hypothesis) -> score over
// pre-normalised text. The semantic metric has no kernel here; it is an
// external scorer consumed through a driven port and appears only as a
// registry entry.
package metrics
