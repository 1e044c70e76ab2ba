// Package textnorm converts raw page and chunk text into the canonical
// comparison forms. The lexical form strips markup for the edit-distance,
// ROUGE-L, and BLEU metrics; the semantic form keeps paragraph structure
// for the external scorer; title keys feed fuzzy alignment only.
package textnorm
