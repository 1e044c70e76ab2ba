// Package align maps pages between a reference document and a candidate
// document. Two independent strategies exist: exact pairing by the
// integer Order key (lexical metrics) and fuzzy title-key matching (the
// semantic metric). Each metric family declares which strategy it needs;
// nothing here mixes the two.
package align
