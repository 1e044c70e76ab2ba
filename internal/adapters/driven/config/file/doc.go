// Package file provides file-based configuration persistence.
//
// Configuration lives in a TOML file under ~/.refscore by default.
// Nested tables are flattened to dot-notation keys, so callers address
// values as "scorer.url" or "metrics.rouge". LoadSettings resolves the
// stored values against the built-in defaults and validates ranges.
package file
