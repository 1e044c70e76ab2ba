// Package csvfile persists score reports as CSV tables with atomic
// full-file replacement. Reads are tolerant: missing files, unparseable
// files, and column drift all degrade to empty or null values instead of
// failing the run.
package csvfile
