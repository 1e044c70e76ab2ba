// Package domain defines the core business entities for refscore.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A structured document of ordered pages
//   - Page: An addressable section with a title, ordering key, and chunks
//   - Chunk: A sub-unit of page content carrying displayable text
//   - ScoreRecord: One (source, page title, model) row of the report
//   - Run: One recorded evaluation run in the local ledger
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
