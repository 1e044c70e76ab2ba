// Package loader reads document files into the canonical domain model.
// It resolves the accepted key-name aliases in one place and attaches a
// structure-validation verdict to every loaded source, so downstream
// scoring never inspects raw JSON shapes.
package loader
