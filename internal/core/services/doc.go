// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond the
// metric, alignment, and loading internals.
package services
