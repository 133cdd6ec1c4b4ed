// Package contracts owns the value types that flow through a run.
//
// Ownership boundary:
// - run configuration and its validation
// - backend-agnostic workflow shape
// - stable result schema and its serialization
// - injected clock and identifier sources
package contracts
