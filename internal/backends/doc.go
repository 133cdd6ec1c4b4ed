// Package backends owns the execution boundary that turns a workflow into
// raw outcome counts.
//
// Ownership boundary:
// - backend capability descriptor
// - backend execution interface
// - name -> constructor registry used for dispatch
package backends
