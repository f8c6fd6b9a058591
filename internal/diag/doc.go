// Package diag accumulates the mandatory per-run diagnostics summary.
//
// Soft findings (unresolved decompositions, unknown classifications,
// low-confidence statistics) accumulate here instead of failing the run.
// The summary must precede any statistical conclusion in downstream
// reports, so data defects cannot be mistaken for findings. Hard errors do
// not pass through this package; they abort their stage directly.
package diag
