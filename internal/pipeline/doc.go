// Package pipeline orchestrates one analysis run end to end.
//
// Data flows strictly downstream: loader -> decomposer -> class assigner ->
// {compatibility graphs, hazard reconciliation} -> survivor engine. Each run
// reloads the corpus and rebuilds every derived structure from scratch;
// nothing is incrementally mutated across runs, so a run shares no state
// with any other run and derived artifacts are immutable once built.
//
// A hard error at any stage aborts the run and blocks downstream stages
// from consuming partial output. Soft findings accumulate into the
// diagnostics summary, which is always populated before any statistical
// artifact.
//
// Clustering and null-model validation consume the run's artifacts through
// their own packages; the pipeline produces the in-memory record tables
// they (and the external reporting layer) read.
package pipeline
