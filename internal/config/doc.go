// Package config loads the frozen per-run configuration from CUE.
//
// Configuration covers everything the core consumes but never derives:
// the closed prefix/suffix/kernel vocabularies, the empirically discovered
// instruction-class table, and the curated forbidden-transition inventory.
// Classes are discovered externally and frozen here for the run; the core
// never invents or extends them.
//
// A Config is loaded once per run, validated eagerly, and passed explicitly
// to every component. There are no configuration singletons and nothing is
// reloaded mid-run.
//
// Loading uses the CUE SDK's Go API directly (not a CLI subprocess), with
// fail-fast and collect-all error modes.
package config
