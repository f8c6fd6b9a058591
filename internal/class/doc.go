// Package class maps token decompositions to instruction classes.
//
// The class inventory is discovered empirically outside the core and frozen
// as run configuration; this package never invents classes. A Registry is
// built once per run from the frozen table and is immutable afterwards.
//
// Tokens absent from the table are assigned Unknown: counted, reported, and
// excluded from class-level aggregates, never silently dropped.
//
// The package also carries the confidence state machine for structural
// claims (PROPOSED -> VALIDATED -> LOCKED, or -> REFUTED). Confidence moves
// only through explicit, auditable transitions.
package class
