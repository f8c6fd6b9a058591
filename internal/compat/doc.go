// Package compat builds the undirected compatibility graph over
// middle-components.
//
// An edge (m1, m2) exists iff both middles occur in the legal vocabulary of
// at least one context record. What "legal vocabulary" means depends on the
// interpretation mode, and the mode is a required parameter with no default:
// STRICT takes exactly the middles literally present in the record (the
// canonical reading), UNION takes the union across the record's auxiliary
// matched set (kept only for regression comparison against known-flawed
// historical results). Both modes run through the same algorithm,
// parameterized — the code path is never forked per mode.
//
// Nodes are kept in a stable string-id arena with integer indexes inside, so
// graph algorithms stay simple and output is serialization-friendly.
// Connected components come from union-find; degrees from adjacency lists.
//
// A few universal-connector middles otherwise collapse everything into one
// giant component and mask finer structure, so nodes above a configured
// degree percentile are reported as hubs and a second, hub-excluded
// component view is always available alongside the raw one.
package compat
