// Package testutil provides deterministic fixtures for analysis tests.
//
// Fixture corpora are defined declaratively in YAML under testdata/ and
// expand to in-memory token sources, rule tables, class registries, and
// hazard inventories. Everything is deterministic so fixtures can back
// golden-file regression tests.
package testutil
