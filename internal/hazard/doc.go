// Package hazard enumerates token transitions across the ordered corpus and
// reconciles them against the curated forbidden-transition inventory.
//
// The curated inventory and the corpus-derived evidence are two independent
// artifacts. Neither is ground truth: the inventory is external
// configuration, the evidence is data, and the two have materially diverged
// before. Every run therefore reconciles them explicitly, and the
// reconciliation is a first-class output — a declared transition observed in
// the corpus is a hard ConfigurationDriftError with a diff, never a silent
// skip. Which side is authoritative is deliberately left unresolved; the run
// surfaces the divergence instead of electing a winner.
//
// Classification of each declared transition:
//   - CONFIRMED_ABSENT: forward count is zero, as declared, with both
//     endpoint tokens attested in the corpus.
//   - VIOLATED: forward count is positive despite the declaration.
//   - UNTESTABLE: an endpoint token never occurs, so absence is vacuous.
//
// Hazard categories come from the inventory only; the scanner never infers
// them from data.
package hazard
