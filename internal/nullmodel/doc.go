// Package nullmodel validates structural claims against randomized
// surrogate baselines.
//
// A surrogate is a randomized dataset preserving declared statistical
// properties of the original (token frequencies for sequence shuffles,
// record sizes and entity multiset for association permutations). The
// observed statistic is ranked against the statistic recomputed on N
// surrogates; the empirical rank and p-value quantify how surprising the
// observation is under the null.
//
// Two hard contracts:
//   - A surrogate failing its preservation invariant aborts the whole test
//     with SurrogateGenerationError. A misleading p-value is worse than no
//     p-value.
//   - Every result carries a non-null effect size next to its p-value.
//     Construction refuses results without one.
//
// Trials are independent and run in parallel with deterministic per-trial
// seeds derived from the base seed, so results are reproducible at any
// parallelism. Cancelling the context stops scheduling further trials;
// trials already completed stay in the (flagged) partial result.
package nullmodel
