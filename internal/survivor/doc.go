// Package survivor computes, per context record and interpretation mode,
// which instruction classes remain legal.
//
// A class survives a record when some member token's middle is in the
// record's legal vocabulary, or when the class contains an atomic
// (middle-less) token, which is always legal. Under strict mode this makes
// survivor sets monotonic in the vocabulary: growing a record's vocabulary
// can only grow its survivor set.
//
// Per-record computation is independent across records, so the engine
// shards it across workers and merges by concatenation in record order.
// Beyond the raw sets, the engine derives a pairwise co-survival matrix
// (Jaccard over per-class presence vectors) and equivalence classes of
// classes sharing one survivor pattern across every record.
//
// Both modes must be runnable over the same corpus: union mode has
// historically collapsed to a handful of near-universal patterns while
// strict mode yields orders of magnitude more discriminating ones, and that
// divergence has to be reproducible deterministically from {mode, corpus}
// alone.
package survivor
