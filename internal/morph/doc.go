// Package morph implements deterministic morphological decomposition of
// corpus tokens into (prefix, middle, suffix).
//
// Decomposition is a pure function of the token text and a frozen rule
// table. A rule fires only when both a prefix and a suffix from the closed
// inventories match without overlapping; tokens matching only one affix stay
// atomic, with the whole text as the middle. Matching is longest-first on
// the prefix, then longest-first on the suffix.
//
// A token fully consumed by prefix+suffix yields an EMPTY middle, which is a
// distinct, meaningful outcome (such tokens are middle-less and always legal
// in survivor computation). Damaged tokens carrying wildcard markers yield
// an UNRESOLVED decomposition that downstream stages count rather than
// crash on. Only empty input is a hard error.
package morph
