// Package token provides the canonical corpus data model for vellum.
//
// This package contains type definitions and normalization only. All other
// internal packages import token; token imports nothing internal. This keeps
// the data model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Tokens are immutable value types; a corpus is loaded once per run and
//     treated as read-only for the remainder of the run.
//   - All ordering uses (folio, line, position); never load order or
//     wall-clock time.
//   - Interpretation Mode has no valid zero value. Every API taking a Mode
//     must validate it, so the union/strict distinction can never default
//     silently.
//   - Token text is NFC-normalized at the corpus boundary so that visually
//     identical transcriptions compare equal.
package token
