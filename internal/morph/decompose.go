package morph

import (
	"sort"
	"strings"

	"github.com/vellumlabs/vellum/internal/token"
)

// State classifies the outcome of a decomposition.
type State int

const (
	// StateResolved means the token split cleanly (possibly with no affix
	// match at all, leaving the whole token as the middle).
	StateResolved State = iota + 1

	// StateUnresolved means the token carried a wildcard marker for damaged
	// or uncertain glyphs. No split is recorded.
	StateUnresolved
)

func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Decomposition is the deterministic split of one token.
//
// Prefix and Suffix are "" when no rule matched (None). Middle is "" only
// for a resolved token fully consumed by its affixes; use EmptyMiddle to
// distinguish that from an unresolved token, which records no middle at all.
type Decomposition struct {
	Token  string `json:"token"`
	Prefix string `json:"prefix,omitempty"`
	Middle string `json:"middle"`
	Suffix string `json:"suffix,omitempty"`
	State  State  `json:"state"`
}

// EmptyMiddle reports whether the token was fully consumed by prefix+suffix.
// Middle-less tokens are atomic for legality purposes.
func (d Decomposition) EmptyMiddle() bool {
	return d.State == StateResolved && d.Middle == ""
}

// Resolved reports whether the decomposition carries a usable split.
func (d Decomposition) Resolved() bool { return d.State == StateResolved }

// Rules is a frozen decomposition rule table built from the closed prefix
// and suffix vocabularies. Build once per run; Rules has no mutable state.
type Rules struct {
	prefixes []string // longest first
	suffixes []string // longest first
}

// NewRules builds a rule table. Inventories are copied and ordered longest
// first so matching is longest-match deterministic regardless of input
// order. Empty entries are dropped.
func NewRules(prefixes, suffixes []string) *Rules {
	return &Rules{
		prefixes: orderedInventory(prefixes),
		suffixes: orderedInventory(suffixes),
	}
}

func orderedInventory(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = token.Normalize(s); s != "" {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Decompose splits one token deterministically. Two calls on the same text
// always return identical results.
//
// Outcomes:
//   - empty or all-whitespace text: *InvalidTokenError
//   - wildcard marker present: StateUnresolved, no split recorded
//   - both a prefix and a suffix match without overlap: split, middle may
//     be EMPTY
//   - anything else: no rule match, whole token is the middle
func (r *Rules) Decompose(text string) (Decomposition, error) {
	if strings.TrimSpace(text) == "" {
		return Decomposition{}, &InvalidTokenError{Text: text}
	}
	text = token.Normalize(text)
	if token.HasWildcard(text) {
		return Decomposition{Token: text, State: StateUnresolved}, nil
	}
	for _, p := range r.prefixes {
		if !strings.HasPrefix(text, p) {
			continue
		}
		rest := text[len(p):]
		for _, s := range r.suffixes {
			if len(s) <= len(rest) && strings.HasSuffix(rest, s) {
				return Decomposition{
					Token:  text,
					Prefix: p,
					Middle: rest[:len(rest)-len(s)],
					Suffix: s,
					State:  StateResolved,
				}, nil
			}
		}
	}
	return Decomposition{Token: text, Middle: text, State: StateResolved}, nil
}

// DecomposeAll maps every distinct token text in the slice to its
// decomposition. Unresolved outcomes are included; the caller decides how
// to report them. The only possible error is an invalid (empty) token.
func (r *Rules) DecomposeAll(texts []string) (map[string]Decomposition, error) {
	out := make(map[string]Decomposition, len(texts))
	for _, t := range texts {
		key := token.Normalize(t)
		if _, done := out[key]; done {
			continue
		}
		d, err := r.Decompose(t)
		if err != nil {
			return nil, err
		}
		out[key] = d
	}
	return out, nil
}
