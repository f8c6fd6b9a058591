package hazard

import (
	"sort"

	"github.com/vellumlabs/vellum/internal/token"
)

// Pair is an ordered (source, target) token pair.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Reverse returns the inverse ordered pair.
func (p Pair) Reverse() Pair { return Pair{Source: p.Target, Target: p.Source} }

// Occurrence is one observation of an adjacent pair in the stream.
type Occurrence struct {
	Index          int  `json:"index"` // global stream index of the source token
	KernelAdjacent bool `json:"kernel_adjacent"`
}

// Evidence is the corpus-derived transition table: every adjacent ordered
// pair with its occurrences, plus per-token occurrence counts. Built once
// per run from the full ordered corpus and immutable afterwards.
type Evidence struct {
	pairs      map[Pair][]Occurrence
	tokenCount map[string]int
}

// ScanParams configures the adjacency scan.
type ScanParams struct {
	// Kernel is the fixed kernel-token set, supplied as configuration.
	Kernel map[string]bool

	// KernelWindow is the token-distance window for kernel adjacency: a
	// pair occurrence is kernel-adjacent when a kernel token occurs within
	// this many stream positions of either endpoint. Zero restricts kernel
	// adjacency to the endpoints themselves.
	KernelWindow int
}

// Scan enumerates adjacent (source, target) pairs across the full ordered
// corpus. Adjacency never crosses a context-record boundary.
func Scan(c *token.Corpus, params ScanParams) *Evidence {
	ev := &Evidence{
		pairs:      make(map[Pair][]Occurrence),
		tokenCount: make(map[string]int),
	}
	stream := c.Tokens()
	for _, t := range stream {
		ev.tokenCount[t.Text]++
	}
	c.AdjacentPairs(func(i int, src, dst token.Token) {
		p := Pair{Source: src.Text, Target: dst.Text}
		ev.pairs[p] = append(ev.pairs[p], Occurrence{
			Index:          i,
			KernelAdjacent: kernelAdjacent(stream, i, params),
		})
	})
	return ev
}

// kernelAdjacent checks the pair at stream index i (source) and i+1
// (target) against the kernel set and window.
func kernelAdjacent(stream []token.Token, i int, params ScanParams) bool {
	if len(params.Kernel) == 0 {
		return false
	}
	lo, hi := i-params.KernelWindow, i+1+params.KernelWindow
	if lo < 0 {
		lo = 0
	}
	if hi > len(stream)-1 {
		hi = len(stream) - 1
	}
	for j := lo; j <= hi; j++ {
		if params.Kernel[stream[j].Text] {
			return true
		}
	}
	return false
}

// Count returns the observed adjacency count for an ordered pair.
func (e *Evidence) Count(p Pair) int { return len(e.pairs[p]) }

// Occurrences returns the observations for an ordered pair in stream order.
func (e *Evidence) Occurrences(p Pair) []Occurrence {
	occ := e.pairs[p]
	out := make([]Occurrence, len(occ))
	copy(out, occ)
	return out
}

// TokenCount returns how many times a token text occurs anywhere in the
// corpus.
func (e *Evidence) TokenCount(text string) int { return e.tokenCount[text] }

// Pairs returns every observed ordered pair in deterministic order.
func (e *Evidence) Pairs() []Pair {
	out := make([]Pair, 0, len(e.pairs))
	for p := range e.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// Asymmetric reports whether a pair is strictly asymmetric: one direction
// unobserved, the other attested.
func (e *Evidence) Asymmetric(p Pair) bool {
	f, r := e.Count(p), e.Count(p.Reverse())
	return (f == 0 && r > 0) || (f > 0 && r == 0)
}
