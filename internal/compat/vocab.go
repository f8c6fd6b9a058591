package compat

import (
	"fmt"
	"sort"

	"github.com/vellumlabs/vellum/internal/morph"
	"github.com/vellumlabs/vellum/internal/token"
)

// Params configures graph construction. Mode and HubPercentile are
// required; Validate rejects unset values rather than defaulting.
type Params struct {
	// Mode selects the legal-vocabulary interpretation. Required.
	Mode token.Mode

	// HubPercentile is the degree percentile (0, 100] above which a node is
	// reported as a hub. Required.
	HubPercentile float64

	// Auxiliary maps record ID to its matched-record set, consulted only in
	// union mode. The matching itself is external input: the engine never
	// infers which records match.
	Auxiliary map[string][]string
}

// Validate rejects incomplete parameters.
func (p Params) Validate() error {
	if err := p.Mode.Validate(); err != nil {
		return err
	}
	if p.HubPercentile <= 0 || p.HubPercentile > 100 {
		return fmt.Errorf("hub percentile is required and must be in (0, 100] (got %v)", p.HubPercentile)
	}
	return nil
}

// Vocabulary is a legal middle-vocabulary for one record.
type Vocabulary map[string]bool

// Sorted returns the vocabulary members in lexical order.
func (v Vocabulary) Sorted() []string {
	out := make([]string, 0, len(v))
	for m := range v {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// LegalVocabularies computes the legal vocabulary of every record under the
// given mode. decomps must cover every token text in the corpus (from
// morph.Rules.DecomposeAll). Unresolved tokens and EMPTY middles contribute
// nothing: a vocabulary holds middles only.
//
// One algorithm serves both modes: the strict vocabularies are computed
// first, and union mode folds each record's auxiliary matched set over
// them. The record itself is always part of its own union.
func LegalVocabularies(c *token.Corpus, decomps map[string]morph.Decomposition, p Params) (map[string]Vocabulary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	strict := make(map[string]Vocabulary, len(c.Records()))
	for _, r := range c.Records() {
		v := make(Vocabulary)
		for _, t := range r.Tokens {
			d, ok := decomps[t.Text]
			if !ok || !d.Resolved() || d.EmptyMiddle() {
				continue
			}
			v[d.Middle] = true
		}
		strict[r.ID] = v
	}
	if p.Mode == token.ModeStrict {
		return strict, nil
	}

	union := make(map[string]Vocabulary, len(strict))
	for _, r := range c.Records() {
		v := make(Vocabulary)
		for m := range strict[r.ID] {
			v[m] = true
		}
		for _, matched := range p.Auxiliary[r.ID] {
			aux, ok := strict[matched]
			if !ok {
				return nil, fmt.Errorf("record %s: auxiliary matched record %s not in corpus", r.ID, matched)
			}
			for m := range aux {
				v[m] = true
			}
		}
		union[r.ID] = v
	}
	return union, nil
}
