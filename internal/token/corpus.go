package token

import (
	"context"
	"fmt"
	"sort"
)

// TokenSource supplies the ordered token stream for a run. The stream is
// already filtered to one canonical transcriber track upstream; sources do
// not filter.
type TokenSource interface {
	// Tokens returns every token in canonical (folio, line, position) order.
	Tokens(ctx context.Context) ([]Token, error)
}

// MemorySource is a TokenSource over an in-memory slice, used by tests and
// by callers that receive the stream from the external loader directly.
type MemorySource struct {
	items []Token
}

// NewMemorySource copies and canonically orders the given tokens.
func NewMemorySource(tokens []Token) *MemorySource {
	items := make([]Token, len(tokens))
	copy(items, tokens)
	sortTokens(items)
	return &MemorySource{items: items}
}

// Tokens implements TokenSource.
func (s *MemorySource) Tokens(ctx context.Context) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Token, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Corpus is the read-only token universe for one run: the ordered stream
// plus its grouping into context records (one record per folio line).
type Corpus struct {
	tokens  []Token
	records []ContextRecord
}

// BuildCorpus drains a source, normalizes token text to NFC, and groups
// tokens into context records. The result is immutable for the run.
func BuildCorpus(ctx context.Context, src TokenSource) (*Corpus, error) {
	raw, err := src.Tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading token stream: %w", err)
	}
	tokens := make([]Token, len(raw))
	for i, t := range raw {
		t.Text = Normalize(t.Text)
		tokens[i] = t
	}
	sortTokens(tokens)

	var records []ContextRecord
	for _, t := range tokens {
		n := len(records)
		if n == 0 || records[n-1].Folio != t.Folio || records[n-1].Line != t.Line {
			records = append(records, ContextRecord{
				ID:    fmt.Sprintf("%s:%d", t.Folio, t.Line),
				Folio: t.Folio,
				Line:  t.Line,
			})
			n++
		}
		records[n-1].Tokens = append(records[n-1].Tokens, t)
	}
	return &Corpus{tokens: tokens, records: records}, nil
}

// Tokens returns the full ordered stream.
func (c *Corpus) Tokens() []Token { return c.tokens }

// Records returns the context records in canonical order.
func (c *Corpus) Records() []ContextRecord { return c.records }

// Record returns the record with the given ID, or false.
func (c *Corpus) Record(id string) (ContextRecord, bool) {
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return ContextRecord{}, false
}

// AdjacentPairs visits every consecutive (source, target) token pair in the
// ordered corpus. i is the global stream index of src. Adjacency never
// crosses a record boundary: the last token of one line and the first of the
// next are not treated as a transition.
func (c *Corpus) AdjacentPairs(visit func(i int, src, dst Token)) {
	offset := 0
	for _, r := range c.records {
		for j := 0; j+1 < len(r.Tokens); j++ {
			visit(offset+j, r.Tokens[j], r.Tokens[j+1])
		}
		offset += len(r.Tokens)
	}
}

func sortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokenLess(tokens[i], tokens[j])
	})
}

func tokenLess(a, b Token) bool {
	if a.Folio != b.Folio {
		return a.Folio < b.Folio
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Position < b.Position
}
