package token

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Token is a minimal textual unit with position metadata.
// Tokens are immutable once loaded; analysis never mutates them.
type Token struct {
	Text     string `json:"text"`
	Folio    string `json:"folio"`
	Line     int    `json:"line"`
	Position int    `json:"position"`
	Track    string `json:"track"`
}

// Key returns a stable identity string for ordering diagnostics.
func (t Token) Key() string {
	return fmt.Sprintf("%s:%d:%d", t.Folio, t.Line, t.Position)
}

// Wildcard markers used by transcribers for damaged or uncertain glyphs.
// A token containing any of these decomposes to UNRESOLVED rather than
// failing.
const (
	WildcardDamaged   = "*"
	WildcardUncertain = "?"
)

// HasWildcard reports whether the token text contains a damage marker.
func HasWildcard(text string) bool {
	return strings.ContainsAny(text, WildcardDamaged+WildcardUncertain)
}

// Normalize returns the NFC form of a token string. All text entering the
// corpus passes through here so equal glyph sequences compare equal
// regardless of how the transcription encoded them.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// ContextRecord is a bounded corpus unit (one structural line) whose token
// contents define a local legality scope.
type ContextRecord struct {
	ID     string  `json:"id"`
	Folio  string  `json:"folio"`
	Line   int     `json:"line"`
	Tokens []Token `json:"tokens"`
}

// TokenTexts returns the token strings of the record in position order.
func (r ContextRecord) TokenTexts() []string {
	out := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		out[i] = t.Text
	}
	return out
}
