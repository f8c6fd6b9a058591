package token

import "fmt"

// Mode selects the interpretation of a record's legal vocabulary.
//
// The two modes share one algorithm everywhere they appear; they are never
// forked into separate code paths. The zero value is deliberately invalid:
// historically the two interpretations silently shared one name, and the
// wrong one produced misleadingly trivial results.
type Mode int

const (
	// ModeInvalid is the zero value. Any API receiving it must reject it.
	ModeInvalid Mode = iota

	// ModeUnion defines a record's legal vocabulary as the union of middles
	// across its auxiliary matched-record set. Retained only for regression
	// comparison against known-flawed historical results.
	ModeUnion

	// ModeStrict defines a record's legal vocabulary as exactly the middles
	// literally present in that one record. This is canonical.
	ModeStrict
)

// Validate returns an error unless the mode is one of the two defined
// interpretations. Callers must validate before computing anything
// mode-dependent.
func (m Mode) Validate() error {
	switch m {
	case ModeUnion, ModeStrict:
		return nil
	default:
		return fmt.Errorf("interpretation mode is required and was not set (got %d)", int(m))
	}
}

func (m Mode) String() string {
	switch m {
	case ModeUnion:
		return "union"
	case ModeStrict:
		return "strict"
	default:
		return fmt.Sprintf("invalid(%d)", int(m))
	}
}
