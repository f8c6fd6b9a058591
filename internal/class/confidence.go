package class

import (
	"errors"
	"fmt"
)

// Confidence is the auditable state of a structural claim. It replaces
// free-text tier labels with a closed state machine so a claim's standing
// can only change through an explicit transition.
type Confidence string

const (
	ConfidenceProposed  Confidence = "PROPOSED"
	ConfidenceValidated Confidence = "VALIDATED"
	ConfidenceLocked    Confidence = "LOCKED"
	ConfidenceRefuted   Confidence = "REFUTED"
)

// allowedTransitions defines the complete state machine:
// PROPOSED -> VALIDATED -> LOCKED, and any non-terminal state -> REFUTED.
var allowedTransitions = map[Confidence][]Confidence{
	ConfidenceProposed:  {ConfidenceValidated, ConfidenceRefuted},
	ConfidenceValidated: {ConfidenceLocked, ConfidenceRefuted},
	ConfidenceLocked:    {},
	ConfidenceRefuted:   {},
}

// InvalidTransitionError rejects a confidence move outside the state
// machine.
type InvalidTransitionError struct {
	Claim string
	From  Confidence
	To    Confidence
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("claim %s: invalid confidence transition %s -> %s", e.Claim, e.From, e.To)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// Claim is a structural claim with tracked confidence. The transition log
// records every accepted move in order.
type Claim struct {
	ID         string       `json:"id"`
	Statement  string       `json:"statement"`
	Confidence Confidence   `json:"confidence"`
	Log        []Confidence `json:"log"`
}

// NewClaim starts a claim in PROPOSED.
func NewClaim(id, statement string) *Claim {
	return &Claim{
		ID:         id,
		Statement:  statement,
		Confidence: ConfidenceProposed,
		Log:        []Confidence{ConfidenceProposed},
	}
}

// Transition moves the claim to a new confidence state, or rejects the move.
func (c *Claim) Transition(to Confidence) error {
	for _, next := range allowedTransitions[c.Confidence] {
		if next == to {
			c.Confidence = to
			c.Log = append(c.Log, to)
			return nil
		}
	}
	return &InvalidTransitionError{Claim: c.ID, From: c.Confidence, To: to}
}

// Terminal reports whether the claim can no longer change state.
func (c *Claim) Terminal() bool {
	return len(allowedTransitions[c.Confidence]) == 0
}
