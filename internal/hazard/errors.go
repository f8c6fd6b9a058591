package hazard

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationDriftError reports that the curated inventory and the corpus
// evidence diverged beyond tolerance: at least one declared forbidden
// transition was observed. It halts hazard-report generation; silently
// proceeding has produced entire branches of invalid downstream conclusions
// before.
type ConfigurationDriftError struct {
	// Violations holds the VIOLATED findings, with observed counts and
	// stream positions, forming the explicit diff between the artifacts.
	Violations []Finding
}

func (e *ConfigurationDriftError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "configuration drift: %d declared forbidden transition(s) observed in corpus:", len(e.Violations))
	for _, f := range e.Violations {
		fmt.Fprintf(&b, "\n  %s -> %s [%s]: forward=%d reverse=%d positions=%v",
			f.Declared.Source, f.Declared.Target, f.Declared.Category,
			f.Forward, f.Reverse, f.Positions)
	}
	return b.String()
}

// NewDriftError builds the drift error from a reconciliation's VIOLATED
// findings.
func NewDriftError(rec *Reconciliation) *ConfigurationDriftError {
	e := &ConfigurationDriftError{}
	for _, f := range rec.Findings {
		if f.Status == StatusViolated {
			e.Violations = append(e.Violations, f)
		}
	}
	return e
}

// IsDrift reports whether err is a ConfigurationDriftError.
// Uses errors.As to handle wrapped errors.
func IsDrift(err error) bool {
	var cde *ConfigurationDriftError
	return errors.As(err, &cde)
}
