package diag

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Summary is the per-run diagnostics record. One Summary is created at run
// start and threaded through every stage; it is the first artifact of any
// report.
type Summary struct {
	RunID string `json:"run_id"`

	// Unresolved counts damaged tokens recorded as UNRESOLVED at
	// decomposition, per token text.
	Unresolved map[string]int `json:"unresolved"`

	// Unknown counts tokens with no class mapping, per token text. These
	// are excluded from class-level aggregates but never dropped.
	Unknown map[string]int `json:"unknown"`

	// LowConfidence counts validator results flagged below the documented
	// trial minimum, per test name.
	LowConfidence []string `json:"low_confidence"`

	// Warnings collects free-form soft findings in arrival order.
	Warnings []string `json:"warnings"`
}

// NewSummary starts an empty summary with a fresh run ID.
func NewSummary() *Summary {
	return &Summary{
		RunID:      uuid.NewString(),
		Unresolved: make(map[string]int),
		Unknown:    make(map[string]int),
	}
}

// AddUnresolved records a damaged token.
func (s *Summary) AddUnresolved(tokenText string) { s.Unresolved[tokenText]++ }

// AddUnknown records a token with no class mapping.
func (s *Summary) AddUnknown(tokenText string) { s.Unknown[tokenText]++ }

// AddLowConfidence records a statistical result below the documented
// minimum power.
func (s *Summary) AddLowConfidence(testName string) {
	s.LowConfidence = append(s.LowConfidence, testName)
}

// AddWarning records a soft finding.
func (s *Summary) AddWarning(msg string) { s.Warnings = append(s.Warnings, msg) }

// UnresolvedCount returns the total unresolved occurrences.
func (s *Summary) UnresolvedCount() int { return total(s.Unresolved) }

// UnknownCount returns the total unknown-class occurrences.
func (s *Summary) UnknownCount() int { return total(s.Unknown) }

func total(m map[string]int) int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// UnknownTokens returns the distinct unknown token texts, sorted, so
// reports can list them deterministically.
func (s *Summary) UnknownTokens() []string {
	out := make([]string, 0, len(s.Unknown))
	for t := range s.Unknown {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Log emits the summary through slog. Called before any statistical output
// is reported.
func (s *Summary) Log() {
	slog.Info("run diagnostics",
		"run_id", s.RunID,
		"unresolved_tokens", s.UnresolvedCount(),
		"unknown_tokens", s.UnknownCount(),
		"low_confidence_results", len(s.LowConfidence),
		"warnings", len(s.Warnings))
}
