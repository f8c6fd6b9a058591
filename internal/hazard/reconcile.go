package hazard

import (
	"fmt"
	"log/slog"
)

// Reconciliation is the mandatory per-run comparison of the curated
// inventory against corpus evidence. Downstream reporting must not consume
// hazard results unless Reconcile returned it without error.
type Reconciliation struct {
	Findings []Finding `json:"findings"`

	// Violated is the count of declared transitions observed in the corpus.
	// Nonzero Violated always coincides with Reconcile returning a
	// ConfigurationDriftError.
	Violated        int `json:"violated"`
	ConfirmedAbsent int `json:"confirmed_absent"`
	Untestable      int `json:"untestable"`
}

// Reconcile classifies every declared forbidden transition against the
// evidence. Each declaration lands in exactly one status; none are skipped.
//
// Any VIOLATED finding makes the whole reconciliation a hard
// ConfigurationDriftError carrying the full diff. The partially built
// Reconciliation is still returned alongside the error so the diff can be
// reported, but it must not feed further analysis.
func Reconcile(inventory []Declared, ev *Evidence, params ScanParams) (*Reconciliation, error) {
	if err := validateInventory(inventory); err != nil {
		return nil, err
	}

	declared := make(map[Pair]bool, len(inventory))
	for _, d := range inventory {
		declared[Pair{Source: d.Source, Target: d.Target}] = true
	}

	rec := &Reconciliation{Findings: make([]Finding, 0, len(inventory))}
	for _, d := range inventory {
		p := Pair{Source: d.Source, Target: d.Target}
		f := Finding{
			Declared:             d,
			Forward:              ev.Count(p),
			Reverse:              ev.Count(p.Reverse()),
			RedundantWithReverse: declared[p.Reverse()],
		}
		f.Asymmetric = (f.Forward == 0 && f.Reverse > 0) || (f.Forward > 0 && f.Reverse == 0)
		f.KernelAdjacent = params.Kernel[d.Source] || params.Kernel[d.Target]
		for _, occ := range ev.Occurrences(p) {
			if occ.KernelAdjacent {
				f.KernelAdjacent = true
			}
			f.Positions = append(f.Positions, occ.Index)
		}

		switch {
		case f.Forward > 0:
			f.Status = StatusViolated
			rec.Violated++
		case ev.TokenCount(d.Source) == 0 || ev.TokenCount(d.Target) == 0:
			f.Status = StatusUntestable
			f.Positions = nil
			rec.Untestable++
		default:
			f.Status = StatusConfirmedAbsent
			rec.ConfirmedAbsent++
		}
		rec.Findings = append(rec.Findings, f)
	}

	slog.Info("hazard reconciliation complete",
		"declared", len(inventory),
		"confirmed_absent", rec.ConfirmedAbsent,
		"violated", rec.Violated,
		"untestable", rec.Untestable)

	if rec.Violated > 0 {
		return rec, NewDriftError(rec)
	}
	return rec, nil
}

func validateInventory(inventory []Declared) error {
	seen := make(map[Pair]bool, len(inventory))
	for i, d := range inventory {
		if d.Source == "" || d.Target == "" {
			return fmt.Errorf("inventory entry %d: source and target are required", i)
		}
		if !ValidCategories[d.Category] {
			return fmt.Errorf("inventory entry %d (%s -> %s): unknown hazard category %q",
				i, d.Source, d.Target, d.Category)
		}
		p := Pair{Source: d.Source, Target: d.Target}
		if seen[p] {
			return fmt.Errorf("inventory entry %d: duplicate declaration %s -> %s", i, d.Source, d.Target)
		}
		seen[p] = true
	}
	return nil
}
