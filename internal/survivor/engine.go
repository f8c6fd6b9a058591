package survivor

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vellumlabs/vellum/internal/compat"
	"github.com/vellumlabs/vellum/internal/token"
)

// Table is the full survivor output for one mode: one set per record in
// canonical record order, plus the derived summaries.
type Table struct {
	Mode token.Mode `json:"mode"`
	Sets []Set      `json:"sets"`
}

// ComputeAll computes survivor sets for every record, sharded across
// workers. Records are independent, so shards merge by concatenation;
// canonical record order is preserved by indexed writes. Cancelling ctx
// stops scheduling remaining records.
func ComputeAll(ctx context.Context, c *token.Corpus, vocabs map[string]compat.Vocabulary, profiles []Profile, mode token.Mode) (*Table, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	records := c.Records()
	sets := make([]Set, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sets[i] = Compute(r.ID, vocabs[r.ID], profiles)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("survivor sets computed", "mode", mode.String(), "records", len(sets))
	return &Table{Mode: mode, Sets: sets}, nil
}

// PatternCount returns the number of distinct survivor patterns across
// records. Union mode historically collapses to a handful; strict mode
// discriminates.
func (t *Table) PatternCount() int {
	seen := make(map[string]bool, len(t.Sets))
	for _, s := range t.Sets {
		seen[s.Pattern()] = true
	}
	return len(seen)
}

// AlwaysSurvive returns the class IDs present in every record's survivor
// set (the "always-survive core"), sorted.
func (t *Table) AlwaysSurvive() []string {
	if len(t.Sets) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, s := range t.Sets {
		for _, c := range s.Classes {
			counts[c]++
		}
	}
	var out []string
	for c, n := range counts {
		if n == len(t.Sets) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// CoSurvival is the aggregate pairwise co-survival matrix: Jaccard
// similarity of per-class survivor-presence vectors across all records.
type CoSurvival struct {
	ClassIDs []string    `json:"class_ids"`
	Jaccard  [][]float64 `json:"jaccard"`
}

// CoSurvivalMatrix computes the matrix over the classes in profiles, in
// profile order. The Jaccard of two classes that never survive anywhere is
// defined as 0.
func (t *Table) CoSurvivalMatrix(profiles []Profile) *CoSurvival {
	ids := make([]string, len(profiles))
	presence := make([][]bool, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ClassID
		presence[i] = make([]bool, len(t.Sets))
		for j, s := range t.Sets {
			presence[i][j] = s.Contains(p.ClassID)
		}
	}
	m := &CoSurvival{ClassIDs: ids, Jaccard: make([][]float64, len(ids))}
	for i := range ids {
		m.Jaccard[i] = make([]float64, len(ids))
		for j := range ids {
			m.Jaccard[i][j] = jaccard(presence[i], presence[j])
		}
	}
	return m
}

func jaccard(a, b []bool) float64 {
	both, either := 0, 0
	for k := range a {
		switch {
		case a[k] && b[k]:
			both++
			either++
		case a[k] || b[k]:
			either++
		}
	}
	if either == 0 {
		return 0
	}
	return float64(both) / float64(either)
}

// EquivalenceClass groups classes sharing an identical survivor pattern
// across every record.
type EquivalenceClass struct {
	Pattern string   `json:"pattern"` // presence bits across records, in record order
	Classes []string `json:"classes"`
}

// EquivalenceClasses partitions the classes by survivor-presence vector.
// Output is sorted by first class ID for determinism.
func (t *Table) EquivalenceClasses(profiles []Profile) []EquivalenceClass {
	groups := make(map[string][]string)
	for _, p := range profiles {
		bits := make([]byte, len(t.Sets))
		for j, s := range t.Sets {
			if s.Contains(p.ClassID) {
				bits[j] = '1'
			} else {
				bits[j] = '0'
			}
		}
		key := string(bits)
		groups[key] = append(groups[key], p.ClassID)
	}
	out := make([]EquivalenceClass, 0, len(groups))
	for pattern, classes := range groups {
		sort.Strings(classes)
		out = append(out, EquivalenceClass{Pattern: pattern, Classes: classes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Classes[0] < out[j].Classes[0] })
	return out
}
