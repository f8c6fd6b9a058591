package cluster

import (
	"fmt"
	"math"
	"sort"
)

// Method selects the clustering algorithm for a sweep.
type Method string

const (
	MethodAgglomerative Method = "agglomerative"
	MethodKMedoids      Method = "kmedoids"
)

// Verdict is the outcome of a clustering sweep.
type Verdict string

const (
	// VerdictClusters means some k produced a partition whose silhouette
	// exceeds the declared threshold.
	VerdictClusters Verdict = "CLUSTERS"

	// VerdictNoStructure means no k cleared the threshold. This is a valid,
	// reportable negative result, not an error: the engine never forces a
	// partition onto structureless data.
	VerdictNoStructure Verdict = "NO_DISCRETE_STRUCTURE"
)

// SweepParams configures a clustering sweep. Threshold is the pre-declared
// silhouette acceptance bound and is required; there is no default.
type SweepParams struct {
	Method    Method
	KMin      int
	KMax      int
	Threshold float64
}

// Validate rejects incomplete sweep parameters.
func (p SweepParams) Validate(n int) error {
	switch p.Method {
	case MethodAgglomerative, MethodKMedoids:
	default:
		return fmt.Errorf("clustering method is required (got %q)", p.Method)
	}
	if p.Threshold <= 0 {
		return fmt.Errorf("silhouette threshold is required and must be > 0 (got %v)", p.Threshold)
	}
	if p.KMin < 2 {
		return fmt.Errorf("k range must start at 2 or above (got %d)", p.KMin)
	}
	if p.KMax < p.KMin {
		return fmt.Errorf("k range is inverted (%d > %d)", p.KMin, p.KMax)
	}
	if p.KMax >= n {
		return fmt.Errorf("k max %d must be below entity count %d", p.KMax, n)
	}
	return nil
}

// Outcome is the result of a sweep: the silhouette per k, plus the accepted
// partition when the verdict is VerdictClusters.
type Outcome struct {
	Verdict    Verdict         `json:"verdict"`
	BestK      int             `json:"best_k,omitempty"`
	Labels     []int           `json:"labels,omitempty"`
	Silhouette float64         `json:"silhouette"`
	PerK       map[int]float64 `json:"per_k"`
}

// Sweep clusters across [KMin, KMax], scores each partition by silhouette,
// and accepts the best only if it exceeds the declared threshold.
func Sweep(m *Matrix, p SweepParams) (*Outcome, error) {
	if err := p.Validate(m.Len()); err != nil {
		return nil, err
	}
	out := &Outcome{PerK: make(map[int]float64), Silhouette: math.Inf(-1)}
	for k := p.KMin; k <= p.KMax; k++ {
		var labels []int
		switch p.Method {
		case MethodAgglomerative:
			labels = Agglomerative(m, k)
		case MethodKMedoids:
			labels = KMedoids(m, k)
		}
		s := Silhouette(m, labels)
		out.PerK[k] = s
		if s > out.Silhouette {
			out.Silhouette = s
			out.BestK = k
			out.Labels = labels
		}
	}
	if out.Silhouette > p.Threshold {
		out.Verdict = VerdictClusters
	} else {
		out.Verdict = VerdictNoStructure
		out.BestK = 0
		out.Labels = nil
	}
	return out, nil
}

// Silhouette computes the mean silhouette coefficient of a partition.
// Singleton clusters contribute 0 for their member, the standard
// convention.
func Silhouette(m *Matrix, labels []int) float64 {
	n := m.Len()
	clusters := make(map[int][]int)
	for i, lab := range labels {
		clusters[lab] = append(clusters[lab], i)
	}
	labs := make([]int, 0, len(clusters))
	for lab := range clusters {
		labs = append(labs, lab)
	}
	sort.Ints(labs)

	total := 0.0
	for i := 0; i < n; i++ {
		own := clusters[labels[i]]
		if len(own) <= 1 {
			continue // s(i) = 0
		}
		a := 0.0
		for _, j := range own {
			if j != i {
				a += m.D[i][j]
			}
		}
		a /= float64(len(own) - 1)

		b := math.Inf(1)
		for _, lab := range labs {
			if lab == labels[i] {
				continue
			}
			other := clusters[lab]
			sum := 0.0
			for _, j := range other {
				sum += m.D[i][j]
			}
			if mean := sum / float64(len(other)); mean < b {
				b = mean
			}
		}
		if math.IsInf(b, 1) {
			continue // single cluster overall
		}
		if mx := math.Max(a, b); mx > 0 {
			total += (b - a) / mx
		}
	}
	return total / float64(n)
}
