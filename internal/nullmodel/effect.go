package nullmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// EffectKind names the effect-size family of a result.
type EffectKind string

const (
	EffectCramersV    EffectKind = "cramers_v"
	EffectCohensD     EffectKind = "cohens_d"
	EffectCorrelation EffectKind = "correlation"
)

// EffectSize is the mandatory companion to every p-value. A p-value alone
// is never a sufficient significance claim.
type EffectSize struct {
	Kind  EffectKind `json:"kind"`
	Value float64    `json:"value"`
}

// Validate rejects a null effect size.
func (e EffectSize) Validate() error {
	switch e.Kind {
	case EffectCramersV, EffectCohensD, EffectCorrelation:
	default:
		return fmt.Errorf("effect size kind is required (got %q)", e.Kind)
	}
	if math.IsNaN(e.Value) {
		return fmt.Errorf("effect size value is NaN")
	}
	return nil
}

// CramersV computes Cramér's V over a contingency table of counts.
func CramersV(table [][]int) (EffectSize, error) {
	rows := len(table)
	if rows == 0 || len(table[0]) == 0 {
		return EffectSize{}, fmt.Errorf("empty contingency table")
	}
	cols := len(table[0])
	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	n := 0.0
	for i := range table {
		if len(table[i]) != cols {
			return EffectSize{}, fmt.Errorf("ragged contingency table")
		}
		for j, c := range table[i] {
			rowSums[i] += float64(c)
			colSums[j] += float64(c)
			n += float64(c)
		}
	}
	if n == 0 {
		return EffectSize{}, fmt.Errorf("contingency table sums to zero")
	}
	chi2 := 0.0
	for i := range table {
		for j := range table[i] {
			expected := rowSums[i] * colSums[j] / n
			if expected > 0 {
				d := float64(table[i][j]) - expected
				chi2 += d * d / expected
			}
		}
	}
	k := math.Min(float64(rows-1), float64(cols-1))
	if k == 0 {
		return EffectSize{Kind: EffectCramersV, Value: 0}, nil
	}
	return EffectSize{Kind: EffectCramersV, Value: math.Sqrt(chi2 / (n * k))}, nil
}

// CohensD computes Cohen's d between two samples with pooled standard
// deviation.
func CohensD(a, b []float64) (EffectSize, error) {
	if len(a) < 2 || len(b) < 2 {
		return EffectSize{}, fmt.Errorf("cohens d needs at least two observations per sample")
	}
	ma, mb := stat.Mean(a, nil), stat.Mean(b, nil)
	va, vb := stat.Variance(a, nil), stat.Variance(b, nil)
	na, nb := float64(len(a)), float64(len(b))
	pooled := math.Sqrt(((na-1)*va + (nb-1)*vb) / (na + nb - 2))
	if pooled == 0 {
		return EffectSize{Kind: EffectCohensD, Value: 0}, nil
	}
	return EffectSize{Kind: EffectCohensD, Value: (ma - mb) / pooled}, nil
}

// Correlation computes a Pearson correlation effect size.
func Correlation(x, y []float64) (EffectSize, error) {
	if len(x) != len(y) || len(x) < 2 {
		return EffectSize{}, fmt.Errorf("correlation needs two equal-length samples of at least 2")
	}
	return EffectSize{Kind: EffectCorrelation, Value: stat.Correlation(x, y, nil)}, nil
}
