package cluster

import (
	"fmt"
	"math"
)

// Alignment quantifies the (in)dependence of two groupings of the same
// entities. Both scores are adjusted for chance: 0 means the agreement
// expected from random labelings, 1 means identical partitions.
type Alignment struct {
	AdjustedRand float64 `json:"adjusted_rand"`
	AdjustedMI   float64 `json:"adjusted_mi"`
}

// Align computes adjusted Rand index and adjusted mutual information
// between two label vectors over the same entity order.
func Align(u, v []int) (*Alignment, error) {
	if len(u) != len(v) {
		return nil, fmt.Errorf("label vectors differ in length: %d vs %d", len(u), len(v))
	}
	if len(u) == 0 {
		return nil, fmt.Errorf("empty label vectors")
	}
	ct := contingency(u, v)
	return &Alignment{
		AdjustedRand: adjustedRand(ct),
		AdjustedMI:   adjustedMI(ct),
	}, nil
}

// contingencyTable holds joint label counts plus marginals.
type contingencyTable struct {
	n     int
	cells [][]int
	rows  []int
	cols  []int
}

func contingency(u, v []int) *contingencyTable {
	uIdx, vIdx := indexLabels(u), indexLabels(v)
	ct := &contingencyTable{
		n:     len(u),
		cells: make([][]int, len(uIdx)),
		rows:  make([]int, len(uIdx)),
		cols:  make([]int, len(vIdx)),
	}
	for i := range ct.cells {
		ct.cells[i] = make([]int, len(vIdx))
	}
	for k := range u {
		i, j := uIdx[u[k]], vIdx[v[k]]
		ct.cells[i][j]++
		ct.rows[i]++
		ct.cols[j]++
	}
	return ct
}

func indexLabels(labels []int) map[int]int {
	idx := make(map[int]int)
	for _, lab := range labels {
		if _, ok := idx[lab]; !ok {
			idx[lab] = len(idx)
		}
	}
	return idx
}

func choose2(n int) float64 { return float64(n) * float64(n-1) / 2 }

func adjustedRand(ct *contingencyTable) float64 {
	sumCells, sumRows, sumCols := 0.0, 0.0, 0.0
	for i := range ct.cells {
		for _, c := range ct.cells[i] {
			sumCells += choose2(c)
		}
	}
	for _, r := range ct.rows {
		sumRows += choose2(r)
	}
	for _, c := range ct.cols {
		sumCols += choose2(c)
	}
	total := choose2(ct.n)
	expected := sumRows * sumCols / total
	maxIndex := (sumRows + sumCols) / 2
	if maxIndex == expected {
		return 1 // both partitions trivial
	}
	return (sumCells - expected) / (maxIndex - expected)
}

// adjustedMI computes AMI with arithmetic-mean normalization:
// (MI - E[MI]) / (mean(H(U), H(V)) - E[MI]).
func adjustedMI(ct *contingencyTable) float64 {
	n := float64(ct.n)
	mi := 0.0
	for i := range ct.cells {
		for j, c := range ct.cells[i] {
			if c == 0 {
				continue
			}
			p := float64(c) / n
			mi += p * math.Log(n*float64(c)/(float64(ct.rows[i])*float64(ct.cols[j])))
		}
	}
	hu, hv := entropy(ct.rows, n), entropy(ct.cols, n)
	emi := expectedMI(ct)
	denom := (hu+hv)/2 - emi
	if math.Abs(denom) < 1e-12 {
		return 1
	}
	return (mi - emi) / denom
}

func entropy(marginal []int, n float64) float64 {
	h := 0.0
	for _, m := range marginal {
		if m > 0 {
			p := float64(m) / n
			h -= p * math.Log(p)
		}
	}
	return h
}

// expectedMI is the expectation of mutual information over the
// hypergeometric model of random labelings with fixed marginals.
func expectedMI(ct *contingencyTable) float64 {
	n := float64(ct.n)
	emi := 0.0
	for _, ai := range ct.rows {
		for _, bj := range ct.cols {
			lo := ai + bj - ct.n
			if lo < 1 {
				lo = 1
			}
			hi := ai
			if bj < hi {
				hi = bj
			}
			for nij := lo; nij <= hi; nij++ {
				term := float64(nij) / n * math.Log(n*float64(nij)/(float64(ai)*float64(bj)))
				logP := logFactorial(ai) + logFactorial(bj) +
					logFactorial(ct.n-ai) + logFactorial(ct.n-bj) -
					logFactorial(ct.n) - logFactorial(nij) -
					logFactorial(ai-nij) - logFactorial(bj-nij) -
					logFactorial(ct.n-ai-bj+nij)
				emi += term * math.Exp(logP)
			}
		}
	}
	return emi
}

func logFactorial(x int) float64 {
	v, _ := math.Lgamma(float64(x) + 1)
	return v
}
