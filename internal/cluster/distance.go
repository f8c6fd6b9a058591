package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Matrix is a symmetric pairwise distance matrix over a fixed entity set.
type Matrix struct {
	Entities []string
	D        [][]float64
}

// Len returns the entity count.
func (m *Matrix) Len() int { return len(m.Entities) }

// NewMatrix allocates a zero matrix for the given entities.
func NewMatrix(entities []string) *Matrix {
	m := &Matrix{Entities: entities, D: make([][]float64, len(entities))}
	for i := range m.D {
		m.D[i] = make([]float64, len(entities))
	}
	return m
}

// Euclidean builds the distance matrix from feature rows (one row per
// entity).
func Euclidean(entities []string, features [][]float64) (*Matrix, error) {
	if err := checkRows(entities, len(features)); err != nil {
		return nil, err
	}
	m := NewMatrix(entities)
	for i := range features {
		for j := i + 1; j < len(features); j++ {
			d := floats.Distance(features[i], features[j], 2)
			m.D[i][j], m.D[j][i] = d, d
		}
	}
	return m, nil
}

// Cosine builds a distance matrix as 1 - cosine similarity. Zero vectors
// are treated as maximally distant from everything.
func Cosine(entities []string, features [][]float64) (*Matrix, error) {
	if err := checkRows(entities, len(features)); err != nil {
		return nil, err
	}
	m := NewMatrix(entities)
	for i := range features {
		for j := i + 1; j < len(features); j++ {
			ni := math.Sqrt(floats.Dot(features[i], features[i]))
			nj := math.Sqrt(floats.Dot(features[j], features[j]))
			d := 1.0
			if ni > 0 && nj > 0 {
				d = 1 - floats.Dot(features[i], features[j])/(ni*nj)
			}
			m.D[i][j], m.D[j][i] = d, d
		}
	}
	return m, nil
}

// JaccardDistance builds a distance matrix as 1 - Jaccard over binary
// behavior rows (co-occurrence / presence vectors). Two all-false rows have
// distance 1.
func JaccardDistance(entities []string, rows [][]bool) (*Matrix, error) {
	if err := checkRows(entities, len(rows)); err != nil {
		return nil, err
	}
	m := NewMatrix(entities)
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			both, either := 0, 0
			for k := range rows[i] {
				switch {
				case rows[i][k] && rows[j][k]:
					both++
					either++
				case rows[i][k] || rows[j][k]:
					either++
				}
			}
			d := 1.0
			if either > 0 {
				d = 1 - float64(both)/float64(either)
			}
			m.D[i][j], m.D[j][i] = d, d
		}
	}
	return m, nil
}

// FromSimilarity converts a symmetric similarity matrix in [0,1] to a
// distance matrix (1 - s).
func FromSimilarity(entities []string, sim [][]float64) (*Matrix, error) {
	if err := checkRows(entities, len(sim)); err != nil {
		return nil, err
	}
	m := NewMatrix(entities)
	for i := range sim {
		for j := range sim[i] {
			if i != j {
				m.D[i][j] = 1 - sim[i][j]
			}
		}
	}
	return m, nil
}

func checkRows(entities []string, rows int) error {
	if len(entities) != rows {
		return fmt.Errorf("entity count %d does not match row count %d", len(entities), rows)
	}
	if rows == 0 {
		return fmt.Errorf("empty entity set")
	}
	return nil
}
