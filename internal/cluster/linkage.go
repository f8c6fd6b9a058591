package cluster

import "sort"

// Agglomerative performs average-linkage hierarchical clustering down to k
// clusters and returns a label per entity. Labels are renumbered by first
// occurrence so the output is stable. Ties in merge distance break on the
// lowest cluster indexes.
func Agglomerative(m *Matrix, k int) []int {
	n := m.Len()
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	// active clusters as sorted member lists
	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	for len(clusters) > k {
		bi, bj, best := -1, -1, 0.0
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				d := averageLinkage(m, clusters[i], clusters[j])
				if bi == -1 || d < best {
					bi, bj, best = i, j, d
				}
			}
		}
		merged := append(append([]int{}, clusters[bi]...), clusters[bj]...)
		sort.Ints(merged)
		next := make([][]int, 0, len(clusters)-1)
		for idx, c := range clusters {
			if idx != bi && idx != bj {
				next = append(next, c)
			}
		}
		clusters = append(next, merged)
		// keep deterministic cluster ordering by smallest member
		sort.Slice(clusters, func(a, b int) bool { return clusters[a][0] < clusters[b][0] })
	}

	labels := make([]int, n)
	for lab, c := range clusters {
		for _, i := range c {
			labels[i] = lab
		}
	}
	return labels
}

func averageLinkage(m *Matrix, a, b []int) float64 {
	sum := 0.0
	for _, i := range a {
		for _, j := range b {
			sum += m.D[i][j]
		}
	}
	return sum / float64(len(a)*len(b))
}
