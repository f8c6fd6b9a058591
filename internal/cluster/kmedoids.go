package cluster

import "math"

const maxKMedoidsIterations = 100

// KMedoids partitions entities into k clusters around medoids. The
// algorithm is deterministic: greedy initialization (each next medoid is
// the one reducing total assignment cost the most, lowest index on ties)
// followed by alternating assignment and medoid-update passes until stable.
func KMedoids(m *Matrix, k int) []int {
	n := m.Len()
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	medoids := greedyInit(m, k)
	labels := assign(m, medoids)
	for iter := 0; iter < maxKMedoidsIterations; iter++ {
		changed := false
		for c := range medoids {
			best, bestCost := medoids[c], clusterCost(m, labels, c, medoids[c])
			for i := 0; i < n; i++ {
				if labels[i] != c || i == medoids[c] {
					continue
				}
				if cost := clusterCost(m, labels, c, i); cost < bestCost {
					best, bestCost = i, cost
					changed = true
				}
			}
			medoids[c] = best
		}
		next := assign(m, medoids)
		same := true
		for i := range next {
			if next[i] != labels[i] {
				same = false
				break
			}
		}
		labels = next
		if same && !changed {
			break
		}
	}
	return labels
}

// greedyInit picks k medoids: the first minimizes total distance to all
// entities, each subsequent one maximizes total cost reduction.
func greedyInit(m *Matrix, k int) []int {
	n := m.Len()
	first, firstCost := 0, math.Inf(1)
	for i := 0; i < n; i++ {
		cost := 0.0
		for j := 0; j < n; j++ {
			cost += m.D[i][j]
		}
		if cost < firstCost {
			first, firstCost = i, cost
		}
	}
	medoids := []int{first}

	nearest := make([]float64, n)
	for j := 0; j < n; j++ {
		nearest[j] = m.D[first][j]
	}
	for len(medoids) < k {
		best, bestGain := -1, -1.0
		for i := 0; i < n; i++ {
			if contains(medoids, i) {
				continue
			}
			gain := 0.0
			for j := 0; j < n; j++ {
				if d := nearest[j] - m.D[i][j]; d > 0 {
					gain += d
				}
			}
			if gain > bestGain {
				best, bestGain = i, gain
			}
		}
		medoids = append(medoids, best)
		for j := 0; j < n; j++ {
			if m.D[best][j] < nearest[j] {
				nearest[j] = m.D[best][j]
			}
		}
	}
	return medoids
}

func assign(m *Matrix, medoids []int) []int {
	labels := make([]int, m.Len())
	for i := range labels {
		best, bestD := 0, math.Inf(1)
		for c, med := range medoids {
			if d := m.D[i][med]; d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
	}
	return labels
}

func clusterCost(m *Matrix, labels []int, c, medoid int) float64 {
	cost := 0.0
	for i, lab := range labels {
		if lab == c {
			cost += m.D[medoid][i]
		}
	}
	return cost
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
