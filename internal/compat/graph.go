package compat

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vellumlabs/vellum/internal/token"
)

// Graph is the compatibility graph over middle-components for one mode.
// Nodes live in a stable sorted arena; all edges are undirected. A Graph is
// built once and immutable afterwards; rebuilding from the same inputs
// yields an identical partition.
type Graph struct {
	mode  token.Mode
	nodes []string       // sorted arena
	index map[string]int // middle -> arena index
	adj   [][]int        // sorted neighbor indexes
	hubs  []bool
}

// BuildGraph constructs the graph from per-record legal vocabularies: every
// pair of middles sharing at least one vocabulary is connected.
func BuildGraph(vocabs map[string]Vocabulary, p Params) (*Graph, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	nodeSet := make(map[string]bool)
	for _, v := range vocabs {
		for m := range v {
			nodeSet[m] = true
		}
	}
	nodes := make([]string, 0, len(nodeSet))
	for m := range nodeSet {
		nodes = append(nodes, m)
	}
	sort.Strings(nodes)

	g := &Graph{
		mode:  p.Mode,
		nodes: nodes,
		index: make(map[string]int, len(nodes)),
		adj:   make([][]int, len(nodes)),
	}
	for i, m := range nodes {
		g.index[m] = i
	}

	edges := make(map[[2]int]bool)
	for _, v := range vocabs {
		members := v.Sorted()
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := g.index[members[i]], g.index[members[j]]
				edges[[2]int{a, b}] = true
			}
		}
	}
	for e := range edges {
		g.adj[e[0]] = append(g.adj[e[0]], e[1])
		g.adj[e[1]] = append(g.adj[e[1]], e[0])
	}
	for i := range g.adj {
		sort.Ints(g.adj[i])
	}

	g.hubs = g.markHubs(p.HubPercentile)
	return g, nil
}

// markHubs flags nodes whose degree exceeds the given percentile of the
// degree distribution.
func (g *Graph) markHubs(percentile float64) []bool {
	hubs := make([]bool, len(g.nodes))
	if len(g.nodes) == 0 {
		return hubs
	}
	degrees := make([]float64, len(g.nodes))
	for i := range g.nodes {
		degrees[i] = float64(len(g.adj[i]))
	}
	sorted := append([]float64(nil), degrees...)
	sort.Float64s(sorted)
	cutoff := stat.Quantile(percentile/100, stat.Empirical, sorted, nil)
	for i, d := range degrees {
		if d > cutoff {
			hubs[i] = true
		}
	}
	return hubs
}

// Mode returns the interpretation mode the graph was built under.
func (g *Graph) Mode() token.Mode { return g.mode }

// Nodes returns the middle arena in stable order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Degree returns the degree of a middle, or -1 if absent.
func (g *Graph) Degree(middle string) int {
	i, ok := g.index[middle]
	if !ok {
		return -1
	}
	return len(g.adj[i])
}

// Neighbors returns the sorted neighbor middles of a node.
func (g *Graph) Neighbors(middle string) []string {
	i, ok := g.index[middle]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.nodes[j]
	}
	return out
}

// HasEdge reports whether two middles are compatible.
func (g *Graph) HasEdge(m1, m2 string) bool {
	i, ok := g.index[m1]
	if !ok {
		return false
	}
	j, ok := g.index[m2]
	if !ok {
		return false
	}
	k := sort.SearchInts(g.adj[i], j)
	return k < len(g.adj[i]) && g.adj[i][k] == j
}

// Hubs returns the middles flagged as hub nodes, sorted.
func (g *Graph) Hubs() []string {
	var out []string
	for i, isHub := range g.hubs {
		if isHub {
			out = append(out, g.nodes[i])
		}
	}
	return out
}

// Components returns the connected components of the raw graph. Components
// are sorted internally and by first member, so the partition is
// deterministic.
func (g *Graph) Components() [][]string {
	return g.components(func(int) bool { return true })
}

// ComponentsExcludingHubs returns the connected components after removing
// hub nodes and their edges. Hub nodes do not appear in the result;
// non-hub nodes left isolated appear as singletons.
func (g *Graph) ComponentsExcludingHubs() [][]string {
	return g.components(func(i int) bool { return !g.hubs[i] })
}

func (g *Graph) components(keep func(int) bool) [][]string {
	uf := newUnionFind(len(g.nodes))
	for i := range g.nodes {
		if !keep(i) {
			continue
		}
		for _, j := range g.adj[i] {
			if i < j && keep(j) {
				uf.union(i, j)
			}
		}
	}
	groups := make(map[int][]string)
	for i, m := range g.nodes {
		if !keep(i) {
			continue
		}
		root := uf.find(i)
		groups[root] = append(groups[root], m)
	}
	out := make([][]string, 0, len(groups))
	for _, members := range groups {
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// unionFind is a plain disjoint-set with path halving and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
