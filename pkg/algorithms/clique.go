package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-gac/pkg/graph"
)

// MaximalCliques returns every maximal clique of g with at least minSize nodes,
// each as ascending node ids.
//
// Enumeration is Bron–Kerbosch with Tomita pivoting. Two bounds keep the
// search small: nodes outside the (minSize-1)-core cannot belong to a large
// enough clique and are dropped up front, and a branch whose current clique
// plus remaining candidates is below minSize is cut. Candidates are visited
// in ascending order and pivot ties go to the smallest id, so the output order
// is a pure function of the graph.
func MaximalCliques(g *graph.Undirected, minSize int) [][]int {
	if minSize < 1 {
		minSize = 1
	}

	alive := kCore(g, minSize-1)
	candidates := make([]int, 0, len(alive))
	for u, ok := range alive {
		if ok {
			candidates = append(candidates, u)
		}
	}

	e := &cliqueSearch{g: g, minSize: minSize}
	e.expand(make([]int, 0, minSize), candidates, nil)
	return e.found
}

type cliqueSearch struct {
	g       *graph.Undirected
	minSize int
	found   [][]int
}

// expand grows clique r from candidates p, with x holding nodes already
// explored at this level
func (e *cliqueSearch) expand(r, p, x []int) {
	if len(p) == 0 {
		if len(x) == 0 && len(r) >= e.minSize {
			clique := make([]int, len(r))
			copy(clique, r)
			sort.Ints(clique)
			e.found = append(e.found, clique)
		}
		return
	}
	if len(r)+len(p) < e.minSize {
		return
	}

	pivot := e.choosePivot(p, x)

	// Snapshot the branch set; p and x shrink and grow as we go
	branch := make([]int, 0, len(p))
	for _, v := range p {
		if !e.g.HasEdge(pivot, v) {
			branch = append(branch, v)
		}
	}

	for _, v := range branch {
		e.expand(append(r, v), e.restrict(p, v), e.restrict(x, v))
		p = remove(p, v)
		x = append(x, v)
		if len(r)+len(p) < e.minSize {
			// Remaining candidates cannot reach minSize from here
			return
		}
	}
}

// choosePivot picks the node of p ∪ x with the most neighbors in p
func (e *cliqueSearch) choosePivot(p, x []int) int {
	best, bestCount := -1, -1
	consider := func(u int) {
		count := 0
		for _, v := range p {
			if e.g.HasEdge(u, v) {
				count++
			}
		}
		if count > bestCount || (count == bestCount && u < best) {
			best, bestCount = u, count
		}
	}
	for _, u := range p {
		consider(u)
	}
	for _, u := range x {
		consider(u)
	}
	return best
}

// restrict returns the members of set adjacent to v, keeping their order
func (e *cliqueSearch) restrict(set []int, v int) []int {
	out := make([]int, 0, len(set))
	for _, u := range set {
		if e.g.HasEdge(u, v) {
			out = append(out, u)
		}
	}
	return out
}

func remove(set []int, v int) []int {
	out := make([]int, 0, len(set))
	for _, u := range set {
		if u != v {
			out = append(out, u)
		}
	}
	return out
}

// kCore marks the nodes that survive repeatedly peeling nodes of degree < k
func kCore(g *graph.Undirected, k int) []bool {
	n := g.NodeCount()
	alive := make([]bool, n)
	degree := make([]int, n)
	queue := make([]int, 0)

	for u := 0; u < n; u++ {
		alive[u] = true
		degree[u] = g.Degree(u)
		if degree[u] < k {
			queue = append(queue, u)
			alive[u] = false
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Neighbors(u) {
			if !alive[v] {
				continue
			}
			degree[v]--
			if degree[v] < k {
				alive[v] = false
				queue = append(queue, v)
			}
		}
	}

	return alive
}
