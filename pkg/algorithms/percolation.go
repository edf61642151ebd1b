package algorithms

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-gac/pkg/graph"
)

// DefaultMaxSubcliques caps how many k-subsets are materialised before
// KCliqueCommunities switches to StrategyMaximalOverlap.
const DefaultMaxSubcliques = 1_000_000

// ErrInvalidCliqueSize is returned for k < 2
var ErrInvalidCliqueSize = errors.New("clique size must be at least 2")

// CliqueOptions tunes KCliqueCommunities
type CliqueOptions struct {
	// MaxSubcliques bounds the k-subsets derived from maximal cliques.
	// 0 removes the bound; a negative value always links maximal cliques.
	MaxSubcliques int
}

// KCliqueCommunities finds overlapping communities by clique percolation.
//
// Every maximal clique of size >= k is decomposed into its k-node subsets.
// Two k-cliques are adjacent when they share k-1 nodes, and each connected
// component of that overlap graph is one community: the union of its
// k-cliques' nodes. A node can sit in several communities.
//
// If the decomposition would exceed opts.MaxSubcliques, maximal cliques are
// linked directly when they share at least k-1 nodes. The two overlap graphs
// have the same components, so the communities are identical; only
// Result.Strategy and Result.KCliques differ.
//
// Communities are ordered by the first maximal clique (in MaximalCliques
// order) that belongs to them. A graph without any k-clique gives an empty
// result, not an error.
func KCliqueCommunities(g *graph.Undirected, k int, opts CliqueOptions) (*CommunityDetectionResult, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCliqueSize, k)
	}

	maximal := MaximalCliques(g, k)

	result := &CommunityDetectionResult{
		Communities:     make([]*Community, 0),
		NodeCommunities: make(map[int][]int),
		MaximalCliques:  len(maximal),
		Strategy:        StrategySubcliques,
	}
	if len(maximal) == 0 {
		return result, nil
	}

	var component []int // maximal clique index -> overlap component id
	subsets := countSubcliques(maximal, k)
	if opts.MaxSubcliques == 0 || subsets <= opts.MaxSubcliques {
		component, result.KCliques = percolateSubcliques(maximal, k)
	} else {
		component = percolateMaximal(maximal, k)
		result.Strategy = StrategyMaximalOverlap
	}

	// Group maximal cliques by component, ordered by first appearance
	order := make(map[int]int)
	groups := make([][]int, 0)
	for ci, comp := range component {
		id, ok := order[comp]
		if !ok {
			id = len(groups)
			order[comp] = id
			groups = append(groups, nil)
		}
		groups[id] = append(groups[id], ci)
	}

	for id, group := range groups {
		members := make(map[int]struct{})
		for _, ci := range group {
			for _, u := range maximal[ci] {
				members[u] = struct{}{}
			}
		}
		nodes := make([]int, 0, len(members))
		for u := range members {
			nodes = append(nodes, u)
		}
		sort.Ints(nodes)

		for _, u := range nodes {
			result.NodeCommunities[u] = append(result.NodeCommunities[u], id)
		}
		result.Communities = append(result.Communities, newCommunity(id, nodes, len(group), Density(g, nodes)))
	}

	return result, nil
}

// percolateSubcliques builds the k-clique overlap graph and labels each
// maximal clique with the component of its k-subsets. It also returns the
// number of distinct k-cliques.
func percolateSubcliques(maximal [][]int, k int) ([]int, int) {
	index := make(map[string]int)
	var kcliques [][]int
	representative := make([]int, len(maximal))

	for ci, mc := range maximal {
		representative[ci] = -1
		forEachCombination(mc, k, func(sub []int) {
			key := cliqueKey(sub, -1)
			idx, ok := index[key]
			if !ok {
				idx = len(kcliques)
				index[key] = idx
				kcliques = append(kcliques, append([]int(nil), sub...))
			}
			if representative[ci] < 0 {
				representative[ci] = idx
			}
		})
	}

	// k-cliques sharing a (k-1)-face are adjacent. Linking each to the first
	// holder of the face is enough to preserve connectivity.
	overlap := graph.NewUndirected(len(kcliques))
	faces := make(map[string]int)
	for i, c := range kcliques {
		for drop := range c {
			key := cliqueKey(c, drop)
			if j, ok := faces[key]; ok {
				overlap.AddEdge(i, j)
			} else {
				faces[key] = i
			}
		}
	}

	components := ConnectedComponents(overlap)
	labels := make([]int, len(maximal))
	for ci, rep := range representative {
		labels[ci] = components.NodeCommunities[rep][0]
	}
	return labels, len(kcliques)
}

// percolateMaximal links maximal cliques sharing at least k-1 nodes and labels
// each with its component
func percolateMaximal(maximal [][]int, k int) []int {
	membership := make(map[int][]int)
	for ci, mc := range maximal {
		for _, u := range mc {
			membership[u] = append(membership[u], ci)
		}
	}

	overlap := graph.NewUndirected(len(maximal))
	for ci, mc := range maximal {
		shared := make(map[int]int)
		for _, u := range mc {
			for _, cj := range membership[u] {
				if cj > ci {
					shared[cj]++
				}
			}
		}
		for cj, n := range shared {
			if n >= k-1 {
				overlap.AddEdge(ci, cj)
			}
		}
	}

	components := ConnectedComponents(overlap)
	labels := make([]int, len(maximal))
	for ci := range maximal {
		labels[ci] = components.NodeCommunities[ci][0]
	}
	return labels
}

// countSubcliques sums C(|c|, k) over the maximal cliques, saturating at
// math.MaxInt
func countSubcliques(maximal [][]int, k int) int {
	total := 0
	for _, c := range maximal {
		n := binomial(len(c), k)
		if total > math.MaxInt-n {
			return math.MaxInt
		}
		total += n
	}
	return total
}

// binomial returns C(n, k), saturating at math.MaxInt
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		// result*(n-k+i)/i is C(n-k+i, i), always an integer
		hi, lo := bits.Mul64(uint64(result), uint64(n-k+i))
		if hi != 0 || lo/uint64(i) > math.MaxInt {
			return math.MaxInt
		}
		result = int(lo / uint64(i))
	}
	return result
}

// forEachCombination calls fn with every k-element subset of set, in
// lexicographic order of positions. fn must not retain its argument.
func forEachCombination(set []int, k int, fn func([]int)) {
	n := len(set)
	if k > n || k <= 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	sub := make([]int, k)
	for {
		for i, p := range idx {
			sub[i] = set[p]
		}
		fn(sub)

		// Advance the rightmost position that still has room
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// cliqueKey renders sorted node ids as a map key, skipping position skip
func cliqueKey(nodes []int, skip int) string {
	var b strings.Builder
	for i, u := range nodes {
		if i == skip {
			continue
		}
		b.WriteString(strconv.Itoa(u))
		b.WriteByte(',')
	}
	return b.String()
}
