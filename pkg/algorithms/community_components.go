package algorithms

import (
	"container/list"
	"sort"

	"github.com/dd0wney/cluso-gac/pkg/graph"
)

// ConnectedComponents finds all connected components in the graph. Components
// are numbered in order of their smallest node; nodes within a component are
// ascending.
func ConnectedComponents(g *graph.Undirected) *CommunityDetectionResult {
	n := g.NodeCount()
	visited := make([]bool, n)
	nodeCommunities := make(map[int][]int, n)
	communities := make([]*Community, 0)

	// BFS to find each component
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		id := len(communities)
		nodes := make([]int, 0)

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			nodeID, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			nodes = append(nodes, nodeID)
			nodeCommunities[nodeID] = []int{id}

			for _, neighbor := range g.Neighbors(nodeID) {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue.PushBack(neighbor)
				}
			}
		}

		sort.Ints(nodes)
		communities = append(communities, newCommunity(id, nodes, 0, Density(g, nodes)))
	}

	return &CommunityDetectionResult{
		Communities:     communities,
		NodeCommunities: nodeCommunities,
		Strategy:        StrategyComponents,
	}
}

// Density is the fraction of possible edges present among nodes. A single
// node has density 1.
func Density(g *graph.Undirected, nodes []int) float64 {
	if len(nodes) < 2 {
		return 1.0
	}
	possible := len(nodes) * (len(nodes) - 1) / 2
	return float64(g.InducedEdgeCount(nodes)) / float64(possible)
}
