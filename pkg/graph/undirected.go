// Package graph provides the small, value-owned adjacency structures the
// correlation pipeline builds per run. Nothing here is safe for concurrent
// mutation; graphs are built by one goroutine and then only read.
package graph

import (
	"fmt"
	"sort"
)

// Undirected is a simple undirected graph over the dense node ids 0..n-1.
// Self-loops and parallel edges are rejected.
type Undirected struct {
	adj   []map[int]struct{}
	edges int
}

// NewUndirected creates a graph with n isolated nodes
func NewUndirected(n int) *Undirected {
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	return &Undirected{adj: adj}
}

// NodeCount returns the number of nodes
func (g *Undirected) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges
func (g *Undirected) EdgeCount() int {
	return g.edges
}

// AddEdge connects u and v. It returns false for self-loops and for edges that
// already exist.
func (g *Undirected) AddEdge(u, v int) bool {
	g.mustContain(u)
	g.mustContain(v)
	if u == v {
		return false
	}
	if _, ok := g.adj[u][v]; ok {
		return false
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++
	return true
}

// HasEdge reports whether u and v are adjacent
func (g *Undirected) HasEdge(u, v int) bool {
	if u < 0 || u >= len(g.adj) {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// Degree returns the number of neighbors of u
func (g *Undirected) Degree(u int) int {
	g.mustContain(u)
	return len(g.adj[u])
}

// Neighbors returns the neighbors of u in ascending order
func (g *Undirected) Neighbors(u int) []int {
	g.mustContain(u)
	out := make([]int, 0, len(g.adj[u]))
	for v := range g.adj[u] {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// InducedEdgeCount counts the edges with both endpoints in nodes
func (g *Undirected) InducedEdgeCount(nodes []int) int {
	count := 0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if g.HasEdge(nodes[i], nodes[j]) {
				count++
			}
		}
	}
	return count
}

// IsClique reports whether nodes are pairwise adjacent
func (g *Undirected) IsClique(nodes []int) bool {
	return g.InducedEdgeCount(nodes) == len(nodes)*(len(nodes)-1)/2
}

func (g *Undirected) mustContain(u int) {
	if u < 0 || u >= len(g.adj) {
		panic(fmt.Sprintf("graph: node %d out of range [0,%d)", u, len(g.adj)))
	}
}
