package graph

// Directed is a simple directed graph keyed by string (network addresses in
// practice). Nodes keep their first-seen order so iteration is reproducible.
type Directed struct {
	order []string
	out   map[string]map[string]struct{}
	in    map[string]map[string]struct{}
	edges int
}

// NewDirected creates an empty directed graph
func NewDirected() *Directed {
	return &Directed{
		out: make(map[string]map[string]struct{}),
		in:  make(map[string]map[string]struct{}),
	}
}

// AddNode inserts n if it is not present yet
func (g *Directed) AddNode(n string) {
	if _, ok := g.out[n]; ok {
		return
	}
	g.order = append(g.order, n)
	g.out[n] = make(map[string]struct{})
	g.in[n] = make(map[string]struct{})
}

// AddEdge inserts from -> to, creating both nodes if needed. It returns false
// for self-loops and for edges that already exist.
func (g *Directed) AddEdge(from, to string) bool {
	if from == to {
		return false
	}
	g.AddNode(from)
	g.AddNode(to)
	if _, ok := g.out[from][to]; ok {
		return false
	}
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
	g.edges++
	return true
}

// HasNode reports whether n is in the graph
func (g *Directed) HasNode(n string) bool {
	_, ok := g.out[n]
	return ok
}

// HasEdge reports whether from -> to exists
func (g *Directed) HasEdge(from, to string) bool {
	_, ok := g.out[from][to]
	return ok
}

// Nodes returns the nodes in insertion order
func (g *Directed) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// NodeCount returns the number of nodes
func (g *Directed) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of directed edges
func (g *Directed) EdgeCount() int {
	return g.edges
}

// OutDegree returns the number of edges leaving n
func (g *Directed) OutDegree(n string) int {
	return len(g.out[n])
}

// InDegree returns the number of edges entering n
func (g *Directed) InDegree(n string) int {
	return len(g.in[n])
}
