package algorithms

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []int // Ascending node ids
	Size    int
	Density float64 // Edge density within community
	Cliques int     // Maximal cliques merged into the community
}

// Strategy names how k-clique adjacency was resolved
type Strategy string

const (
	// StrategySubcliques decomposes maximal cliques into their k-subsets and
	// links k-cliques sharing k-1 nodes.
	StrategySubcliques Strategy = "k-subsets"
	// StrategyMaximalOverlap links maximal cliques sharing at least k-1 nodes.
	// It yields the same communities without materialising the k-subsets.
	StrategyMaximalOverlap Strategy = "maximal-overlap"
	// StrategyComponents marks plain connected components
	StrategyComponents Strategy = "components"
)

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities     []*Community
	NodeCommunities map[int][]int // Node ID -> Community IDs; may hold several
	MaximalCliques  int           // Maximal cliques of size >= k
	KCliques        int           // Distinct k-cliques, 0 unless Strategy is StrategySubcliques
	Strategy        Strategy
}

func newCommunity(id int, nodes []int, cliques int, density float64) *Community {
	return &Community{
		ID:      id,
		Nodes:   nodes,
		Size:    len(nodes),
		Density: density,
		Cliques: cliques,
	}
}
