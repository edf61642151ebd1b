package classify

import (
	"math"

	"github.com/dd0wney/cluso-gac/pkg/graph"
)

// Scores holds the certainty of each hypothesis
type Scores struct {
	OneToOne   float64 `json:"one_to_one"`
	OneToMany  float64 `json:"one_to_many"`
	ManyToOne  float64 `json:"many_to_one"`
	ManyToMany float64 `json:"many_to_many"`
}

// Of returns the score of p
func (s Scores) Of(p Pattern) float64 {
	switch p {
	case OneToOne:
		return s.OneToOne
	case OneToMany:
		return s.OneToMany
	case ManyToOne:
		return s.ManyToOne
	case ManyToMany:
		return s.ManyToMany
	default:
		return 0
	}
}

// Best returns the highest-scoring pattern, resolving ties by Priority
func (s Scores) Best() (Pattern, float64) {
	best := Priority[0]
	bestScore := s.Of(best)
	for _, p := range Priority[1:] {
		if score := s.Of(p); score > bestScore {
			best, bestScore = p, score
		}
	}
	return best, bestScore
}

// Result is the classification of one flow graph
type Result struct {
	Certainty float64
	Pattern   Pattern
	Attackers []string // Nodes with out-degree >= 1, in graph order
	Victims   []string // Nodes with in-degree >= 1, in graph order
	Scores    Scores
	// Degenerate is set when the graph has at most two nodes, so at least one
	// hypothesis was zeroed by its size guard rather than scored.
	Degenerate bool
}

// ComputeScores evaluates the four hypotheses for a graph with V nodes, A
// attackers and T victims. A formula whose denominator would vanish scores 0.
//
//	one-to-one   = 1/3 [ (V-A)/(V-1) + (V-T)/(V-1) + (V-|A-T|)/V ]   V > 1
//	one-to-many  = 1/3 [ (V-A)/(V-1) + T/(V-1)     + |A-T|/(V-2) ]   V > 2
//	many-to-one  = 1/3 [ A/(V-1)     + (V-T)/(V-1) + |A-T|/(V-2) ]   V > 2
//	many-to-many = 1/3 [ A/V         + T/V         + (V-|A-T|)/V ]   V > 0
//
// For flow graphs every formula is bounded by 1; results are clamped so float
// rounding cannot push a score past it.
func ComputeScores(v, a, t int) Scores {
	V, A, T := float64(v), float64(a), float64(t)
	D := math.Abs(A - T)

	var s Scores
	if v > 1 {
		s.OneToOne = third * ((V-A)/(V-1) + (V-T)/(V-1) + (V-D)/V)
	}
	if v > 2 {
		s.OneToMany = third * ((V-A)/(V-1) + T/(V-1) + D/(V-2))
		s.ManyToOne = third * (A/(V-1) + (V-T)/(V-1) + D/(V-2))
	}
	if v > 0 {
		s.ManyToMany = third * (A/V + T/V + (V-D)/V)
	}

	s.OneToOne = clamp01(s.OneToOne)
	s.OneToMany = clamp01(s.OneToMany)
	s.ManyToOne = clamp01(s.ManyToOne)
	s.ManyToMany = clamp01(s.ManyToMany)
	return s
}

const third = 1.0 / 3

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Classify scores g against the four topologies and keeps the best
func Classify(g *graph.Directed) Result {
	attackers := make([]string, 0)
	victims := make([]string, 0)
	for _, n := range g.Nodes() {
		if g.InDegree(n) >= 1 {
			victims = append(victims, n)
		}
		if g.OutDegree(n) >= 1 {
			attackers = append(attackers, n)
		}
	}

	v := g.NodeCount()
	scores := ComputeScores(v, len(attackers), len(victims))
	pattern, certainty := scores.Best()

	return Result{
		Certainty:  certainty,
		Pattern:    pattern,
		Attackers:  attackers,
		Victims:    victims,
		Scores:     scores,
		Degenerate: v <= 2,
	}
}
