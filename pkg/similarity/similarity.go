// Package similarity builds the undirected alert similarity graph.
//
// Every unordered pair of alerts is scored, so a build costs O(n²)
// comparisons and may produce O(n²) edges. That is fine for the alert counts
// of one correlation window but is the scaling limit of the pipeline; split
// larger batches into windows before correlating them.
package similarity

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/graph"
	"github.com/dd0wney/cluso-gac/pkg/parallel"
)

// DefaultThreshold is the score an alert pair must exceed to be connected
const DefaultThreshold = 0.25

// AttributeWeight is the score contributed by each matching attribute
const AttributeWeight = 0.25

// ErrInvalidThreshold is returned for thresholds outside (0, 1)
var ErrInvalidThreshold = errors.New("similarity threshold must be in (0, 1)")

// Options controls a similarity build
type Options struct {
	Threshold float64
	// Workers > 1 scores rows on a worker pool; the resulting graph is
	// identical to the sequential build.
	Workers int
	// Pool, when set, is used instead of a temporary pool and is left open
	Pool *parallel.WorkerPool
}

// Score returns 0.25 for each of source address, source port, destination
// address and destination port on which a and b agree.
func Score(a, b alert.Alert) float64 {
	return AttributeWeight * float64(MatchingAttributes(a, b))
}

// MatchingAttributes counts the equal fields of the correlation 4-tuple
func MatchingAttributes(a, b alert.Alert) int {
	n := 0
	if a.SrcAddr == b.SrcAddr {
		n++
	}
	if a.SrcPort == b.SrcPort {
		n++
	}
	if a.DstAddr == b.DstAddr {
		n++
	}
	if a.DstPort == b.DstPort {
		n++
	}
	return n
}

// Build connects alerts i and j (store positions) iff Score > Threshold. Every
// alert is a node, isolated or not.
func Build(store *alert.Store, opts Options) (*graph.Undirected, error) {
	if opts.Threshold <= 0 || opts.Threshold >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, opts.Threshold)
	}

	n := store.Len()
	g := graph.NewUndirected(n)

	// rows[i] holds the neighbors j > i of alert i
	rows := make([][]int, n)
	scoreRow := func(i int) error {
		a := store.At(i)
		for j := i + 1; j < n; j++ {
			if Score(a, store.At(j)) > opts.Threshold {
				rows[i] = append(rows[i], j)
			}
		}
		return nil
	}

	var err error
	if opts.Pool != nil {
		err = opts.Pool.ForEach(n, scoreRow)
	} else {
		err = parallel.Run(opts.Workers, n, scoreRow)
	}
	if err != nil {
		return nil, fmt.Errorf("scoring alert pairs: %w", err)
	}

	for i, row := range rows {
		for _, j := range row {
			g.AddEdge(i, j)
		}
	}
	return g, nil
}
