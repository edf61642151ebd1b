package similarity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/graph"
	"github.com/dd0wney/cluso-gac/pkg/parallel"
)

func setupStore(t *testing.T, alerts []alert.Alert) *alert.Store {
	t.Helper()
	s, err := alert.NewStore(alerts)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}

func TestScore(t *testing.T) {
	base := alert.Alert{UID: "a", SrcAddr: "10.0.0.1", SrcPort: 1234, DstAddr: "10.0.0.2", DstPort: 80}

	tests := []struct {
		name  string
		other alert.Alert
		want  float64
	}{
		{"identical tuple", alert.Alert{UID: "b", SrcAddr: "10.0.0.1", SrcPort: 1234, DstAddr: "10.0.0.2", DstPort: 80}, 1.0},
		{"source port differs", alert.Alert{UID: "b", SrcAddr: "10.0.0.1", SrcPort: 5555, DstAddr: "10.0.0.2", DstPort: 80}, 0.75},
		{"destination only", alert.Alert{UID: "b", SrcAddr: "10.9.9.9", SrcPort: 5555, DstAddr: "10.0.0.2", DstPort: 80}, 0.5},
		{"port only", alert.Alert{UID: "b", SrcAddr: "10.9.9.9", SrcPort: 5555, DstAddr: "10.9.9.8", DstPort: 80}, 0.25},
		{"nothing", alert.Alert{UID: "b", SrcAddr: "x", SrcPort: 1, DstAddr: "y", DstPort: 2}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(base, tt.other); got != tt.want {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild_InvalidThreshold(t *testing.T) {
	s := setupStore(t, sharedDestination(5))
	for _, threshold := range []float64{0, -0.1, 1, 1.5} {
		if _, err := Build(s, Options{Threshold: threshold}); !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("Threshold %v: expected ErrInvalidThreshold, got %v", threshold, err)
		}
	}
}

// sharedDestination returns n alerts hitting one service from distinct sources
func sharedDestination(n int) []alert.Alert {
	alerts := make([]alert.Alert, n)
	for i := range alerts {
		alerts[i] = alert.Alert{
			UID:     fmt.Sprintf("u%d", i),
			SrcAddr: fmt.Sprintf("172.16.0.%d", i+1),
			SrcPort: 50000 + i,
			DstAddr: "10.0.0.80",
			DstPort: 80,
		}
	}
	return alerts
}

func TestBuild_ThresholdIsStrict(t *testing.T) {
	s := setupStore(t, sharedDestination(5))

	// Pairs score exactly 0.5, so 0.5 yields nothing and 0.25 connects all
	g, err := Build(s, Options{Threshold: 0.5})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected no edges at threshold 0.5, got %d", g.EdgeCount())
	}
	if g.NodeCount() != 5 {
		t.Errorf("Expected all 5 alerts as nodes, got %d", g.NodeCount())
	}

	g, err = Build(s, Options{Threshold: DefaultThreshold})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.EdgeCount() != 10 {
		t.Errorf("Expected complete graph with 10 edges, got %d", g.EdgeCount())
	}
}

func TestBuild_IsolatedNodesKept(t *testing.T) {
	alerts := sharedDestination(5)
	alerts[4] = alert.Alert{UID: "loner", SrcAddr: "1.1.1.1", SrcPort: 1, DstAddr: "2.2.2.2", DstPort: 2}
	s := setupStore(t, alerts)

	g, err := Build(s, Options{Threshold: DefaultThreshold})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if g.NodeCount() != 5 {
		t.Fatalf("Expected 5 nodes, got %d", g.NodeCount())
	}
	if g.Degree(4) != 0 {
		t.Errorf("Expected isolated node, got degree %d", g.Degree(4))
	}
	if g.EdgeCount() != 6 {
		t.Errorf("Expected 6 edges among the first four, got %d", g.EdgeCount())
	}
}

func TestBuild_ParallelMatchesSequential(t *testing.T) {
	alerts := make([]alert.Alert, 40)
	for i := range alerts {
		alerts[i] = alert.Alert{
			UID:     fmt.Sprintf("p%d", i),
			SrcAddr: fmt.Sprintf("10.0.%d.1", i%3),
			SrcPort: 1000 + i%4,
			DstAddr: fmt.Sprintf("10.1.%d.1", i%5),
			DstPort: 443,
		}
	}
	s := setupStore(t, alerts)

	seq, err := Build(s, Options{Threshold: 0.5})
	if err != nil {
		t.Fatalf("Sequential build failed: %v", err)
	}
	par, err := Build(s, Options{Threshold: 0.5, Workers: 4})
	if err != nil {
		t.Fatalf("Parallel build failed: %v", err)
	}

	pool, err := parallel.NewWorkerPool(3, nil)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Close()
	pooled, err := Build(s, Options{Threshold: 0.5, Pool: pool})
	if err != nil {
		t.Fatalf("Pooled build failed: %v", err)
	}

	for _, other := range []*graph.Undirected{par, pooled} {
		if seq.EdgeCount() != other.EdgeCount() {
			t.Fatalf("Edge count mismatch: %d vs %d", seq.EdgeCount(), other.EdgeCount())
		}
		for i := 0; i < s.Len(); i++ {
			for j := 0; j < s.Len(); j++ {
				if seq.HasEdge(i, j) != other.HasEdge(i, j) {
					t.Fatalf("Edge %d-%d differs between builds", i, j)
				}
			}
		}
	}
}

func genAlert(uid string) gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("10.0.0.1", "10.0.0.2", "10.0.0.3"),
		gen.IntRange(1, 3),
		gen.OneConstOf("10.0.1.1", "10.0.1.2"),
		gen.IntRange(80, 81),
	).Map(func(v []interface{}) alert.Alert {
		return alert.Alert{
			UID:     uid,
			SrcAddr: v[0].(string),
			SrcPort: v[1].(int),
			DstAddr: v[2].(string),
			DstPort: v[3].(int),
		}
	})
}

func TestSimilarityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("score is symmetric and bounded", prop.ForAll(
		func(a, b alert.Alert) bool {
			s := Score(a, b)
			return s == Score(b, a) && s >= 0 && s <= 1
		},
		genAlert("a"),
		genAlert("b"),
	))

	properties.Property("graph is symmetric without self loops", prop.ForAll(
		func(a, b, c, d, e, f alert.Alert) bool {
			batch := []alert.Alert{a, b, c, d, e, f}
			for i := range batch {
				batch[i].UID = fmt.Sprintf("g%d", i)
			}
			s, err := alert.NewStore(batch)
			if err != nil {
				return false
			}
			g, err := Build(s, Options{Threshold: DefaultThreshold})
			if err != nil {
				return false
			}
			for i := 0; i < s.Len(); i++ {
				if g.HasEdge(i, i) {
					return false
				}
				for j := 0; j < s.Len(); j++ {
					if g.HasEdge(i, j) != g.HasEdge(j, i) {
						return false
					}
					if i != j && g.HasEdge(i, j) != (Score(s.At(i), s.At(j)) > DefaultThreshold) {
						return false
					}
				}
			}
			return true
		},
		genAlert(""), genAlert(""), genAlert(""), genAlert(""), genAlert(""), genAlert(""),
	))

	properties.TestingRun(t)
}
