package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/algorithms"
	"github.com/dd0wney/cluso-gac/pkg/correlation"
	"github.com/dd0wney/cluso-gac/pkg/similarity"
)

func main() {
	campaigns := flag.Int("campaigns", 20, "Number of synthetic attack campaigns")
	size := flag.Int("size", 20, "Alerts per campaign")
	noise := flag.Int("noise", 200, "Uncorrelated background alerts")
	k := flag.Int("k", correlation.DefaultCliqueSize, "Clique size")
	workers := flag.Int("workers", 0, "Worker count for the parallel run, 0 for one per CPU")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	fmt.Printf("🔥 Cluso GAC - Correlation Benchmark\n")
	fmt.Printf("====================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Campaigns: %d x %d alerts\n", *campaigns, *size)
	fmt.Printf("  Noise: %d alerts\n", *noise)
	fmt.Printf("  k: %d\n\n", *k)

	rng := rand.New(rand.NewSource(*seed))
	alerts := generateAlerts(rng, *campaigns, *size, *noise)
	fmt.Printf("📝 Generated %d alerts\n", len(alerts))

	store, err := alert.NewStore(alerts)
	if err != nil {
		log.Fatalf("Failed to build store: %v", err)
	}

	// Benchmark 1: Similarity graph
	fmt.Printf("\n📊 Benchmark 1: Similarity Graph\n")
	start := time.Now()
	g, err := similarity.Build(store, similarity.Options{Threshold: similarity.DefaultThreshold})
	if err != nil {
		log.Fatalf("Similarity build failed: %v", err)
	}
	fmt.Printf("✅ Built in %v\n", time.Since(start))
	fmt.Printf("  Edges: %d\n", g.EdgeCount())

	// Benchmark 2: Maximal cliques
	fmt.Printf("\n📊 Benchmark 2: Maximal Cliques\n")
	start = time.Now()
	cliques := algorithms.MaximalCliques(g, *k)
	fmt.Printf("✅ Enumerated in %v\n", time.Since(start))
	fmt.Printf("  Maximal cliques of size >= %d: %d\n", *k, len(cliques))

	// Benchmark 3: Percolation, both strategies
	fmt.Printf("\n📊 Benchmark 3: Clique Percolation\n")
	for _, opts := range []algorithms.CliqueOptions{{MaxSubcliques: 0}, {MaxSubcliques: -1}} {
		start = time.Now()
		result, err := algorithms.KCliqueCommunities(g, *k, opts)
		if err != nil {
			log.Fatalf("Percolation failed: %v", err)
		}
		fmt.Printf("✅ %-16s %v (%d communities, %d k-cliques)\n",
			result.Strategy, time.Since(start), len(result.Communities), result.KCliques)
	}

	// Benchmark 4: Full pipeline, sequential and parallel
	fmt.Printf("\n📊 Benchmark 4: Full Pipeline\n")
	for _, w := range []int{1, *workers} {
		cfg := correlation.DefaultConfig()
		cfg.CliqueSize = *k
		cfg.Workers = w

		start = time.Now()
		clusters, err := correlation.Correlate(alerts, cfg)
		if err != nil {
			log.Fatalf("Correlation failed: %v", err)
		}
		fmt.Printf("✅ workers=%d: %v, %d clusters\n", w, time.Since(start), len(clusters))

		if w == 1 {
			counts := make(map[string]int)
			for _, c := range clusters {
				counts[c.Pattern.String()]++
			}
			for pattern, n := range counts {
				fmt.Printf("    %s: %d\n", pattern, n)
			}
		}
	}

	fmt.Printf("\n✅ Benchmark complete!\n")
}

// generateAlerts builds campaigns of one of the four shapes plus random noise
func generateAlerts(rng *rand.Rand, campaigns, size, noise int) []alert.Alert {
	var alerts []alert.Alert
	uid := 0
	add := func(src string, sport int, dst string, dport int) {
		alerts = append(alerts, alert.Alert{
			UID:     fmt.Sprintf("bench-%d", uid),
			SrcAddr: src,
			SrcPort: sport,
			DstAddr: dst,
			DstPort: dport,
		})
		uid++
	}

	for c := 0; c < campaigns; c++ {
		attacker := fmt.Sprintf("198.51.%d.%d", c/250, c%250+1)
		victim := fmt.Sprintf("10.%d.0.1", c%250)
		port := 1024 + c
		for i := 0; i < size; i++ {
			switch c % 3 {
			case 0: // scan: one socket, many targets
				add(attacker, 40000+c, fmt.Sprintf("10.%d.1.%d", c%250, i%250+1), port)
			case 1: // flood: many sources, one service
				add(fmt.Sprintf("203.%d.%d.%d", c%250, i/250, i%250+1), 30000+i, victim, port)
			default: // brute force: one pair, rotating source ports
				add(attacker, 50000+i, victim, port)
			}
		}
	}

	for i := 0; i < noise; i++ {
		add(
			fmt.Sprintf("172.%d.%d.%d", rng.Intn(32), rng.Intn(256), rng.Intn(256)),
			rng.Intn(65536),
			fmt.Sprintf("192.168.%d.%d", rng.Intn(256), rng.Intn(256)),
			rng.Intn(65536),
		)
	}
	return alerts
}
