// Package flow turns the alerts of one community into a directed
// address-to-address graph.
package flow

import (
	"github.com/dd0wney/cluso-gac/pkg/alert"
	"github.com/dd0wney/cluso-gac/pkg/graph"
)

// Build adds SrcAddr -> DstAddr for every alert. Self-traffic carries no
// attacker/victim signal and is skipped, so an address seen only in
// self-traffic never becomes a node. Repeated pairs collapse to one edge.
func Build(alerts []alert.Alert) *graph.Directed {
	g := graph.NewDirected()
	for _, a := range alerts {
		if a.SelfTraffic() {
			continue
		}
		g.AddEdge(a.SrcAddr, a.DstAddr)
	}
	return g
}

// SelfTraffic counts the alerts Build skips
func SelfTraffic(alerts []alert.Alert) int {
	n := 0
	for _, a := range alerts {
		if a.SelfTraffic() {
			n++
		}
	}
	return n
}
