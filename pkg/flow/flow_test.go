package flow

import (
	"testing"

	"github.com/dd0wney/cluso-gac/pkg/alert"
)

func TestBuild_FanOut(t *testing.T) {
	alerts := []alert.Alert{
		{UID: "1", SrcAddr: "10.0.0.1", DstAddr: "10.0.1.1"},
		{UID: "2", SrcAddr: "10.0.0.1", DstAddr: "10.0.1.2"},
		{UID: "3", SrcAddr: "10.0.0.1", DstAddr: "10.0.1.2"},
		{UID: "4", SrcAddr: "10.0.0.1", DstAddr: "10.0.1.3"},
	}

	g := Build(alerts)
	if g.NodeCount() != 4 {
		t.Errorf("Expected 4 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("Expected duplicate pair to collapse to 3 edges, got %d", g.EdgeCount())
	}
	if g.OutDegree("10.0.0.1") != 3 {
		t.Errorf("Expected out-degree 3, got %d", g.OutDegree("10.0.0.1"))
	}
	if g.Nodes()[0] != "10.0.0.1" {
		t.Errorf("Expected first-seen order, got %v", g.Nodes())
	}
}

func TestBuild_SelfTrafficExcluded(t *testing.T) {
	alerts := []alert.Alert{
		{UID: "1", SrcAddr: "10.0.0.9", DstAddr: "10.0.0.9"},
		{UID: "2", SrcAddr: "10.0.0.1", DstAddr: "10.0.0.2"},
		{UID: "3", SrcAddr: "10.0.0.2", DstAddr: "10.0.0.2"},
	}

	g := Build(alerts)
	if g.HasNode("10.0.0.9") {
		t.Error("Address seen only in self-traffic must not become a node")
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("Expected 2 nodes and 1 edge, got %d and %d", g.NodeCount(), g.EdgeCount())
	}
	for _, n := range g.Nodes() {
		if g.HasEdge(n, n) {
			t.Errorf("Unexpected self-loop on %s", n)
		}
	}
	if SelfTraffic(alerts) != 2 {
		t.Errorf("Expected 2 self-traffic alerts, got %d", SelfTraffic(alerts))
	}
}

func TestBuild_AllSelfTraffic(t *testing.T) {
	g := Build([]alert.Alert{{UID: "1", SrcAddr: "a", DstAddr: "a"}})
	if g.NodeCount() != 0 {
		t.Errorf("Expected empty graph, got %d nodes", g.NodeCount())
	}
}
