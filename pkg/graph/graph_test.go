package graph

import (
	"fmt"
	"testing"
)

func TestAddNodeAssignsSequentialIDs(t *testing.T) {
	g := New(TypeCode, "g1", "Title", "Desc", "_g1")

	for i := 1; i <= 12; i++ {
		n := g.AddNode(fmt.Sprintf("node%d", i), NodeFunction, "")
		want := fmt.Sprintf("n%02d", i)
		if n.ID != want {
			t.Errorf("node %d id = %q, want %q", i, n.ID, want)
		}
	}
}

func TestNodeIDsIndependentPerGraph(t *testing.T) {
	g1 := New(TypeCode, "g1", "One", "d", "_one")
	g2 := New(TypeWorkflow, "g2", "Two", "d", "_two")

	g1.AddNode("a", NodeClass, "")
	g1.AddNode("b", NodeClass, "")
	n := g2.AddNode("x", NodeState, "")

	if n.ID != "n01" {
		t.Errorf("second graph's first node id = %q, want n01", n.ID)
	}
}

func TestNodeNameRebinding(t *testing.T) {
	g := New(TypeCode, "g1", "Title", "Desc", "_g1")
	g.AddNode("dup", NodeFunction, "")
	g.AddNode("dup", NodeVariable, "")

	id, ok := g.NodeID("dup")
	if !ok {
		t.Fatal("NodeID(dup) not found")
	}
	// The later definition wins silently.
	if id != "n02" {
		t.Errorf("NodeID(dup) = %q, want n02", id)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
}

func TestGroupsKeepFirstSeenOrder(t *testing.T) {
	g := New(TypeCode, "g1", "Title", "Desc", "_g1")
	g.AddNode("a", NodeClass, "beta")
	g.AddNode("b", NodeClass, "alpha")
	g.AddNode("c", NodeClass, "beta")
	g.AddNode("d", NodeClass, "")

	groups := g.Groups()
	if len(groups) != 2 || groups[0] != "beta" || groups[1] != "alpha" {
		t.Fatalf("Groups() = %v, want [beta alpha]", groups)
	}

	beta := g.GroupNodes("beta")
	if len(beta) != 2 || beta[0].Name != "a" || beta[1].Name != "c" {
		t.Errorf("GroupNodes(beta) = %v", beta)
	}

	if got := g.GroupNodes("missing"); got != nil {
		t.Errorf("GroupNodes(missing) = %v, want nil", got)
	}
}

func TestRegistryDefineAndGet(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get("nope"); err == nil {
		t.Error("Get on empty registry should fail")
	}

	g := New(TypeCode, "g1", "Title", "Desc", "_g1")
	if replaced := r.Define(g); replaced {
		t.Error("first Define reported replaced")
	}

	got, err := r.Get("g1")
	if err != nil {
		t.Fatalf("Get(g1) error: %v", err)
	}
	if got != g {
		t.Error("Get(g1) returned a different graph")
	}
}

func TestRegistryRedefinitionKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Define(New(TypeCode, "a", "A", "d", "_a"))
	r.Define(New(TypeCode, "b", "B", "d", "_b"))

	replacement := New(TypeWorkflow, "a", "A2", "d", "_a2")
	if replaced := r.Define(replacement); !replaced {
		t.Error("redefinition not reported as replaced")
	}

	graphs := r.Graphs()
	if len(graphs) != 2 {
		t.Fatalf("Graphs() len = %d, want 2", len(graphs))
	}
	if graphs[0].ID != "a" || graphs[0].Title != "A2" {
		t.Errorf("first graph = %s/%s, want a/A2", graphs[0].ID, graphs[0].Title)
	}
	if graphs[1].ID != "b" {
		t.Errorf("second graph = %s, want b", graphs[1].ID)
	}
}
