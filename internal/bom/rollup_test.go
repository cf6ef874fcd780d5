package bom

import (
	"math/rand"
	"strconv"
	"testing"
)

func testCatalog() Catalog {
	return Catalog{
		Prices: map[string]float64{
			"Steel (HSS)":   50.0,
			"Aluminum 6061": 320.0,
			"Copper":        850.0,
			"Polypropylene": 180.0,
		},
		CO2Factors: map[string]float64{
			"Steel (HSS)":   2.5,
			"Aluminum 6061": 12.0,
			"Copper":        4.5,
			"Polypropylene": 1.8,
		},
	}
}

func mustTree(t *testing.T, root *Node) *Tree {
	t.Helper()
	tree, err := NewTree(root)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	return tree
}

func TestSteelPartScenario(t *testing.T) {
	root := NewNode("r", "Vehicle", 0)
	a := NewNode("a", "Steel Part", 1)
	a.OwnCost = 100
	a.WeightGrams = 2000
	a.Material = "Steel (HSS)"
	a.MaterialCalcEnabled = true
	root.Children = []*Node{a}

	cat := testCatalog()
	tree := mustTree(t, root)
	tree.Recalculate(cat)

	if got := BenchmarkValue(a, cat); got != 100 {
		t.Fatalf("benchmark value = %v, want 100", got)
	}
	if got := Variance(a, cat); got != 0 {
		t.Fatalf("variance = %v, want 0", got)
	}
	if got := Efficiency(a, cat); got != 100 {
		t.Fatalf("efficiency = %v, want 100", got)
	}
	if root.TotalCost != 100 {
		t.Fatalf("root total cost = %v, want 100", root.TotalCost)
	}
	if root.TotalWeight != 2000 {
		t.Fatalf("root total weight = %v, want 2000", root.TotalWeight)
	}
}

func TestDeleteOnlyChildZeroesRollup(t *testing.T) {
	root := NewNode("r", "Vehicle", 0)
	a := NewNode("a", "Part", 1)
	a.OwnCost = 250
	root.Children = []*Node{a}

	tree := mustTree(t, root)
	if _, err := tree.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tree.Recalculate(testCatalog())

	if len(root.Children) != 0 {
		t.Fatalf("expected no children, got %d", len(root.Children))
	}
	if root.TotalCost != 0 {
		t.Fatalf("root total cost = %v, want 0", root.TotalCost)
	}
}

// randomTree builds a tree with random fan-out, costs, weights and materials.
func randomTree(rng *rand.Rand) *Node {
	materials := []string{Unassigned, "Steel (HSS)", "Aluminum 6061", "Copper", "Polypropylene"}
	id := 0
	var build func(level int) *Node
	build = func(level int) *Node {
		id++
		n := NewNode("n"+strconv.Itoa(id), "Node "+strconv.Itoa(id), level)
		n.OwnCost = float64(rng.Intn(5000))
		n.WeightGrams = float64(rng.Intn(20000))
		n.Quantity = 1 + rng.Intn(5)
		n.Material = materials[rng.Intn(len(materials))]
		n.MaterialCalcEnabled = IsMetalGrade(n.Material) && rng.Intn(2) == 0
		if level < MaxLevel {
			for i := 0; i < rng.Intn(4); i++ {
				n.Children = append(n.Children, build(level+1))
			}
		}
		return n
	}
	return build(0)
}

func TestRollupRecursionOnRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cat := testCatalog()
	for i := 0; i < 50; i++ {
		root := randomTree(rng)
		tree := mustTree(t, root)
		tree.Recalculate(cat)

		root.Walk(func(n *Node) bool {
			wantCost := n.OwnCost
			wantWeight := n.WeightGrams
			wantCO2 := 0.0
			if f, ok := cat.CO2Factor(n.Material); ok {
				wantCO2 = n.WeightGrams / 1000.0 * float64(n.Quantity) * f
			}
			for _, c := range n.Children {
				wantCost += c.TotalCost
				wantWeight += c.TotalWeight
				wantCO2 += c.CO2Footprint
			}
			if n.TotalCost != wantCost {
				t.Fatalf("node %s: total cost %v, want %v", n.ID, n.TotalCost, wantCost)
			}
			if n.TotalWeight != wantWeight {
				t.Fatalf("node %s: total weight %v, want %v", n.ID, n.TotalWeight, wantWeight)
			}
			if n.CO2Footprint != wantCO2 {
				t.Fatalf("node %s: co2 %v, want %v", n.ID, n.CO2Footprint, wantCO2)
			}
			if e := Efficiency(n, cat); e < 0 || e > 100 {
				t.Fatalf("node %s: efficiency %v out of [0,100]", n.ID, e)
			}
			return true
		})
	}
}

func TestEfficiencyClamping(t *testing.T) {
	cat := testCatalog()

	free := NewNode("f", "Free", 0)
	if got := Efficiency(free, cat); got != 100 {
		t.Fatalf("zero-cost efficiency = %v, want 100", got)
	}

	// Benchmark far above quote clamps at 100.
	over := NewNode("o", "Over", 0)
	over.OwnCost = 1
	over.WeightGrams = 100000
	over.Material = "Copper"
	over.MaterialCalcEnabled = true
	if got := Efficiency(over, cat); got != 100 {
		t.Fatalf("over-performing efficiency = %v, want 100", got)
	}

	// No benchmark at all reads 0 for a costed part.
	costed := NewNode("c", "Costed", 0)
	costed.OwnCost = 500
	if got := Efficiency(costed, cat); got != 0 {
		t.Fatalf("no-benchmark efficiency = %v, want 0", got)
	}
}

func TestCatalogUpdateMovesBenchmarks(t *testing.T) {
	indexed := NewNode("i", "Indexed", 0)
	indexed.WeightGrams = 1000
	indexed.Material = "Steel (HSS)"
	indexed.MaterialCalcEnabled = true

	manual := NewNode("m", "Manual", 0)
	manual.WeightGrams = 1000
	manual.Material = "Steel (HSS)"
	manual.MaterialCalcEnabled = false

	cat := testCatalog()
	before := BenchmarkValue(indexed, cat)
	cat.Prices["Steel (HSS)"] = 75.0

	if got := BenchmarkValue(indexed, cat); got == before || got != 75 {
		t.Fatalf("indexed benchmark = %v, want 75 after price change", got)
	}
	if got := BenchmarkValue(manual, cat); got != 0 {
		t.Fatalf("non-indexed benchmark = %v, want 0 regardless of price", got)
	}
}

func TestCO2UsesQuantityAndFactor(t *testing.T) {
	root := NewNode("r", "Assy", 0)
	steel := NewNode("s", "Bracket", 1)
	steel.WeightGrams = 2000
	steel.Quantity = 2
	steel.Material = "Steel (HSS)"
	unassigned := NewNode("u", "Misc", 1)
	unassigned.WeightGrams = 5000
	root.Children = []*Node{steel, unassigned}

	tree := mustTree(t, root)
	tree.Recalculate(testCatalog())

	// 2kg * qty 2 * 2.5 kgCO2/kg
	if steel.CO2Footprint != 10 {
		t.Fatalf("steel co2 = %v, want 10", steel.CO2Footprint)
	}
	if unassigned.CO2Footprint != 0 {
		t.Fatalf("unassigned co2 = %v, want 0", unassigned.CO2Footprint)
	}
	if root.CO2Footprint != 10 {
		t.Fatalf("root co2 = %v, want 10", root.CO2Footprint)
	}
}

func TestDisplayIDsDeterministicAndUnique(t *testing.T) {
	root := NewNode("r", "Vehicle", 0)
	a := NewNode("a", "A", 1)
	b := NewNode("b", "B", 1)
	a1 := NewNode("a1", "A1", 2)
	a2 := NewNode("a2", "A2", 2)
	a.Children = []*Node{a1, a2}
	root.Children = []*Node{a, b}

	tree := mustTree(t, root)
	cat := testCatalog()
	tree.Recalculate(cat)

	want := map[string]string{"r": "", "a": "1", "b": "2", "a1": "1.1", "a2": "1.2"}
	seen := map[string]bool{}
	root.Walk(func(n *Node) bool {
		if n.DisplayID != want[n.ID] {
			t.Fatalf("node %s display id = %q, want %q", n.ID, n.DisplayID, want[n.ID])
		}
		if n.ID != "r" && seen[n.DisplayID] {
			t.Fatalf("duplicate display id %q", n.DisplayID)
		}
		seen[n.DisplayID] = true
		return true
	})

	// Recompute is idempotent.
	tree.Recalculate(cat)
	if a2.DisplayID != "1.2" {
		t.Fatalf("display id changed on recompute: %q", a2.DisplayID)
	}

	// Removing a leading sibling shifts ordinals.
	if _, err := tree.Remove("a1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tree.Recalculate(cat)
	if a2.DisplayID != "1.1" {
		t.Fatalf("after sibling removal display id = %q, want 1.1", a2.DisplayID)
	}
}
