// Package bom implements the BOM tree model and the cost/weight/CO2
// rollup engine. It is pure in-memory computation: persistence and HTTP
// live in the repository and api packages.
package bom

// MaxLevel is the deepest tier of the teardown hierarchy. Nodes at this
// level cannot gain children.
const MaxLevel = 6

// Unassigned is the sentinel material for nodes without a material pick.
const Unassigned = "Unassigned"

// LevelNames maps a node level to its semantic tier.
var LevelNames = [MaxLevel + 1]string{
	"Vehicle",
	"System",
	"Subsystem",
	"Component",
	"Part",
	"Sub-Part",
	"Fastener/Seal",
}

// LevelName returns the tier name for a level, or "Node" out of range.
func LevelName(level int) string {
	if level < 0 || level > MaxLevel {
		return "Node"
	}
	return LevelNames[level]
}

// metalGrades are the materials eligible for market-indexed benchmarking.
var metalGrades = map[string]struct{}{
	"Steel (HSS)":   {},
	"Aluminum 6061": {},
	"Cast Iron":     {},
	"Copper":        {},
}

// IsMetalGrade reports whether the material may have MaterialCalcEnabled set.
func IsMetalGrade(material string) bool {
	_, ok := metalGrades[material]
	return ok
}

// Node is a node of the BOM tree. Children are ordered; insertion order is
// display order. TotalCost, TotalWeight, CO2Footprint and DisplayID are
// derived and filled in by Recalculate, never stored.
type Node struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DisplayID           string  `json:"display_id"`
	Level               int     `json:"level"`
	Material            string  `json:"material"`
	MaterialCalcEnabled bool    `json:"material_calc_enabled"`
	OwnCost             float64 `json:"own_cost"`
	WeightGrams         float64 `json:"weight"`
	Quantity            int     `json:"quantity"`
	Children            []*Node `json:"children"`

	TotalCost    float64 `json:"total_cost"`
	TotalWeight  float64 `json:"total_weight"`
	CO2Footprint float64 `json:"co2_footprint"`
}

// NewNode returns a node with the defaults every freshly added node gets:
// unassigned material, zero cost and weight, quantity one.
func NewNode(id, name string, level int) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		Level:    level,
		Material: Unassigned,
		Quantity: 1,
	}
}

// Walk visits the subtree rooted at n in pre-order, children in insertion
// order. Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// TrackedParts counts nodes in the subtree with a non-zero own cost, i.e.
// parts that have actually been estimated.
func (n *Node) TrackedParts() int {
	count := 0
	n.Walk(func(node *Node) bool {
		if node.OwnCost > 0 {
			count++
		}
		return true
	})
	return count
}
