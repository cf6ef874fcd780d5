package bom

import "strconv"

// Rollup rules. One bottom-up pass derives every node's total cost, total
// weight, CO2 footprint and display id from raw fields and the catalog.
// The pass runs after every mutation and before every read, so readers
// never see a stale aggregate.

// BenchmarkRate returns the catalog rate per kg when market indexing is
// enabled for the node, zero otherwise.
func BenchmarkRate(n *Node, cat Catalog) float64 {
	if !n.MaterialCalcEnabled {
		return 0
	}
	return cat.Price(n.Material)
}

// BenchmarkValue is the reference cost of the node's own mass at the market
// rate. Weight is stored in grams and priced per kilogram.
func BenchmarkValue(n *Node, cat Catalog) float64 {
	return n.WeightGrams / 1000.0 * BenchmarkRate(n, cat)
}

// Variance is quoted own cost minus benchmark value. Positive means the
// quote is above the market reference.
func Variance(n *Node, cat Catalog) float64 {
	return n.OwnCost - BenchmarkValue(n, cat)
}

// Efficiency is benchmark value over own cost as a percentage, clamped to
// [0, 100]. A node with no quoted cost reads 100. The clamp hides
// over-performance beyond 100%; variance carries the unclamped signal.
func Efficiency(n *Node, cat Catalog) float64 {
	if n.OwnCost == 0 {
		return 100
	}
	e := BenchmarkValue(n, cat) / n.OwnCost * 100
	if e < 0 {
		return 0
	}
	if e > 100 {
		return 100
	}
	return e
}

// Recalculate recomputes the derived fields of the whole tree in one
// bottom-up pass: total_cost and total_weight as plain sums over own value
// plus children, co2_footprint as the quantity-weighted emission sum, and
// display ids from sibling ordinals.
func (t *Tree) Recalculate(cat Catalog) {
	recalc(t.root, cat, "")
}

func recalc(n *Node, cat Catalog, prefix string) {
	n.DisplayID = prefix

	ownCO2 := 0.0
	if factor, ok := cat.CO2Factor(n.Material); ok {
		ownCO2 = n.WeightGrams / 1000.0 * float64(n.Quantity) * factor
	}

	totalCost := n.OwnCost
	totalWeight := n.WeightGrams
	totalCO2 := ownCO2
	for i, c := range n.Children {
		childPrefix := childDisplayID(prefix, i+1)
		recalc(c, cat, childPrefix)
		totalCost += c.TotalCost
		totalWeight += c.TotalWeight
		totalCO2 += c.CO2Footprint
	}

	n.TotalCost = totalCost
	n.TotalWeight = totalWeight
	n.CO2Footprint = totalCO2
}

// childDisplayID forms the dot-joined ordinal path. The root carries an
// empty display id, its children read "1", "2", ... and so on down.
func childDisplayID(parentPrefix string, ordinal int) string {
	s := strconv.Itoa(ordinal)
	if parentPrefix == "" {
		return s
	}
	return parentPrefix + "." + s
}
