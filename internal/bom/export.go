package bom

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// ExportRow is one line of the flattened BOM projection, in pre-order.
type ExportRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	LevelName    string  `json:"level"`
	Material     string  `json:"material"`
	WeightGrams  float64 `json:"weight_g"`
	Quantity     int     `json:"quantity"`
	OwnCost      float64 `json:"own_cost"`
	TotalCost    float64 `json:"total_cost"`
	CO2Footprint string  `json:"co2_kg"` // fixed two decimals
}

// Flatten projects a rolled-up tree into ordered export rows via a
// pre-order walk, children in insertion order.
func Flatten(root *Node) []ExportRow {
	rows := make([]ExportRow, 0, root.Size())
	root.Walk(func(n *Node) bool {
		rows = append(rows, ExportRow{
			ID:           n.DisplayID,
			Name:         n.Name,
			LevelName:    LevelName(n.Level),
			Material:     n.Material,
			WeightGrams:  n.WeightGrams,
			Quantity:     n.Quantity,
			OwnCost:      n.OwnCost,
			TotalCost:    n.TotalCost,
			CO2Footprint: strconv.FormatFloat(n.CO2Footprint, 'f', 2, 64),
		})
		return true
	})
	return rows
}

var csvHeader = []string{"ID", "Name", "Level", "Material", "Weight(g)", "Qty", "Own Cost", "Total Cost", "CO2 Footprint(kg)"}

// RenderCSV writes the export rows as CSV with the standard header.
func RenderCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.Name,
			r.LevelName,
			r.Material,
			strconv.FormatFloat(r.WeightGrams, 'f', -1, 64),
			strconv.Itoa(r.Quantity),
			strconv.FormatFloat(r.OwnCost, 'f', -1, 64),
			strconv.FormatFloat(r.TotalCost, 'f', -1, 64),
			r.CO2Footprint,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
