package services

import (
	"github.com/caresoft/vave-engine/internal/bom"
	"github.com/caresoft/vave-engine/internal/models"
	appErr "github.com/caresoft/vave-engine/pkg/errors"
	"github.com/google/uuid"
)

// buildTree assembles persisted adjacency rows into an indexed bom.Tree.
// Rows arrive ordered by (level, position), so parents are linked before
// their children and sibling order is preserved.
func buildTree(rows []models.Node) (*bom.Tree, error) {
	if len(rows) == 0 {
		return nil, appErr.New(appErr.CodeInternal, "project has no node rows")
	}

	byID := make(map[uuid.UUID]*bom.Node, len(rows))
	var root *bom.Node
	for i := range rows {
		row := &rows[i]
		n := &bom.Node{
			ID:                  row.ID.String(),
			Name:                row.Name,
			Level:               row.Level,
			Material:            row.Material,
			MaterialCalcEnabled: row.MaterialCalcEnabled,
			OwnCost:             row.OwnCost,
			WeightGrams:         row.WeightGrams,
			Quantity:            row.Quantity,
		}
		byID[row.ID] = n
		if row.ParentID == nil {
			if root != nil {
				return nil, appErr.New(appErr.CodeInternal, "project has multiple root nodes")
			}
			root = n
		}
	}
	if root == nil {
		return nil, appErr.New(appErr.CodeInternal, "project has no root node")
	}
	for i := range rows {
		row := &rows[i]
		if row.ParentID == nil {
			continue
		}
		parent, ok := byID[*row.ParentID]
		if !ok {
			return nil, appErr.Newf(appErr.CodeInternal, "node %s references missing parent", row.ID)
		}
		parent.Children = append(parent.Children, byID[row.ID])
	}
	return bom.NewTree(root)
}

// treeToRows flattens an in-memory tree into persistable rows, assigning
// sibling positions from insertion order.
func treeToRows(projectID uuid.UUID, root *bom.Node) ([]models.Node, error) {
	var rows []models.Node
	var walk func(n *bom.Node, parentID *uuid.UUID, position int) error
	walk = func(n *bom.Node, parentID *uuid.UUID, position int) error {
		id, err := uuid.Parse(n.ID)
		if err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "node id is not a uuid")
		}
		rows = append(rows, models.Node{
			ID:                  id,
			ProjectID:           projectID,
			ParentID:            parentID,
			Name:                n.Name,
			Level:               n.Level,
			Position:            position,
			Material:            n.Material,
			MaterialCalcEnabled: n.MaterialCalcEnabled,
			OwnCost:             n.OwnCost,
			WeightGrams:         n.WeightGrams,
			Quantity:            n.Quantity,
		})
		for i, c := range n.Children {
			if err := walk(c, &id, i); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, nil, 0); err != nil {
		return nil, err
	}
	return rows, nil
}

// catalogFrom converts material rows into the calculator's catalog shape.
func catalogFrom(materials []models.Material) bom.Catalog {
	cat := bom.Catalog{
		Prices:     make(map[string]float64, len(materials)),
		CO2Factors: make(map[string]float64, len(materials)),
	}
	for _, m := range materials {
		cat.Prices[m.Name] = m.PricePerKg
		cat.CO2Factors[m.Name] = m.CO2PerKg
	}
	return cat
}
