package models

import (
	"time"

	"github.com/google/uuid"
)

// Node is one row of a project's BOM tree, stored as adjacency rows.
// Position orders siblings; insertion order is display order. Derived
// rollup figures are never persisted, they are recomputed on every read.
type Node struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;index;not null" json:"project_id" validate:"required"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`

	Name                string  `gorm:"not null" json:"name" validate:"required"`
	Level               int     `gorm:"not null" json:"level" validate:"gte=0,lte=6"`
	Position            int     `gorm:"not null;default:0" json:"position"`
	Material            string  `gorm:"type:varchar(64);not null;default:'Unassigned'" json:"material"`
	MaterialCalcEnabled bool    `gorm:"not null;default:false" json:"material_calc_enabled"`
	OwnCost             float64 `gorm:"not null;default:0" json:"own_cost" validate:"gte=0"`
	WeightGrams         float64 `gorm:"column:weight_grams;not null;default:0" json:"weight" validate:"gte=0"`
	Quantity            int     `gorm:"not null;default:1" json:"quantity" validate:"gte=1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
