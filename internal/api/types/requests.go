package types

import "github.com/caresoft/vave-engine/internal/bom"

type NodeAddRequest struct {
	ParentID            string `json:"parent_id" validate:"required,uuid4"`
	Name                string `json:"name" validate:"required"`
	MaterialCalcEnabled bool   `json:"material_calc_enabled"`
}

type NodeUpdateRequest struct {
	ID                  string  `json:"id" validate:"required,uuid4"`
	OwnCost             float64 `json:"own_cost" validate:"gte=0"`
	Weight              float64 `json:"weight" validate:"gte=0"`
	Material            string  `json:"material" validate:"required"`
	MaterialCalcEnabled bool    `json:"material_calc_enabled"`
	Quantity            *int    `json:"quantity" validate:"omitempty,gte=1"`
}

type NodeDeleteRequest struct {
	ID string `json:"id" validate:"required,uuid4"`
}

type ProjectNewRequest struct {
	Config      bom.VehicleConfig `json:"config" validate:"required"`
	PartCount   int               `json:"part_count" validate:"gte=0"`
	UseTemplate bool              `json:"use_template"`
}

type ProjectIDRequest struct {
	ID string `json:"id" validate:"required,uuid4"`
}

type MaterialsUpdateRequest map[string]float64
