package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project status values. A Completed project is terminal for structural
// edits but can still be deleted.
const (
	StatusInProgress = "In-Progress"
	StatusCompleted  = "Completed"
)

// Project wraps exactly one BOM node tree plus vehicle metadata. Rows are
// hard-deleted: project deletion is an unconditional removal of the project
// and its whole tree.
type Project struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string         `gorm:"not null" json:"name" validate:"required"`
	Status    string         `gorm:"type:varchar(32);not null;default:'In-Progress';index" json:"status"`
	Config    datatypes.JSON `gorm:"type:jsonb" json:"config"`
	PartCount int            `gorm:"not null;default:0" json:"part_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
