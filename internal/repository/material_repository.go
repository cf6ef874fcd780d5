package repository

import (
	"context"

	"github.com/caresoft/vave-engine/internal/models"
	appErr "github.com/caresoft/vave-engine/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository interface {
	List(ctx context.Context) ([]models.Material, error)
	UpsertPrices(ctx context.Context, changes map[string]float64) error
	Seed(ctx context.Context, materials []models.Material) error
}

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) List(ctx context.Context) ([]models.Material, error) {
	var out []models.Material
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list materials failed")
	}
	return out, nil
}

// UpsertPrices replaces or inserts price entries in one transaction. A new
// material enters with a zero emission factor until seeded otherwise.
func (r *materialRepository) UpsertPrices(ctx context.Context, changes map[string]float64) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return appErr.Wrap(tx.Error, appErr.CodeInternal, "begin transaction failed")
	}
	for name, price := range changes {
		m := models.Material{Name: name, PricePerKg: price}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"price_per_kg": price}),
		}).Create(&m).Error; err != nil {
			tx.Rollback()
			return appErr.Wrap(err, appErr.CodeInternal, "upsert material price failed")
		}
	}
	if err := tx.Commit().Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "commit transaction failed")
	}
	return nil
}

// Seed inserts catalog entries, skipping names that already exist so local
// price edits survive re-running migrations.
func (r *materialRepository) Seed(ctx context.Context, materials []models.Material) error {
	if len(materials) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&materials).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "seed materials failed")
	}
	return nil
}
