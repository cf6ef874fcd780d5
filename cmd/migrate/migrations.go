package main

import (
	"gorm.io/gorm"

	"github.com/caresoft/vave-engine/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.Project{},
		&models.Node{},
		&models.Material{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := enableUUIDExtension(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return addNodeIndexes(db)
}

// enableUUIDExtension ensures UUID generation is available
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addNodeIndexes adds the composite index the ordered tree load relies on
func addNodeIndexes(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_nodes_project_order
		ON nodes(project_id, level, position)
	`).Error
}

// seedMaterials returns the default material master: market price and
// emission factor per kilogram.
func seedMaterials() []models.Material {
	return []models.Material{
		{Name: "Steel (HSS)", PricePerKg: 120.0, CO2PerKg: 2.5},
		{Name: "Aluminum 6061", PricePerKg: 320.0, CO2PerKg: 12.0},
		{Name: "Polypropylene", PricePerKg: 180.0, CO2PerKg: 1.8},
		{Name: "Cast Iron", PricePerKg: 95.0, CO2PerKg: 3.2},
		{Name: "Copper", PricePerKg: 850.0, CO2PerKg: 4.5},
		{Name: "Lithium-Ion", PricePerKg: 1200.0, CO2PerKg: 15.0},
		{Name: "Rubber (EPDM)", PricePerKg: 210.0, CO2PerKg: 2.3},
		{Name: "Composite", PricePerKg: 450.0, CO2PerKg: 3.5},
	}
}
