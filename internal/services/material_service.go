package services

import (
	"context"

	"github.com/caresoft/vave-engine/internal/bom"
	"github.com/caresoft/vave-engine/internal/repository"
	"github.com/caresoft/vave-engine/pkg/logger"
	"go.uber.org/zap"
)

// MaterialService exposes the process-wide material master. Price updates
// take effect on the next tree read of every project, since rollups derive
// from the live catalog.
type MaterialService interface {
	Prices(ctx context.Context) (map[string]float64, error)
	UpdatePrices(ctx context.Context, changes map[string]float64) error
}

type materialService struct {
	materialRepo repository.MaterialRepository
}

func NewMaterialService(materialRepo repository.MaterialRepository) MaterialService {
	return &materialService{materialRepo: materialRepo}
}

var _ MaterialService = (*materialService)(nil)

func (s *materialService) Prices(ctx context.Context) (map[string]float64, error) {
	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(materials))
	for _, m := range materials {
		prices[m.Name] = m.PricePerKg
	}
	return prices, nil
}

func (s *materialService) UpdatePrices(ctx context.Context, changes map[string]float64) error {
	if err := bom.ValidatePriceUpdate(changes); err != nil {
		return err
	}
	if err := s.materialRepo.UpsertPrices(ctx, changes); err != nil {
		return err
	}
	logger.L().Info("material prices updated", zap.Int("entries", len(changes)))
	return nil
}
