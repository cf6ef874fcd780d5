package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/caresoft/vave-engine/internal/bom"
	"github.com/caresoft/vave-engine/internal/models"
	"github.com/caresoft/vave-engine/internal/services"
)

// stubBomService lets each test inject just the behavior it exercises.
type stubBomService struct {
	getTree    func(ctx context.Context) (*bom.Node, error)
	addNode    func(ctx context.Context, parentID uuid.UUID, name string, mce bool) (*bom.Node, error)
	updateNode func(ctx context.Context, nodeID uuid.UUID, in services.NodeUpdateInput) (*bom.Node, error)
	deleteNode func(ctx context.Context, nodeID uuid.UUID) error
	exportRows func(ctx context.Context) ([]bom.ExportRow, string, error)
}

func (s *stubBomService) GetTree(ctx context.Context) (*bom.Node, error) {
	return s.getTree(ctx)
}

func (s *stubBomService) AddNode(ctx context.Context, parentID uuid.UUID, name string, mce bool) (*bom.Node, error) {
	return s.addNode(ctx, parentID, name, mce)
}

func (s *stubBomService) UpdateNode(ctx context.Context, nodeID uuid.UUID, in services.NodeUpdateInput) (*bom.Node, error) {
	return s.updateNode(ctx, nodeID, in)
}

func (s *stubBomService) DeleteNode(ctx context.Context, nodeID uuid.UUID) error {
	return s.deleteNode(ctx, nodeID)
}

func (s *stubBomService) ExportRows(ctx context.Context) ([]bom.ExportRow, string, error) {
	return s.exportRows(ctx)
}

type stubProjectService struct {
	create   func(ctx context.Context, in *services.CreateProjectInput) (*models.Project, error)
	list     func(ctx context.Context) ([]services.ProjectSummary, error)
	selectFn func(ctx context.Context, id uuid.UUID) error
	complete func(ctx context.Context, id uuid.UUID) error
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (s *stubProjectService) CreateProject(ctx context.Context, in *services.CreateProjectInput) (*models.Project, error) {
	return s.create(ctx, in)
}

func (s *stubProjectService) ListProjects(ctx context.Context) ([]services.ProjectSummary, error) {
	return s.list(ctx)
}

func (s *stubProjectService) SelectProject(ctx context.Context, id uuid.UUID) error {
	return s.selectFn(ctx, id)
}

func (s *stubProjectService) CompleteProject(ctx context.Context, id uuid.UUID) error {
	return s.complete(ctx, id)
}

func (s *stubProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.delete(ctx, id)
}

type stubMaterialService struct {
	prices func(ctx context.Context) (map[string]float64, error)
	update func(ctx context.Context, changes map[string]float64) error
}

func (s *stubMaterialService) Prices(ctx context.Context) (map[string]float64, error) {
	return s.prices(ctx)
}

func (s *stubMaterialService) UpdatePrices(ctx context.Context, changes map[string]float64) error {
	return s.update(ctx, changes)
}
