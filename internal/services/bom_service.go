package services

import (
	"context"

	"github.com/caresoft/vave-engine/internal/bom"
	"github.com/caresoft/vave-engine/internal/models"
	"github.com/caresoft/vave-engine/internal/repository"
	appErr "github.com/caresoft/vave-engine/pkg/errors"
	"github.com/caresoft/vave-engine/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BomService is the mutation orchestrator for the active project's tree:
// it validates edits against the loaded tree, applies exactly one atomic
// write per mutation, and serves fully rolled-up trees to readers.
type BomService interface {
	// GetTree returns the active project's rolled-up tree, or nil when no
	// project exists.
	GetTree(ctx context.Context) (*bom.Node, error)
	// AddNode appends a child under parentID and returns the new node with
	// derived fields populated.
	AddNode(ctx context.Context, parentID uuid.UUID, name string, materialCalcEnabled bool) (*bom.Node, error)
	// UpdateNode applies the field set atomically and returns the refreshed
	// tree.
	UpdateNode(ctx context.Context, nodeID uuid.UUID, in NodeUpdateInput) (*bom.Node, error)
	// DeleteNode removes the subtree rooted at nodeID.
	DeleteNode(ctx context.Context, nodeID uuid.UUID) error
	// ExportRows returns the pre-order flattened projection of the active
	// tree plus the project name for file naming.
	ExportRows(ctx context.Context) ([]bom.ExportRow, string, error)
}

// NodeUpdateInput carries the updatable node fields. Quantity is optional;
// the other four always apply together.
type NodeUpdateInput struct {
	OwnCost             float64
	WeightGrams         float64
	Material            string
	MaterialCalcEnabled bool
	Quantity            *int
}

type bomService struct {
	projectRepo  repository.ProjectRepository
	nodeRepo     repository.NodeRepository
	materialRepo repository.MaterialRepository
	session      *Session
}

func NewBomService(projectRepo repository.ProjectRepository, nodeRepo repository.NodeRepository, materialRepo repository.MaterialRepository, session *Session) BomService {
	return &bomService{projectRepo: projectRepo, nodeRepo: nodeRepo, materialRepo: materialRepo, session: session}
}

var _ BomService = (*bomService)(nil)

// resolveActive returns the active project, falling back to the first
// project when nothing is selected yet. ok is false when no projects exist.
func (s *bomService) resolveActive(ctx context.Context) (*models.Project, bool, error) {
	if id, ok := s.session.Active(); ok {
		var p models.Project
		if err := s.projectRepo.GetByID(ctx, id, &p); err != nil {
			return nil, false, err
		}
		return &p, true, nil
	}
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(projects) == 0 {
		return nil, false, nil
	}
	s.session.Select(projects[0].ID)
	return &projects[0], true, nil
}

func (s *bomService) loadCatalog(ctx context.Context) (bom.Catalog, error) {
	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return bom.Catalog{}, err
	}
	return catalogFrom(materials), nil
}

func (s *bomService) loadTree(ctx context.Context, projectID uuid.UUID) (*bom.Tree, error) {
	rows, err := s.nodeRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return buildTree(rows)
}

// requireEditable resolves the active project and rejects mutations on
// completed projects.
func (s *bomService) requireEditable(ctx context.Context) (*models.Project, error) {
	project, ok, err := s.resolveActive(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErr.New(appErr.CodeNotFound, "no active project")
	}
	if project.Status == models.StatusCompleted {
		return nil, appErr.New(appErr.CodeProjectLocked, "project is completed and locked for edits")
	}
	return project, nil
}

func (s *bomService) GetTree(ctx context.Context) (*bom.Node, error) {
	project, ok, err := s.resolveActive(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	tree, err := s.loadTree(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	tree.Recalculate(cat)
	return tree.Root(), nil
}

func (s *bomService) AddNode(ctx context.Context, parentID uuid.UUID, name string, materialCalcEnabled bool) (*bom.Node, error) {
	if name == "" {
		return nil, appErr.New(appErr.CodeInvalid, "node name cannot be empty")
	}
	project, err := s.requireEditable(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := s.loadTree(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	// A fresh node starts Unassigned, so market indexing stays off until a
	// metal grade is picked, no matter what the caller sent.
	child := bom.NewNode(uuid.NewString(), name, 0)
	child.MaterialCalcEnabled = materialCalcEnabled && bom.IsMetalGrade(child.Material)
	if err := tree.AddChild(parentID.String(), child); err != nil {
		return nil, err
	}

	parent, _ := tree.Parent(child.ID)
	parentUUID, err := uuid.Parse(parent.ID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "parent id is not a uuid")
	}
	row := models.Node{
		ID:        uuid.MustParse(child.ID),
		ProjectID: project.ID,
		ParentID:  &parentUUID,
		Name:      child.Name,
		Level:     child.Level,
		Position:  len(parent.Children) - 1,
		Material:  child.Material,
		Quantity:  child.Quantity,
	}
	if err := s.nodeRepo.Create(ctx, &row); err != nil {
		return nil, err
	}

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	tree.Recalculate(cat)
	logger.L().Info("node added",
		zap.String("project_id", project.ID.String()),
		zap.String("node_id", child.ID),
		zap.Int("level", child.Level),
	)
	return child, nil
}

func (s *bomService) UpdateNode(ctx context.Context, nodeID uuid.UUID, in NodeUpdateInput) (*bom.Node, error) {
	if in.OwnCost < 0 {
		return nil, appErr.New(appErr.CodeInvalid, "own cost cannot be negative")
	}
	if in.WeightGrams < 0 {
		return nil, appErr.New(appErr.CodeInvalid, "weight cannot be negative")
	}
	if in.Material == "" {
		return nil, appErr.New(appErr.CodeInvalid, "material cannot be empty")
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		return nil, appErr.New(appErr.CodeInvalid, "quantity must be at least 1")
	}
	if in.MaterialCalcEnabled && !bom.IsMetalGrade(in.Material) {
		return nil, appErr.Newf(appErr.CodeInvalidMaterialState, "material %q is not a recognized metal grade", in.Material)
	}

	project, err := s.requireEditable(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := s.loadTree(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	node, ok := tree.Find(nodeID.String())
	if !ok {
		return nil, appErr.Newf(appErr.CodeNotFound, "node %s not found", nodeID)
	}

	node.OwnCost = in.OwnCost
	node.WeightGrams = in.WeightGrams
	node.Material = in.Material
	node.MaterialCalcEnabled = in.MaterialCalcEnabled
	fields := map[string]any{
		"own_cost":              in.OwnCost,
		"weight_grams":          in.WeightGrams,
		"material":              in.Material,
		"material_calc_enabled": in.MaterialCalcEnabled,
	}
	if in.Quantity != nil {
		node.Quantity = *in.Quantity
		fields["quantity"] = *in.Quantity
	}
	if err := s.nodeRepo.UpdateFields(ctx, nodeID, fields); err != nil {
		return nil, err
	}

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	tree.Recalculate(cat)
	logger.L().Info("node updated",
		zap.String("project_id", project.ID.String()),
		zap.String("node_id", nodeID.String()),
	)
	return tree.Root(), nil
}

func (s *bomService) DeleteNode(ctx context.Context, nodeID uuid.UUID) error {
	project, err := s.requireEditable(ctx)
	if err != nil {
		return err
	}
	tree, err := s.loadTree(ctx, project.ID)
	if err != nil {
		return err
	}
	removed, err := tree.Remove(nodeID.String())
	if err != nil {
		return err
	}
	var ids []uuid.UUID
	removed.Walk(func(n *bom.Node) bool {
		if id, perr := uuid.Parse(n.ID); perr == nil {
			ids = append(ids, id)
		}
		return true
	})
	if err := s.nodeRepo.DeleteByIDs(ctx, project.ID, ids); err != nil {
		return err
	}
	logger.L().Info("node deleted",
		zap.String("project_id", project.ID.String()),
		zap.String("node_id", nodeID.String()),
		zap.Int("subtree_size", len(ids)),
	)
	return nil
}

func (s *bomService) ExportRows(ctx context.Context) ([]bom.ExportRow, string, error) {
	project, ok, err := s.resolveActive(ctx)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", appErr.New(appErr.CodeNotFound, "no active project")
	}
	tree, err := s.loadTree(ctx, project.ID)
	if err != nil {
		return nil, "", err
	}
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, "", err
	}
	tree.Recalculate(cat)
	return bom.Flatten(tree.Root()), project.Name, nil
}
