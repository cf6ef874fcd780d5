package repository

import (
	"context"

	"github.com/caresoft/vave-engine/internal/models"
	appErr "github.com/caresoft/vave-engine/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NodeRepository interface {
	BaseRepository[models.Node]
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Node, error)
	CreateMany(ctx context.Context, nodes []models.Node) error
	NextPosition(ctx context.Context, parentID uuid.UUID) (int, error)
	UpdateFields(ctx context.Context, nodeID uuid.UUID, fields map[string]any) error
	DeleteByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error
}

type nodeRepository struct {
	BaseRepository[models.Node]
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &nodeRepository{BaseRepository: NewBaseRepository[models.Node](db), db: db}
}

// ListByProject returns all rows of a project's tree ordered for stable
// assembly: parents before children is not guaranteed, but sibling order is.
func (r *nodeRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Node, error) {
	var out []models.Node
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("level ASC, position ASC, created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list nodes failed")
	}
	return out, nil
}

// CreateMany inserts a batch of node rows in one transaction, used when a
// project is seeded from the teardown template.
func (r *nodeRepository) CreateMany(ctx context.Context, nodes []models.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(nodes, 200).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create nodes failed")
	}
	return nil
}

// NextPosition returns the sibling position for a node appended under parent.
func (r *nodeRepository) NextPosition(ctx context.Context, parentID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Node{}).Where("parent_id = ?", parentID).Count(&count).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count children failed")
	}
	return int(count), nil
}

// UpdateFields applies a field set to one node row in a single UPDATE, so
// readers see either the old row or the fully updated one.
func (r *nodeRepository) UpdateFields(ctx context.Context, nodeID uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Node{}).Where("id = ?", nodeID).Updates(fields)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update node failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "node not found")
	}
	return nil
}

// DeleteByIDs removes a subtree's rows in one transaction. The id set is
// computed by the caller from the in-memory tree.
func (r *nodeRepository) DeleteByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return appErr.Wrap(tx.Error, appErr.CodeInternal, "begin transaction failed")
	}
	res := tx.Where("project_id = ? AND id IN ?", projectID, ids).Delete(&models.Node{})
	if res.Error != nil {
		tx.Rollback()
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete subtree failed")
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return appErr.New(appErr.CodeNotFound, "node not found")
	}
	if err := tx.Commit().Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "commit transaction failed")
	}
	return nil
}
