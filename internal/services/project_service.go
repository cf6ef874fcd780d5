package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/caresoft/vave-engine/internal/bom"
	"github.com/caresoft/vave-engine/internal/models"
	"github.com/caresoft/vave-engine/internal/repository"
	appErr "github.com/caresoft/vave-engine/pkg/errors"
	"github.com/caresoft/vave-engine/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ProjectService manages project lifecycle: creation (optionally seeded
// from the teardown template), listing with rolled-up summaries, selection,
// completion and hard deletion.
type ProjectService interface {
	CreateProject(ctx context.Context, in *CreateProjectInput) (*models.Project, error)
	ListProjects(ctx context.Context) ([]ProjectSummary, error)
	SelectProject(ctx context.Context, id uuid.UUID) error
	CompleteProject(ctx context.Context, id uuid.UUID) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type CreateProjectInput struct {
	Config bom.VehicleConfig
	// PartCount is the target number of trackable parts; when zero and a
	// template is seeded, it defaults to the seeded node count.
	PartCount   int
	UseTemplate bool
}

// ProjectSummary is the list-view projection with rollups of the root.
type ProjectSummary struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Status       string            `json:"status"`
	TotalCost    float64           `json:"total_cost"`
	TotalWeight  float64           `json:"total_weight"`
	CO2Footprint float64           `json:"co2_footprint"`
	TrackedParts int               `json:"tracked_parts"`
	PartCount    int               `json:"part_count"`
	Progress     int               `json:"progress"`
	Config       bom.VehicleConfig `json:"config"`
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	nodeRepo     repository.NodeRepository
	materialRepo repository.MaterialRepository
	session      *Session
}

func NewProjectService(projectRepo repository.ProjectRepository, nodeRepo repository.NodeRepository, materialRepo repository.MaterialRepository, session *Session) ProjectService {
	return &projectService{projectRepo: projectRepo, nodeRepo: nodeRepo, materialRepo: materialRepo, session: session}
}

var _ ProjectService = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, in *CreateProjectInput) (*models.Project, error) {
	if in.Config.Brand == "" || in.Config.Model == "" {
		return nil, appErr.New(appErr.CodeInvalid, "config requires brand and model")
	}
	if in.PartCount < 0 {
		return nil, appErr.New(appErr.CodeInvalid, "part count cannot be negative")
	}

	var root *bom.Node
	if in.UseTemplate {
		root = bom.TeardownTemplate(in.Config, uuid.NewString)
	} else {
		root = bom.NewNode(uuid.NewString(), in.Config.Brand+" "+in.Config.Model, 0)
	}

	partCount := in.PartCount
	if partCount == 0 && in.UseTemplate {
		partCount = root.Size()
	}

	cfgJSON, err := json.Marshal(in.Config)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "invalid config json")
	}

	name := fmt.Sprintf("%s %s (%d)", in.Config.Brand, in.Config.Model, in.Config.Year)
	project := &models.Project{
		Name:      name,
		Status:    models.StatusInProgress,
		Config:    datatypes.JSON(cfgJSON),
		PartCount: partCount,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	rows, err := treeToRows(project.ID, root)
	if err != nil {
		return nil, err
	}
	if err := s.nodeRepo.CreateMany(ctx, rows); err != nil {
		return nil, err
	}

	s.session.Select(project.ID)
	logger.L().Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("name", name),
		zap.Int("nodes", len(rows)),
		zap.Bool("template", in.UseTemplate),
	)
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := s.materialRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cat := catalogFrom(materials)

	summaries := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		rows, err := s.nodeRepo.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		tree, err := buildTree(rows)
		if err != nil {
			return nil, err
		}
		tree.Recalculate(cat)
		root := tree.Root()

		var cfg bom.VehicleConfig
		if len(p.Config) > 0 {
			_ = json.Unmarshal(p.Config, &cfg)
		}

		tracked := root.TrackedParts()
		summaries = append(summaries, ProjectSummary{
			ID:           p.ID,
			Name:         p.Name,
			Status:       p.Status,
			TotalCost:    root.TotalCost,
			TotalWeight:  root.TotalWeight,
			CO2Footprint: root.CO2Footprint,
			TrackedParts: tracked,
			PartCount:    p.PartCount,
			Progress:     progressPercent(tracked, p.PartCount),
			Config:       cfg,
		})
	}
	return summaries, nil
}

// progressPercent is round(tracked/target*100) clamped to [0, 100]; a zero
// target reads as no progress.
func progressPercent(tracked, target int) int {
	if target <= 0 {
		return 0
	}
	p := int(math.Round(float64(tracked) / float64(target) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (s *projectService) SelectProject(ctx context.Context, id uuid.UUID) error {
	var p models.Project
	if err := s.projectRepo.GetByID(ctx, id, &p); err != nil {
		return err
	}
	s.session.Select(p.ID)
	return nil
}

func (s *projectService) CompleteProject(ctx context.Context, id uuid.UUID) error {
	var p models.Project
	if err := s.projectRepo.GetByID(ctx, id, &p); err != nil {
		return err
	}
	if p.Status == models.StatusCompleted {
		return appErr.New(appErr.CodeAlreadyCompleted, "project is already completed")
	}
	if err := s.projectRepo.UpdateStatus(ctx, id, models.StatusCompleted); err != nil {
		return err
	}
	logger.L().Info("project completed", zap.String("project_id", id.String()))
	return nil
}

func (s *projectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.DeleteWithNodes(ctx, id); err != nil {
		return err
	}
	s.session.Drop(id)
	logger.L().Info("project deleted", zap.String("project_id", id.String()))
	return nil
}
