package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caresoft/vave-engine/internal/models"
	appErr "github.com/caresoft/vave-engine/pkg/errors"
)

func newBomFixture(t *testing.T) (*mockProjectRepo, *mockNodeRepo, *mockMaterialRepo, *Session, BomService) {
	t.Helper()
	projectRepo := new(mockProjectRepo)
	nodeRepo := new(mockNodeRepo)
	materialRepo := new(mockMaterialRepo)
	session := NewSession()
	svc := NewBomService(projectRepo, nodeRepo, materialRepo, session)
	return projectRepo, nodeRepo, materialRepo, session, svc
}

func TestGetTreeNoProjects(t *testing.T) {
	projectRepo, _, _, _, svc := newBomFixture(t)
	projectRepo.On("List", mock.Anything).Return([]models.Project{}, nil)

	root, err := svc.GetTree(context.Background())
	require.NoError(t, err)
	require.Nil(t, root)
	projectRepo.AssertExpectations(t)
}

func TestGetTreeFallsBackToFirstProject(t *testing.T) {
	projectRepo, nodeRepo, materialRepo, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, childID, grandID := threeNodeRows(projectID)

	projectRepo.On("List", mock.Anything).Return([]models.Project{*inProgressProject(projectID)}, nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)
	materialRepo.On("List", mock.Anything).Return(testMaterials(), nil)

	root, err := svc.GetTree(context.Background())
	require.NoError(t, err)
	require.NotNil(t, root)

	// First project becomes the active one.
	active, ok := session.Active()
	require.True(t, ok)
	require.Equal(t, projectID, active)

	// Rollups and display ids are populated on every read.
	require.Equal(t, 140.0, root.TotalCost)
	require.Equal(t, 3000.0, root.TotalWeight)
	require.Equal(t, 2.5, root.CO2Footprint)
	require.Equal(t, "", root.DisplayID)

	child := root.Children[0]
	require.Equal(t, childID.String(), child.ID)
	require.Equal(t, "1", child.DisplayID)
	require.Equal(t, grandID.String(), child.Children[0].ID)
	require.Equal(t, "1.1", child.Children[0].DisplayID)
}

func TestAddNodeEmptyName(t *testing.T) {
	_, _, _, _, svc := newBomFixture(t)
	_, err := svc.AddNode(context.Background(), uuid.New(), "", false)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestAddNodeAppendsAndPersists(t *testing.T) {
	projectRepo, nodeRepo, materialRepo, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, childID, _ := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)
	materialRepo.On("List", mock.Anything).Return(testMaterials(), nil)

	var created *models.Node
	nodeRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Node")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.Node) }).
		Return(nil)

	// materialCalcEnabled is requested but must be coerced off: a fresh
	// node has no metal grade yet.
	node, err := svc.AddNode(context.Background(), childID, "Piston", true)
	require.NoError(t, err)
	require.Equal(t, "Piston", node.Name)
	require.Equal(t, 2, node.Level)
	require.False(t, node.MaterialCalcEnabled)

	require.NotNil(t, created)
	require.Equal(t, projectID, created.ProjectID)
	require.NotNil(t, created.ParentID)
	require.Equal(t, childID, *created.ParentID)
	require.Equal(t, 1, created.Position, "appended after the existing child")
	nodeRepo.AssertExpectations(t)
}

func TestAddNodeUnknownParent(t *testing.T) {
	projectRepo, nodeRepo, _, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, _, _ := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)

	_, err := svc.AddNode(context.Background(), uuid.New(), "Orphan", false)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	nodeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateNodeValidation(t *testing.T) {
	qty := 0
	cases := []struct {
		name string
		in   NodeUpdateInput
		code appErr.Code
	}{
		{"negative cost", NodeUpdateInput{OwnCost: -1, Material: "Steel (HSS)"}, appErr.CodeInvalid},
		{"negative weight", NodeUpdateInput{WeightGrams: -5, Material: "Steel (HSS)"}, appErr.CodeInvalid},
		{"empty material", NodeUpdateInput{}, appErr.CodeInvalid},
		{"zero quantity", NodeUpdateInput{Material: "Steel (HSS)", Quantity: &qty}, appErr.CodeInvalid},
		{"indexing on plastic", NodeUpdateInput{Material: "Polypropylene", MaterialCalcEnabled: true}, appErr.CodeInvalidMaterialState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, _, svc := newBomFixture(t)
			_, err := svc.UpdateNode(context.Background(), uuid.New(), tc.in)
			require.True(t, appErr.IsCode(err, tc.code), "got %v", err)
		})
	}
}

func TestUpdateNodeLockedProject(t *testing.T) {
	projectRepo, nodeRepo, _, session, svc := newBomFixture(t)
	projectID := uuid.New()
	session.Select(projectID)

	locked := inProgressProject(projectID)
	locked.Status = models.StatusCompleted
	projectRepo.On("GetByID", mock.Anything, projectID).Return(locked, nil)

	_, err := svc.UpdateNode(context.Background(), uuid.New(), NodeUpdateInput{Material: "Steel (HSS)"})
	require.True(t, appErr.IsCode(err, appErr.CodeProjectLocked))
	nodeRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateNodeAppliesFields(t *testing.T) {
	projectRepo, nodeRepo, materialRepo, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, _, grandID := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)
	materialRepo.On("List", mock.Anything).Return(testMaterials(), nil)

	qty := 2
	wantFields := map[string]any{
		"own_cost":              120.0,
		"weight_grams":          3000.0,
		"material":              "Aluminum 6061",
		"material_calc_enabled": true,
		"quantity":              2,
	}
	nodeRepo.On("UpdateFields", mock.Anything, grandID, wantFields).Return(nil)

	root, err := svc.UpdateNode(context.Background(), grandID, NodeUpdateInput{
		OwnCost:             120,
		WeightGrams:         3000,
		Material:            "Aluminum 6061",
		MaterialCalcEnabled: true,
		Quantity:            &qty,
	})
	require.NoError(t, err)

	// Returned tree reflects the edit: root cost 0 + (100 + 120).
	require.Equal(t, 220.0, root.TotalCost)
	require.Equal(t, 5000.0, root.TotalWeight)
	// 3kg * qty 2 * 12 kgCO2/kg
	require.Equal(t, 72.0, root.CO2Footprint)
	nodeRepo.AssertExpectations(t)
}

func TestUpdateNodeMissing(t *testing.T) {
	projectRepo, nodeRepo, _, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, _, _ := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)

	_, err := svc.UpdateNode(context.Background(), uuid.New(), NodeUpdateInput{Material: "Unassigned"})
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	nodeRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteNodeRemovesSubtree(t *testing.T) {
	projectRepo, nodeRepo, _, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, childID, grandID := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)
	nodeRepo.On("DeleteByIDs", mock.Anything, projectID, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 2 && ids[0] == childID && ids[1] == grandID
	})).Return(nil)

	require.NoError(t, svc.DeleteNode(context.Background(), childID))
	nodeRepo.AssertExpectations(t)
}

func TestDeleteNodeRootRejected(t *testing.T) {
	projectRepo, nodeRepo, _, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, rootID, _, _ := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)

	err := svc.DeleteNode(context.Background(), rootID)
	require.True(t, appErr.IsCode(err, appErr.CodeCannotDeleteRoot))
	nodeRepo.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportRows(t *testing.T) {
	projectRepo, nodeRepo, materialRepo, session, svc := newBomFixture(t)
	projectID := uuid.New()
	rows, _, _, _ := threeNodeRows(projectID)
	session.Select(projectID)

	projectRepo.On("GetByID", mock.Anything, projectID).Return(inProgressProject(projectID), nil)
	nodeRepo.On("ListByProject", mock.Anything, projectID).Return(rows, nil)
	materialRepo.On("List", mock.Anything).Return(testMaterials(), nil)

	out, name, err := svc.ExportRows(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Acme Falcon (2024)", name)
	require.Len(t, out, 3)
	require.Equal(t, "Vehicle", out[0].Name)
	require.Equal(t, "1.1", out[2].ID)
	require.Equal(t, "2.50", out[2].CO2Footprint)
}

func TestExportRowsNoProjects(t *testing.T) {
	projectRepo, _, _, _, svc := newBomFixture(t)
	projectRepo.On("List", mock.Anything).Return([]models.Project{}, nil)

	_, _, err := svc.ExportRows(context.Background())
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}
