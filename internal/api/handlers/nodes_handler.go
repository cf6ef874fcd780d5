package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/caresoft/vave-engine/internal/api/types"
	"github.com/caresoft/vave-engine/internal/api/validators"
	"github.com/caresoft/vave-engine/internal/services"
	"github.com/google/uuid"
)

// NodesHandler serves the tree read and the three node mutations.
type NodesHandler struct {
	svc services.BomService
}

func NewNodesHandler(svc services.BomService) *NodesHandler {
	return &NodesHandler{svc: svc}
}

// GetTree returns the active project's fully rolled-up tree, or null when
// no project exists yet.
func (h *NodesHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.GetTree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(tree))
}

func (h *NodesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req types.NodeAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	parentID, err := uuid.Parse(req.ParentID)
	if err != nil {
		writeBadRequest(w, "parent_id is not a valid uuid")
		return
	}
	node, err := h.svc.AddNode(r.Context(), parentID, req.Name, req.MaterialCalcEnabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.Success(node))
}

func (h *NodesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req types.NodeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	nodeID, err := uuid.Parse(req.ID)
	if err != nil {
		writeBadRequest(w, "id is not a valid uuid")
		return
	}
	tree, err := h.svc.UpdateNode(r.Context(), nodeID, services.NodeUpdateInput{
		OwnCost:             req.OwnCost,
		WeightGrams:         req.Weight,
		Material:            req.Material,
		MaterialCalcEnabled: req.MaterialCalcEnabled,
		Quantity:            req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(tree))
}

func (h *NodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req types.NodeDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	nodeID, err := uuid.Parse(req.ID)
	if err != nil {
		writeBadRequest(w, "id is not a valid uuid")
		return
	}
	if err := h.svc.DeleteNode(r.Context(), nodeID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(nil))
}
