package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/caresoft/vave-engine/internal/api/types"
	"github.com/caresoft/vave-engine/internal/api/validators"
	"github.com/caresoft/vave-engine/internal/services"
	"github.com/google/uuid"
)

type ProjectsHandler struct {
	svc services.ProjectService
}

func NewProjectsHandler(svc services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{svc: svc}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.ListProjects(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(summaries))
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectNewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	project, err := h.svc.CreateProject(r.Context(), &services.CreateProjectInput{
		Config:      req.Config,
		PartCount:   req.PartCount,
		UseTemplate: req.UseTemplate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.Success(project))
}

func (h *ProjectsHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.SelectProject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(nil))
}

func (h *ProjectsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.CompleteProject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(nil))
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteProject(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(nil))
}

func (h *ProjectsHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req types.ProjectIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return uuid.Nil, false
	}
	if err := validators.New().Struct(req); err != nil {
		writeBadRequest(w, err.Error())
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		writeBadRequest(w, "id is not a valid uuid")
		return uuid.Nil, false
	}
	return id, true
}
