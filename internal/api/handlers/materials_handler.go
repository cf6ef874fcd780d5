package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/caresoft/vave-engine/internal/api/types"
	"github.com/caresoft/vave-engine/internal/services"
)

type MaterialsHandler struct {
	svc services.MaterialService
}

func NewMaterialsHandler(svc services.MaterialService) *MaterialsHandler {
	return &MaterialsHandler{svc: svc}
}

func (h *MaterialsHandler) List(w http.ResponseWriter, r *http.Request) {
	prices, err := h.svc.Prices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(prices))
}

func (h *MaterialsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req types.MaterialsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid json")
		return
	}
	if err := h.svc.UpdatePrices(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Success(nil))
}
