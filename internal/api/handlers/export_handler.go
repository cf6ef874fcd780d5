package handlers

import (
	"net/http"
	"strings"

	"github.com/caresoft/vave-engine/internal/bom"
	"github.com/caresoft/vave-engine/internal/services"
)

// ExportHandler serves the flattened BOM projection as CSV.
type ExportHandler struct {
	svc services.BomService
}

func NewExportHandler(svc services.BomService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) BOM(w http.ResponseWriter, r *http.Request) {
	rows, projectName, err := h.svc.ExportRows(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := bom.RenderCSV(rows)
	if err != nil {
		writeError(w, err)
		return
	}
	filename := "BOM_Export_" + strings.ReplaceAll(projectName, " ", "_") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
