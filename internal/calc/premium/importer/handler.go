package importer

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"Radiant/internal/calc/dashboard"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Defaults       dashboard.Input
	MaxUploadBytes int64
}

type exportRequest struct {
	Items []dashboard.Input `json:"items"`
}

// Import accepts a multipart upload in the "file" field.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := Read(file, h.Defaults)
	if errors.Is(err, ErrEmptySheet) {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Evaluate(rows))
}

// Export calculates the posted inputs and returns them as a workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Items) == 0 {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rows := make([]Row, len(req.Items))
	for i, item := range req.Items {
		rows[i] = Row{Line: i + 2, Input: item}
	}
	Evaluate(rows)

	f, err := Write(rows)
	if err != nil {
		log.WithError(err).Error("build export workbook")
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", "attachment; filename=\"heat_exchange.xlsx\"")
	if err := f.Write(w); err != nil {
		log.WithError(err).Error("write export workbook")
	}
}
