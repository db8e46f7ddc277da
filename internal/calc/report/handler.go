package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"Radiant/internal/calc/check"
	"Radiant/internal/calc/dashboard"
)

type Handler struct {
	Defaults dashboard.Input
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	input := Input{Input: h.Defaults}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input, time.Now()); err != nil {
		if check.IsInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("render report")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	buf.WriteTo(w)
}
