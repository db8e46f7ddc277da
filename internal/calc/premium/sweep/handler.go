package sweep

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"Radiant/internal/calc/dashboard"
)

type Handler struct {
	Defaults dashboard.Input
	MaxSteps int
}

func (h *Handler) decode(r *http.Request) (Input, error) {
	input := Input{Base: h.Defaults}
	err := json.NewDecoder(r.Body).Decode(&input)
	return input, err
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input, err := h.decode(r)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.MaxSteps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	input, err := h.decode(r)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.MaxSteps)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"sweep_%s.csv\"", res.Param))
	if err := gocsv.Marshal(&res.Points, w); err != nil {
		log.WithError(err).Error("write sweep csv")
	}
}
