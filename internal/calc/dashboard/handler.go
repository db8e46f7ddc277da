package dashboard

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Handler serves the dashboard. Fields missing from a request keep the
// handler's defaults.
type Handler struct {
	Defaults Input
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input := h.Defaults
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		log.WithError(err).Debug("dashboard update rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Defaults)
}
