package heat

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Handler serves single heat-exchange requests. An omitted h_w_m2k takes
// DefaultConvectionCoefficient.
type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input := Input{HWM2K: DefaultConvectionCoefficient}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		log.WithError(err).Debug("heat exchange rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
