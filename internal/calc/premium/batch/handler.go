package batch

import (
	"encoding/json"
	"net/http"

	"Radiant/internal/calc/dashboard"
)

// Handler evaluates batches. Fields an item omits take Defaults.
type Handler struct {
	Defaults dashboard.Input
	MaxItems int
}

type request struct {
	Items []json.RawMessage `json:"items"`
}

func (h *Handler) decode(r *http.Request) (Input, error) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Input{}, err
	}
	input := Input{Items: make([]dashboard.Input, len(req.Items))}
	for i, raw := range req.Items {
		input.Items[i] = h.Defaults
		if err := json.Unmarshal(raw, &input.Items[i]); err != nil {
			return Input{}, err
		}
	}
	return input, nil
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	input, err := h.decode(r)
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input, h.MaxItems)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
