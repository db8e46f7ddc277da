package scenario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"Radiant/internal/auth"
	"Radiant/internal/calc/check"
	"Radiant/internal/calc/dashboard"
	"Radiant/internal/repo"
)

const maxNameLen = 100

type Handler struct {
	Repo     repo.Repository
	Defaults dashboard.Input
}

type createRequest struct {
	Name  string          `json:"name"`
	Input dashboard.Input `json:"input"`
}

type calcResponse struct {
	Scenario repo.Scenario    `json:"scenario"`
	Result   dashboard.Result `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	u, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return u.ID, true
}

func scenarioID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid scenario id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) storageError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Scenario not found", http.StatusNotFound)
		return
	}
	log.WithError(err).Error(op)
	http.Error(w, "Storage error", http.StatusInternalServerError)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	list, err := h.Repo.ListScenarios(r.Context(), uid)
	if err != nil {
		h.storageError(w, err, "list scenarios")
		return
	}
	if list == nil {
		list = []repo.Scenario{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Create saves the inputs under a name, replacing any scenario of the same
// name. Inputs are validated before they are stored.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	req := createRequest{Input: h.Defaults}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > maxNameLen {
		http.Error(w, "Scenario name required (up to 100 characters)", http.StatusBadRequest)
		return
	}
	if _, err := dashboard.Calculate(req.Input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := h.Repo.SaveScenario(r.Context(), repo.Scenario{UserID: uid, Name: req.Name, Input: req.Input})
	if err != nil {
		h.storageError(w, err, "save scenario")
		return
	}
	log.WithFields(log.Fields{"user_id": uid, "scenario_id": s.ID}).Info("scenario saved")
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := scenarioID(w, r)
	if !ok {
		return
	}
	s, err := h.Repo.GetScenario(r.Context(), uid, id)
	if err != nil {
		h.storageError(w, err, "get scenario")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := scenarioID(w, r)
	if !ok {
		return
	}
	if err := h.Repo.DeleteScenario(r.Context(), uid, id); err != nil {
		h.storageError(w, err, "delete scenario")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calc recomputes a stored scenario.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := scenarioID(w, r)
	if !ok {
		return
	}
	s, err := h.Repo.GetScenario(r.Context(), uid, id)
	if err != nil {
		h.storageError(w, err, "get scenario")
		return
	}
	res, err := dashboard.Calculate(s.Input)
	if err != nil {
		status := http.StatusInternalServerError
		if check.IsInput(err) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, calcResponse{Scenario: s, Result: res})
}
