package live

import (
	"encoding/json"

	"Radiant/internal/calc/dashboard"
)

const (
	TypeCalc     = "calc"
	TypeDefaults = "defaults"
	TypeResult   = "result"
	TypeError    = "error"
)

// Request is a client message. Input fields that are absent keep the
// server defaults.
type Request struct {
	Type  string          `json:"type"`
	Input json.RawMessage `json:"input,omitempty"`
}

type Reply struct {
	Type   string            `json:"type"`
	Input  *dashboard.Input  `json:"input,omitempty"`
	Result *dashboard.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}
