package live

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"Radiant/internal/calc/dashboard"
)

// Hub serves a single connection: requests flow from the read loop into
// handleRequest, replies flow from there into handleResponse.
type Hub struct {
	conn     *websocket.Conn
	defaults dashboard.Input
	log      *log.Entry

	// request
	msg chan []byte
	// response
	reply chan Reply
}

func NewHub(conn *websocket.Conn, defaults dashboard.Input, entry *log.Entry) *Hub {
	return &Hub{
		conn:     conn,
		defaults: defaults,
		log:      entry,
		msg:      make(chan []byte, 10),
		reply:    make(chan Reply, 10),
	}
}

// Handle turns one raw message into its reply.
func (h *Hub) Handle(raw []byte) Reply {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Reply{Type: TypeError, Error: "invalid message"}
	}
	switch req.Type {
	case TypeDefaults:
		in := h.defaults
		return Reply{Type: TypeDefaults, Input: &in}
	case TypeCalc:
		in := h.defaults
		if len(req.Input) > 0 {
			if err := json.Unmarshal(req.Input, &in); err != nil {
				return Reply{Type: TypeError, Error: "invalid input"}
			}
		}
		res, err := dashboard.Calculate(in)
		if err != nil {
			return Reply{Type: TypeError, Error: err.Error()}
		}
		return Reply{Type: TypeResult, Result: &res}
	default:
		return Reply{Type: TypeError, Error: fmt.Sprintf("unknown message type %q", req.Type)}
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for raw := range h.msg {
		h.reply <- h.Handle(raw)
	}
}

func (h *Hub) handleResponse(done chan<- struct{}) {
	defer close(done)
	broken := false
	for reply := range h.reply {
		if broken {
			continue
		}
		if reply.Type == TypeError {
			h.log.WithField("error", reply.Error).Debug("request rejected")
		}
		if err := h.conn.WriteJSON(&reply); err != nil {
			h.log.WithError(err).Warn("write failed")
			broken = true
			h.conn.Close()
		}
	}
}

// run blocks reading the connection until the peer goes away, then drains
// the pipeline.
func (h *Hub) run() {
	done := make(chan struct{})
	go h.handleRequest()
	go h.handleResponse(done)

	for {
		_, raw, err := h.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("read failed")
			}
			break
		}
		h.msg <- raw
	}
	close(h.msg)
	<-done
}
