package live

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"Radiant/internal/calc/dashboard"
)

const maxMessageBytes = 64 << 10

type Server struct {
	upgrader websocket.Upgrader
	defaults dashboard.Input
}

// NewServer accepts connections from allowOrigin, or from anywhere when it
// is "*" or empty.
func NewServer(defaults dashboard.Input, allowOrigin string) *Server {
	s := &Server{
		defaults: defaults,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if allowOrigin != "" && allowOrigin != "*" {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			return r.Header.Get("Origin") == allowOrigin
		}
	} else {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return s
}

// ServeWs handles websocket requests from the peer.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageBytes)

	entry := log.WithField("remote", r.RemoteAddr)
	entry.Debug("websocket connected")
	NewHub(conn, s.defaults, entry).run()
	entry.Debug("websocket closed")
}
