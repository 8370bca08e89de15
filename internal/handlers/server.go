// internal/handlers/server.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"partyroom/internal/room"
)

// Server wires the session registry to the websocket transport. It owns the
// broadcast fan-out: after any mutation the registry hands it the room, and
// it serializes the full Room once and pushes it to every member's socket.
type Server struct {
	Registry *room.Registry
	Logger   *logrus.Logger
}

func NewServer(logger *logrus.Logger) *Server {
	s := &Server{
		Registry: room.NewRegistry(logger),
		Logger:   logger,
	}
	s.Registry.OnUpdate = s.broadcastRoom
	return s
}

// roomUpdate is the outbound full-state event. Consumers treat each one as
// the complete authoritative snapshot, never a diff.
type roomUpdate struct {
	Type string     `json:"type"`
	Room *room.Room `json:"room"`
}

// broadcastRoom is invoked by the registry with the room's lock held, so it
// marshals synchronously and writes asynchronously. No websocket write may
// happen while the room lock is held. Each emission writes from its own
// goroutine, so delivery order across rapid back-to-back mutations is not
// guaranteed; a per-room send queue would serialize it.
func (s *Server) broadcastRoom(rm *room.Room) {
	data, err := json.Marshal(roomUpdate{Type: "room_update", Room: rm})
	if err != nil {
		s.Logger.Errorf("failed to marshal room %s update: %v", rm.ID, err)
		return
	}

	conns := make([]*websocket.Conn, 0, len(rm.Players))
	for _, p := range rm.Players {
		if p.Conn != nil {
			conns = append(conns, p.Conn)
		}
	}

	go func(conns []*websocket.Conn, data []byte, roomID string) {
		for _, c := range conns {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := c.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.Logger.Warnf("failed to write room_update for room %s: %v", roomID, err)
			}
		}
	}(conns, data, rm.ID)
}

// PingHandler is a trivial liveness endpoint.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
