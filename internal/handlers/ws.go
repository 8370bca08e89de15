// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"partyroom/internal/game"
	"partyroom/internal/middleware"
	"partyroom/internal/models"
	"partyroom/internal/random"
)

// Message is the envelope for every inbound frame. The caller's identity is
// implicit: it is the uuid minted for the connection at accept time.
type Message struct {
	Type     string                 `json:"type"`
	RoomID   string                 `json:"roomId,omitempty"`
	Username string                 `json:"username,omitempty"`
	GameType string                 `json:"gameType,omitempty"`
	Action   string                 `json:"action,omitempty"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
}

// ack answers create_room/join_room directly on the caller's socket.
type ack struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	RoomID  string `json:"roomId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WSHandler upgrades the connection, mints the connection-scoped player
// token, and runs the read loop until the socket drops. A dropped socket is
// the disconnect notification: the player leaves whatever room holds them.
func WSHandler(logger *logrus.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		connID := uuid.New()
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		readMessages(ctx, c, s, connID, logger)

		s.Registry.Leave(connID)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, nil)
	}
}

// readMessages decodes frames and routes intents into the registry. Invalid
// frames are answered with an error frame but never close the connection.
func readMessages(ctx context.Context, c *websocket.Conn, s *Server, connID uuid.UUID, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally for %s.", connID)
			} else if strings.Contains(err.Error(), "context canceled") {
				logger.Infof("WebSocket context canceled for %s.", connID)
			} else {
				logger.Warnf("Error reading from WebSocket for %s: %v", connID, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from %s: %v", connID, err)
			sendWsError(c, "Invalid JSON format.")
			continue
		}

		logger.Debugf("Received %q from %s", msg.Type, connID)

		switch msg.Type {
		case "create_room":
			p := &models.Player{ID: connID, Username: msg.Username, Color: random.Color(), Conn: c}
			rm := s.Registry.CreateRoom(p)
			sendWsMessage(c, ack{Type: "ack", Success: true, RoomID: rm.ID})

		case "join_room":
			p := &models.Player{ID: connID, Username: msg.Username, Color: random.Color(), Conn: c}
			rm, err := s.Registry.JoinRoom(msg.RoomID, p)
			if err != nil {
				sendWsMessage(c, ack{Type: "ack", Success: false, Error: err.Error()})
				continue
			}
			sendWsMessage(c, ack{Type: "ack", Success: true, RoomID: rm.ID})

		case "select_game":
			s.Registry.SelectGame(msg.RoomID, connID, game.Type(msg.GameType))

		case "start_game":
			s.Registry.StartGame(msg.RoomID, connID)

		case "game_action":
			s.Registry.GameAction(msg.RoomID, connID, msg.Action, msg.Payload)

		case "ping":
			sendWsMessage(c, map[string]string{"type": "pong"})

		default:
			sendWsError(c, "Unknown message type: "+msg.Type)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// sendWsMessage marshals and writes one frame with a write timeout.
func sendWsMessage(c *websocket.Conn, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.Write(writeCtx, websocket.MessageText, data)
}

func sendWsError(c *websocket.Conn, errorMsg string) {
	sendWsMessage(c, map[string]interface{}{
		"type":    "error",
		"message": errorMsg,
	})
}
