package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is one connection's membership in a room. The ID is minted when the
// websocket is accepted and lives exactly as long as the connection.
type Player struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Score    int             `json:"score"`
	IsHost   bool            `json:"isHost"`
	Color    string          `json:"color"`
	Conn     *websocket.Conn `json:"-"`
}

func NewPlayer(username, color string, isHost bool) *Player {
	return &Player{
		ID:       uuid.New(),
		Username: username,
		Color:    color,
		IsHost:   isHost,
	}
}
