// Package room owns the truth about live sessions: the Room aggregate, the
// process-wide Registry mapping room codes to Rooms, and the Goose Hunt
// countdown ticker. All game-state mutation funnels through the Registry so
// transport code never touches a State directly.
package room

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"partyroom/internal/game"
	"partyroom/internal/models"
)

// Status is a room's lifecycle phase.
type Status string

const (
	StatusLobby   Status = "LOBBY"
	StatusPlaying Status = "PLAYING"
)

// MaxPlayers caps room membership.
const MaxPlayers = 8

// Room is one session's full state, addressed by a short code. Players are
// kept in join order; exactly one of them is host while the room is
// non-empty. Mu guards everything and is held across any mutation plus the
// broadcast snapshot, so an action handler and the room's ticker never
// observe a torn state.
type Room struct {
	ID        string           `json:"id"`
	Players   []*models.Player `json:"players"`
	Status    Status           `json:"status"`
	GameType  game.Type        `json:"gameType"`
	GameState game.State       `json:"gameState"`

	Mu sync.Mutex `json:"-"`

	// closed marks a room removed from the registry; late callers holding
	// a stale pointer treat it as not found.
	closed bool

	tickCancel context.CancelFunc
}

// stopTicker cancels the room's countdown goroutine, if any. Callers hold Mu.
func (rm *Room) stopTicker() {
	if rm.tickCancel != nil {
		rm.tickCancel()
		rm.tickCancel = nil
	}
}

// player returns the member with the given id, or nil.
func (rm *Room) player(id uuid.UUID) *models.Player {
	for _, p := range rm.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// isHost reports whether the given id belongs to the room's host.
func (rm *Room) isHost(id uuid.UUID) bool {
	p := rm.player(id)
	return p != nil && p.IsHost
}
