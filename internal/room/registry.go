package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"partyroom/internal/game"
	"partyroom/internal/models"
	"partyroom/internal/random"
)

// Request-level failures surfaced in the create/join acknowledgment. The
// messages are the wire strings clients display.
var (
	ErrRoomNotFound   = errors.New("Room not found")
	ErrGameInProgress = errors.New("Game in progress")
	ErrRoomFull       = errors.New("Room Full")
)

// Registry is the process-wide map of room code -> Room. It owns room
// lifecycle: create, join, leave-triggered deletion and host migration.
// Rooms are independent; the registry lock only guards the map itself,
// per-room state is guarded by each Room's own lock.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	modules map[game.Type]game.Module
	logger  *logrus.Logger

	// OnUpdate is invoked, with the room's lock held, after every mutation
	// affecting that room. The transport layer snapshots and fans out the
	// full Room from here. Nil means no broadcast (tests).
	OnUpdate func(*Room)

	// TickInterval is the Goose Hunt countdown cadence. Tests shorten it.
	TickInterval time.Duration
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		rooms:        make(map[string]*Room),
		modules:      game.NewModules(),
		logger:       logger,
		TickInterval: time.Second,
	}
}

// SetModule replaces a dispatch table entry, used by tests to inject
// scripted dice.
func (reg *Registry) SetModule(m game.Module) {
	reg.modules[m.Type()] = m
}

func (reg *Registry) emit(rm *Room) {
	if reg.OnUpdate != nil {
		reg.OnUpdate(rm)
	}
}

// CreateRoom mints a unique code and creates a room with p as its sole,
// host player, defaulting to TicTacToe.
func (reg *Registry) CreateRoom(p *models.Player) *Room {
	p.IsHost = true

	reg.mu.Lock()
	code := random.RoomCode()
	for {
		if _, taken := reg.rooms[code]; !taken {
			break
		}
		code = random.RoomCode()
	}
	rm := &Room{
		ID:       code,
		Players:  []*models.Player{p},
		Status:   StatusLobby,
		GameType: game.TypeTicTacToe,
	}
	rm.GameState = reg.modules[game.TypeTicTacToe].Init(rm.Players)
	reg.rooms[code] = rm
	reg.mu.Unlock()

	reg.logger.WithFields(logrus.Fields{"room": code, "player": p.ID}).Info("room created")

	rm.Mu.Lock()
	reg.emit(rm)
	rm.Mu.Unlock()
	return rm
}

// JoinRoom appends p as a non-host member, or reports why it can't.
func (reg *Registry) JoinRoom(code string, p *models.Player) (*Room, error) {
	rm := reg.lookup(code)
	if rm == nil {
		return nil, ErrRoomNotFound
	}

	rm.Mu.Lock()
	defer rm.Mu.Unlock()
	if rm.closed {
		return nil, ErrRoomNotFound
	}
	if rm.Status != StatusLobby {
		return nil, ErrGameInProgress
	}
	if len(rm.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	p.IsHost = false
	rm.Players = append(rm.Players, p)
	reg.logger.WithFields(logrus.Fields{"room": rm.ID, "player": p.ID}).Info("player joined")
	reg.emit(rm)
	return rm, nil
}

// SelectGame swaps the room's variant and reinitializes its state. Only the
// host may select, and only in the lobby; anything else is a silent no-op.
func (reg *Registry) SelectGame(code string, actor uuid.UUID, t game.Type) {
	rm := reg.lookup(code)
	if rm == nil || !game.ValidType(t) {
		return
	}

	rm.Mu.Lock()
	defer rm.Mu.Unlock()
	if rm.closed || rm.Status != StatusLobby || !rm.isHost(actor) {
		return
	}

	rm.stopTicker()
	rm.GameType = t
	rm.GameState = reg.modules[t].Init(rm.Players)
	reg.emit(rm)
}

// StartGame re-runs init over the current roster (membership may have
// drifted since selection) and transitions the room to PLAYING. Snake &
// Ladder refuses to start under two players. Goose Hunt starts the room's
// countdown ticker.
func (reg *Registry) StartGame(code string, actor uuid.UUID) {
	rm := reg.lookup(code)
	if rm == nil {
		return
	}

	rm.Mu.Lock()
	defer rm.Mu.Unlock()
	if rm.closed || !rm.isHost(actor) {
		return
	}

	rm.GameState = reg.modules[rm.GameType].Init(rm.Players)

	if rm.GameType == game.TypeSnake && len(rm.Players) < game.MinSnakePlayers {
		return
	}

	rm.Status = StatusPlaying
	if rm.GameType == game.TypeGoose {
		reg.startGooseTicker(rm)
	}

	reg.logger.WithFields(logrus.Fields{"room": rm.ID, "game": rm.GameType}).Info("game started")
	reg.emit(rm)
}

// GameAction routes a player intent to the matching rule module. A "reset"
// is honored at any time by re-running init; every other action requires
// the room to be PLAYING and is otherwise a silent no-op. Rejected intents
// emit nothing; the next legitimate mutation broadcasts normally.
func (reg *Registry) GameAction(code string, actor uuid.UUID, action string, payload map[string]interface{}) {
	rm := reg.lookup(code)
	if rm == nil {
		return
	}

	rm.Mu.Lock()
	defer rm.Mu.Unlock()
	if rm.closed || rm.player(actor) == nil {
		return
	}

	if action == "reset" {
		rm.GameState = reg.modules[rm.GameType].Init(rm.Players)
		if rm.GameType == game.TypeGoose && rm.Status == StatusPlaying {
			// The previous hunt's ticker exited when its winner was set;
			// a fresh hunt needs a fresh one.
			reg.startGooseTicker(rm)
		}
		reg.emit(rm)
		return
	}

	if rm.Status != StatusPlaying {
		return
	}

	next, changed := reg.modules[rm.GameType].Apply(rm.GameState, actor, action, payload)
	rm.GameState = next
	if changed {
		reg.emit(rm)
	}
}

// Leave removes the player from whichever room holds them, destroying the
// room when it empties, promoting the earliest-joined member when the host
// departs, and reverting a thinned-out game to the lobby (Goose Hunt
// tolerates a shrinking roster). The scan stops at the first match: a
// connection is assumed to hold membership in at most one room, since the
// client joins or creates once per socket.
func (reg *Registry) Leave(playerID uuid.UUID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for code, rm := range reg.rooms {
		rm.Mu.Lock()
		idx := -1
		for i, p := range rm.Players {
			if p.ID == playerID {
				idx = i
				break
			}
		}
		if idx == -1 {
			rm.Mu.Unlock()
			continue
		}

		rm.Players = append(rm.Players[:idx], rm.Players[idx+1:]...)

		if len(rm.Players) == 0 {
			rm.closed = true
			rm.stopTicker()
			delete(reg.rooms, code)
			reg.logger.WithField("room", code).Info("room destroyed")
			rm.Mu.Unlock()
			return
		}

		hostLeft := true
		for _, p := range rm.Players {
			if p.IsHost {
				hostLeft = false
				break
			}
		}
		if hostLeft {
			rm.Players[0].IsHost = true
		}

		if rm.Status == StatusPlaying && len(rm.Players) < 2 && rm.GameType != game.TypeGoose {
			rm.Status = StatusLobby
			rm.stopTicker()
		}

		reg.logger.WithFields(logrus.Fields{"room": code, "player": playerID}).Info("player left")
		reg.emit(rm)
		rm.Mu.Unlock()
		return
	}
}

// Get returns the live room for a code, if any.
func (reg *Registry) Get(code string) (*Room, bool) {
	rm := reg.lookup(code)
	return rm, rm != nil
}

func (reg *Registry) lookup(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[strings.ToUpper(code)]
}

// startGooseTicker (re)starts the room's one-second countdown loop. The
// caller holds rm.Mu. The loop self-terminates the moment the room stops
// PLAYING, the variant changes away from Goose Hunt, a winner is set, or
// the room is destroyed; a leaked ticker would resurrect a finished hunt.
func (reg *Registry) startGooseTicker(rm *Room) {
	rm.stopTicker()

	ctx, cancel := context.WithCancel(context.Background())
	rm.tickCancel = cancel
	goose := reg.modules[game.TypeGoose].(*game.Goose)
	interval := reg.TickInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rm.Mu.Lock()
				if ctx.Err() != nil {
					// Cancelled while waiting for the lock; a newer
					// ticker owns this room now.
					rm.Mu.Unlock()
					return
				}
				st, ok := rm.GameState.(*game.GooseState)
				if !ok || rm.closed || rm.Status != StatusPlaying || rm.GameType != game.TypeGoose || st.Winner != "" {
					rm.Mu.Unlock()
					return
				}
				if goose.Tick(st) {
					reg.emit(rm)
				}
				finished := st.Winner != ""
				rm.Mu.Unlock()
				if finished {
					return
				}
			}
		}
	}()
}
