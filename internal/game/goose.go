package game

import (
	"math"
	"time"

	"github.com/google/uuid"

	"partyroom/internal/models"
	"partyroom/internal/random"
)

// Goose Hunt is the one continuous-space variant: no turn order, positions
// move on every input, and a wall-clock countdown owned by the room drives
// the only state change not triggered by a player.
const (
	RoleDuck  = "DUCK"
	RoleGoose = "GOOSE"

	StatusAlive = "ALIVE"
	StatusDead  = "DEAD"

	WinnerDuck  = "DUCK"
	WinnerGeese = "GEESE"

	arenaMin   = 10.0
	arenaMax   = 590.0
	killRadius = 50.0

	// HuntSeconds is the countdown length of one hunt.
	HuntSeconds = 60
)

// GoosePlayer mirrors the room Player plus per-hunt role and position.
type GoosePlayer struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
	IsHost   bool      `json:"isHost"`
	Color    string    `json:"color"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
}

type GooseState struct {
	Players   []*GoosePlayer `json:"players"`
	TimeLeft  int            `json:"timeLeft"`
	Winner    string         `json:"winner,omitempty"`
	StartTime int64          `json:"startTime"`
}

func (s *GooseState) GameType() Type { return TypeGoose }

type Goose struct{}

func NewGoose() *Goose { return &Goose{} }

func (*Goose) Type() Type { return TypeGoose }

// Init assigns exactly one player the DUCK role and scatters everyone
// inside the arena.
func (*Goose) Init(players []*models.Player) State {
	st := &GooseState{
		TimeLeft:  HuntSeconds,
		StartTime: time.Now().UnixMilli(),
	}
	if len(players) == 0 {
		return st
	}
	duckIdx := random.Intn(len(players))
	for i, p := range players {
		role := RoleGoose
		if i == duckIdx {
			role = RoleDuck
		}
		st.Players = append(st.Players, &GoosePlayer{
			ID:       p.ID,
			Username: p.Username,
			Score:    p.Score,
			IsHost:   p.IsHost,
			Color:    p.Color,
			Role:     role,
			Status:   StatusAlive,
			X:        random.Float64()*500 + 50,
			Y:        random.Float64()*500 + 50,
		})
	}
	return st
}

func (m *Goose) Apply(s State, actor uuid.UUID, action string, payload map[string]interface{}) (State, bool) {
	st, ok := s.(*GooseState)
	if !ok {
		return s, false
	}

	var player *GoosePlayer
	for _, p := range st.Players {
		if p.ID == actor {
			player = p
			break
		}
	}
	if player == nil || player.Status == StatusDead || st.Winner != "" {
		return s, false
	}

	switch action {
	case "move":
		player.X = clamp(player.X+floatField(payload, "dx"), arenaMin, arenaMax)
		player.Y = clamp(player.Y+floatField(payload, "dy"), arenaMin, arenaMax)
		return st, true

	case "attack":
		if player.Role != RoleDuck {
			return s, false
		}
		for _, p := range st.Players {
			if p.Role == RoleGoose && p.Status == StatusAlive {
				if math.Hypot(p.X-player.X, p.Y-player.Y) < killRadius {
					p.Status = StatusDead
				}
			}
		}
		if geeseAlive(st) == 0 {
			st.Winner = WinnerDuck
		}
		return st, true
	}
	return s, false
}

// Tick decrements the countdown by one second and declares the geese the
// winners when it hits zero. Reports whether the state changed; a finished
// hunt never ticks again.
func (m *Goose) Tick(st *GooseState) bool {
	if st.Winner != "" || st.TimeLeft <= 0 {
		return false
	}
	st.TimeLeft--
	if st.TimeLeft <= 0 {
		st.Winner = WinnerGeese
	}
	return true
}

func geeseAlive(st *GooseState) int {
	n := 0
	for _, p := range st.Players {
		if p.Role == RoleGoose && p.Status == StatusAlive {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
