package game

import (
	"github.com/google/uuid"

	"partyroom/internal/models"
	"partyroom/internal/random"
)

const (
	// MinSnakePlayers gates startGame: the board is pointless solo.
	MinSnakePlayers = 2
	maxSnakeSeats   = 4
	snakeFinalCell  = 100
)

// snakeHeads maps a snake's head to its tail, ladderFeet a ladder's foot to
// its top. Both are consulted once, snake first, on the cell a roll lands on.
var snakeHeads = map[int]int{
	16: 6, 47: 26, 49: 11, 56: 53, 62: 19,
	64: 60, 87: 24, 93: 73, 95: 75, 98: 78,
}

var ladderFeet = map[int]int{
	1: 38, 4: 14, 9: 31, 21: 42, 28: 84,
	36: 44, 51: 67, 71: 91, 80: 100,
}

// SnakeState tracks up to four racers on the 1..100 board. ActivePlayerIDs
// is the turn order snapshotted at game start; later joiners spectate.
type SnakeState struct {
	Positions       map[uuid.UUID]int `json:"positions"`
	TurnPlayerID    uuid.UUID         `json:"turnPlayerId"`
	ActivePlayerIDs []uuid.UUID       `json:"activePlayerIds"`
	LastRoll        int               `json:"lastRoll"`
	WinnerID        uuid.UUID         `json:"winnerId"`
}

func (s *SnakeState) GameType() Type { return TypeSnake }

// Snake rolls through an injectable die so tests can script exact rolls.
type Snake struct {
	Roll func() int
}

func NewSnake() *Snake {
	return &Snake{Roll: random.RollDie}
}

func (*Snake) Type() Type { return TypeSnake }

func (*Snake) Init(players []*models.Player) State {
	st := &SnakeState{
		Positions:       make(map[uuid.UUID]int),
		ActivePlayerIDs: []uuid.UUID{},
	}
	for i, p := range players {
		if i >= maxSnakeSeats {
			break
		}
		st.ActivePlayerIDs = append(st.ActivePlayerIDs, p.ID)
		st.Positions[p.ID] = 1
	}
	if len(st.ActivePlayerIDs) > 0 {
		st.TurnPlayerID = st.ActivePlayerIDs[0]
	}
	return st
}

func (m *Snake) Apply(s State, actor uuid.UUID, action string, payload map[string]interface{}) (State, bool) {
	st, ok := s.(*SnakeState)
	if !ok || action != "roll" || st.WinnerID != uuid.Nil || st.TurnPlayerID != actor {
		return s, false
	}

	roll := m.Roll()
	st.LastRoll = roll

	pos := st.Positions[actor]
	if pos+roll <= snakeFinalCell {
		pos += roll
		if tail, ok := snakeHeads[pos]; ok {
			pos = tail
		}
		if top, ok := ladderFeet[pos]; ok {
			pos = top
		}
		st.Positions[actor] = pos

		if pos == snakeFinalCell {
			// Winner takes priority over turn rotation.
			st.WinnerID = actor
			return st, true
		}
	}
	// An overshoot leaves the racer put but the roll still counts.

	if roll != 6 {
		for i, id := range st.ActivePlayerIDs {
			if id == actor {
				st.TurnPlayerID = st.ActivePlayerIDs[(i+1)%len(st.ActivePlayerIDs)]
				break
			}
		}
	}
	return st, true
}
