package game

import (
	"github.com/google/uuid"

	"partyroom/internal/models"
	"partyroom/internal/random"
)

// Ludo piece positions are player-relative: -1 base, 0..50 main loop,
// 51..56 home stretch, 57 finished. Capture checks translate a loop
// position to the shared global ring via the seat's fixed offset.
const (
	ludoBase       = -1
	ludoHome       = 57
	ludoStretchMin = 51
	ludoLoopSize   = 52
	ludoSeatOffset = 13
	maxLudoSeats   = 4
)

const (
	PhaseRoll = "ROLL"
	PhaseMove = "MOVE"
)

var ludoColors = [maxLudoSeats]string{"red", "green", "yellow", "blue"}

// ludoSafeCells are the global ring cells where captures cannot occur.
var ludoSafeCells = map[int]bool{
	0: true, 8: true, 13: true, 21: true,
	26: true, 34: true, 39: true, 47: true,
}

// LudoPlayer is one seat with its four pieces.
type LudoPlayer struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Color    string    `json:"color"`
	Pieces   [4]int    `json:"pieces"`
}

type LudoState struct {
	Players []*LudoPlayer `json:"players"`
	Turn    int           `json:"turn"`
	Dice    int           `json:"dice"`
	Phase   string        `json:"phase"`
	Winners []int         `json:"winners"`
}

func (s *LudoState) GameType() Type { return TypeLudo }

type Ludo struct {
	Roll func() int
}

func NewLudo() *Ludo {
	return &Ludo{Roll: random.RollDie}
}

func (*Ludo) Type() Type { return TypeLudo }

func (*Ludo) Init(players []*models.Player) State {
	st := &LudoState{
		Phase:   PhaseRoll,
		Winners: []int{},
	}
	for i, p := range players {
		if i >= maxLudoSeats {
			break
		}
		st.Players = append(st.Players, &LudoPlayer{
			ID:       p.ID,
			Username: p.Username,
			Color:    ludoColors[i],
			Pieces:   [4]int{ludoBase, ludoBase, ludoBase, ludoBase},
		})
	}
	return st
}

func (m *Ludo) Apply(s State, actor uuid.UUID, action string, payload map[string]interface{}) (State, bool) {
	st, ok := s.(*LudoState)
	if !ok || len(st.Players) == 0 {
		return s, false
	}

	seat := st.Turn
	player := st.Players[seat]
	if player.ID != actor {
		return s, false
	}

	switch action {
	case "roll":
		if st.Phase != PhaseRoll {
			return s, false
		}
		roll := m.Roll()
		st.Dice = roll

		movable := false
		for _, pos := range player.Pieces {
			if ludoCanMove(pos, roll) {
				movable = true
				break
			}
		}
		if movable {
			st.Phase = PhaseMove
		} else {
			// No legal move passes the turn immediately, even on a 6.
			nextLudoTurn(st)
		}
		return st, true

	case "move":
		if st.Phase != PhaseMove {
			return s, false
		}
		pieceIdx, ok := intField(payload, "pieceIndex")
		if !ok || pieceIdx < 0 || pieceIdx >= len(player.Pieces) {
			return s, false
		}
		dest, ok := ludoDest(player.Pieces[pieceIdx], st.Dice)
		if !ok {
			return s, false
		}
		player.Pieces[pieceIdx] = dest

		if dest == ludoHome && ludoFinished(player) {
			st.Winners = append(st.Winners, seat)
		}

		if dest < ludoStretchMin {
			m.capture(st, seat, dest)
		}

		// A 6 grants the same seat another roll; no bonus for captures.
		if st.Dice == 6 {
			st.Phase = PhaseRoll
			st.Dice = 0
		} else {
			nextLudoTurn(st)
		}
		return st, true
	}
	return s, false
}

// capture sends every opposing main-loop piece sharing the mover's global
// cell back to base, unless the cell is safe.
func (m *Ludo) capture(st *LudoState, seat, dest int) {
	global := ludoGlobal(dest, seat)
	if ludoSafeCells[global] {
		return
	}
	for oi, opp := range st.Players {
		if oi == seat {
			continue
		}
		for j, pos := range opp.Pieces {
			if pos > ludoBase && pos < ludoStretchMin && ludoGlobal(pos, oi) == global {
				opp.Pieces[j] = ludoBase
			}
		}
	}
}

// ludoGlobal maps a seat's loop position onto the shared 52-cell ring.
func ludoGlobal(pos, seat int) int {
	return (pos + seat*ludoSeatOffset) % ludoLoopSize
}

// ludoCanMove reports whether a piece at pos may use this roll: base exits
// only on a 6, board pieces must land on or before home.
func ludoCanMove(pos, dice int) bool {
	if pos == ludoBase {
		return dice == 6
	}
	if pos == ludoHome {
		return false
	}
	return pos+dice <= ludoHome
}

// ludoDest resolves where a legal move lands, or reports an illegal one.
func ludoDest(pos, dice int) (int, bool) {
	if pos == ludoBase {
		if dice == 6 {
			return 0, true
		}
		return 0, false
	}
	if pos+dice <= ludoHome {
		return pos + dice, true
	}
	return 0, false
}

func ludoFinished(p *LudoPlayer) bool {
	for _, pos := range p.Pieces {
		if pos != ludoHome {
			return false
		}
	}
	return true
}

func nextLudoTurn(st *LudoState) {
	st.Phase = PhaseRoll
	st.Dice = 0
	st.Turn = (st.Turn + 1) % len(st.Players)
}
