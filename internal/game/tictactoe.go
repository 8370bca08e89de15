package game

import (
	"github.com/google/uuid"

	"partyroom/internal/models"
)

// Marks used by TicTacToe and Ultimate.
const (
	MarkX = "X"
	MarkO = "O"
)

// TicTacToeState is the classic 3x3 board. The first two players to join
// the room hold the X and O seats; everyone else spectates.
type TicTacToeState struct {
	Board     [9]string      `json:"board"`
	Turn      string         `json:"turn"`
	Winner    string         `json:"winner,omitempty"`
	Draw      bool           `json:"draw"`
	XPlayerID uuid.UUID      `json:"xPlayerId"`
	OPlayerID uuid.UUID      `json:"oPlayerId"`
	Score     map[string]int `json:"score"`
}

func (s *TicTacToeState) GameType() Type { return TypeTicTacToe }

type TicTacToe struct{}

func NewTicTacToe() *TicTacToe { return &TicTacToe{} }

func (*TicTacToe) Type() Type { return TypeTicTacToe }

func (*TicTacToe) Init(players []*models.Player) State {
	st := &TicTacToeState{
		Turn:  MarkX,
		Score: map[string]int{MarkX: 0, MarkO: 0},
	}
	if len(players) > 0 {
		st.XPlayerID = players[0].ID
	}
	if len(players) > 1 {
		st.OPlayerID = players[1].ID
	}
	return st
}

func (m *TicTacToe) Apply(s State, actor uuid.UUID, action string, payload map[string]interface{}) (State, bool) {
	st, ok := s.(*TicTacToeState)
	if !ok || action != "move" || st.Winner != "" || st.Draw {
		return s, false
	}

	isX := actor != uuid.Nil && actor == st.XPlayerID
	isO := actor != uuid.Nil && actor == st.OPlayerID
	if !isX && !isO {
		return s, false
	}
	if (isX && st.Turn != MarkX) || (isO && st.Turn != MarkO) {
		return s, false
	}

	idx, ok := intField(payload, "index")
	if !ok || idx < 0 || idx > 8 || st.Board[idx] != "" {
		return s, false
	}

	st.Board[idx] = st.Turn

	if lineWinner(st.Board[:]) != "" {
		st.Winner = st.Turn
	} else if boardFull(st.Board[:]) {
		st.Draw = true
	} else if st.Turn == MarkX {
		st.Turn = MarkO
	} else {
		st.Turn = MarkX
	}
	return st, true
}
