package game

import (
	"github.com/google/uuid"

	"partyroom/internal/models"
)

// MarkDrawn tags a closed-but-unwon sub-board (and an overall draw). A
// drawn sub-board is excluded from macro line checks since it can't win.
const MarkDrawn = "D"

// UltimateState is nine TicTacToe sub-boards plus a macro board tracking
// which sub-boards are closed. NextBoardIdx constrains where the next
// mover must play; nil means free choice.
type UltimateState struct {
	Boards       [9][9]string `json:"boards"`
	MacroBoard   [9]string    `json:"macroBoard"`
	NextBoardIdx *int         `json:"nextBoardIdx"`
	Turn         string       `json:"turn"`
	Winner       string       `json:"winner,omitempty"`
	XPlayerID    uuid.UUID    `json:"xPlayerId"`
	OPlayerID    uuid.UUID    `json:"oPlayerId"`
}

func (s *UltimateState) GameType() Type { return TypeUltimate }

type Ultimate struct{}

func NewUltimate() *Ultimate { return &Ultimate{} }

func (*Ultimate) Type() Type { return TypeUltimate }

func (*Ultimate) Init(players []*models.Player) State {
	st := &UltimateState{Turn: MarkX}
	if len(players) > 0 {
		st.XPlayerID = players[0].ID
	}
	if len(players) > 1 {
		st.OPlayerID = players[1].ID
	}
	return st
}

func (m *Ultimate) Apply(s State, actor uuid.UUID, action string, payload map[string]interface{}) (State, bool) {
	st, ok := s.(*UltimateState)
	if !ok || action != "move" || st.Winner != "" {
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

	boardIdx, ok := intField(payload, "boardIdx")
	if !ok || boardIdx < 0 || boardIdx > 8 {
		return s, false
	}
	cellIdx, ok := intField(payload, "cellIdx")
	if !ok || cellIdx < 0 || cellIdx > 8 {
		return s, false
	}
	if st.MacroBoard[boardIdx] != "" {
		return s, false // sub-board already closed
	}
	if st.NextBoardIdx != nil && *st.NextBoardIdx != boardIdx {
		return s, false
	}
	if st.Boards[boardIdx][cellIdx] != "" {
		return s, false
	}

	st.Boards[boardIdx][cellIdx] = st.Turn

	// Re-evaluate the sub-board for closure.
	if lineWinner(st.Boards[boardIdx][:]) != "" {
		st.MacroBoard[boardIdx] = st.Turn
	} else if boardFull(st.Boards[boardIdx][:]) {
		st.MacroBoard[boardIdx] = MarkDrawn
	}

	// Then the macro board for an overall result.
	if w := macroWinner(st.MacroBoard); w != "" {
		st.Winner = w
	} else if boardFull(st.MacroBoard[:]) {
		st.Winner = MarkDrawn
	}

	if st.Turn == MarkX {
		st.Turn = MarkO
	} else {
		st.Turn = MarkX
	}

	// The cell just played targets the next sub-board, unless that board
	// is already closed, in which case the next mover plays anywhere.
	next := cellIdx
	if st.MacroBoard[next] != "" {
		st.NextBoardIdx = nil
	} else {
		st.NextBoardIdx = &next
	}
	return st, true
}

// macroWinner is lineWinner with Drawn cells masked out.
func macroWinner(macro [9]string) string {
	for _, ln := range winLines {
		c := macro[ln[0]]
		if c != "" && c != MarkDrawn && c == macro[ln[1]] && c == macro[ln[2]] {
			return c
		}
	}
	return ""
}
