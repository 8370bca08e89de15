package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSnake returns a Snake whose die yields the given rolls in order.
func scriptedSnake(t *testing.T, rolls ...int) *Snake {
	t.Helper()
	i := 0
	m := NewSnake()
	m.Roll = func() int {
		require.Less(t, i, len(rolls), "ran out of scripted rolls")
		r := rolls[i]
		i++
		return r
	}
	return m
}

func TestSnakeInitSnapshotsTurnOrder(t *testing.T) {
	m := NewSnake()
	players := makePlayers(5)
	st := m.Init(players).(*SnakeState)

	require.Len(t, st.ActivePlayerIDs, 4, "seats cap at four")
	assert.Equal(t, players[0].ID, st.TurnPlayerID)
	for _, id := range st.ActivePlayerIDs {
		assert.Equal(t, 1, st.Positions[id])
	}
	// The fifth joiner spectates.
	_, ok := st.Positions[players[4].ID]
	assert.False(t, ok)
}

func TestSnakeOvershootStaysPut(t *testing.T) {
	m := scriptedSnake(t, 5)
	players := makePlayers(2)
	st := m.Init(players).(*SnakeState)
	st.Positions[players[0].ID] = 98

	_, changed := m.Apply(st, players[0].ID, "roll", nil)
	require.True(t, changed)

	assert.Equal(t, 98, st.Positions[players[0].ID], "98+5 overshoots 100")
	assert.Equal(t, 5, st.LastRoll)
	assert.Equal(t, players[1].ID, st.TurnPlayerID, "turn still advances")
}

func TestSnakeLadderClimb(t *testing.T) {
	m := scriptedSnake(t, 3)
	players := makePlayers(2)
	st := m.Init(players).(*SnakeState)
	// 1 + 3 = 4, the foot of a ladder to 14.
	_, changed := m.Apply(st, players[0].ID, "roll", nil)
	require.True(t, changed)
	assert.Equal(t, 14, st.Positions[players[0].ID])
}

func TestSnakeBiteSlide(t *testing.T) {
	m := scriptedSnake(t, 6, 4)
	players := makePlayers(2)
	st := m.Init(players).(*SnakeState)
	st.Positions[players[0].ID] = 10

	// 10 + 6 = 16, a snake head sliding to 6; the 6 grants another roll.
	_, changed := m.Apply(st, players[0].ID, "roll", nil)
	require.True(t, changed)
	assert.Equal(t, 6, st.Positions[players[0].ID])
	assert.Equal(t, players[0].ID, st.TurnPlayerID, "a six keeps the turn")

	// 6 + 4 = 10, plain cell, turn passes.
	_, changed = m.Apply(st, players[0].ID, "roll", nil)
	require.True(t, changed)
	assert.Equal(t, 10, st.Positions[players[0].ID])
	assert.Equal(t, players[1].ID, st.TurnPlayerID)
}

func TestSnakeWinnerBeforeRotation(t *testing.T) {
	m := scriptedSnake(t, 5)
	players := makePlayers(2)
	st := m.Init(players).(*SnakeState)
	st.Positions[players[0].ID] = 95

	_, changed := m.Apply(st, players[0].ID, "roll", nil)
	require.True(t, changed)

	assert.Equal(t, players[0].ID, st.WinnerID)
	assert.Equal(t, 100, st.Positions[players[0].ID])
	// Winner takes priority over turn rotation.
	assert.Equal(t, players[0].ID, st.TurnPlayerID)
}

func TestSnakeTurnIntegrity(t *testing.T) {
	m := scriptedSnake(t) // must never roll
	players := makePlayers(2)
	st := m.Init(players).(*SnakeState)

	_, changed := m.Apply(st, players[1].ID, "roll", nil)
	assert.False(t, changed)
	assert.Equal(t, 1, st.Positions[players[1].ID])
}

func TestSnakeNoRollsAfterWin(t *testing.T) {
	m := scriptedSnake(t)
	players := makePlayers(2)
	st := m.Init(players).(*SnakeState)
	st.WinnerID = players[1].ID

	_, changed := m.Apply(st, players[0].ID, "roll", nil)
	assert.False(t, changed)
}
