// Package game implements the rule modules for every variant a room can
// host. Each module is a pure state machine over in-memory state: Init
// produces a fresh state for the current roster, Apply validates a single
// player intent against it. Illegal intents (wrong actor, wrong turn,
// occupied cell, finished game, malformed payload) leave the state
// untouched and report no change; the caller decides whether to broadcast.
package game

import (
	"github.com/google/uuid"

	"partyroom/internal/models"
)

// Type tags which variant a room is hosting and which State payload it holds.
type Type string

const (
	TypeTicTacToe Type = "TICTACTOE"
	TypeSnake     Type = "SNAKE"
	TypeGoose     Type = "GOOSE"
	TypeUltimate  Type = "ULTIMATE"
	TypeLudo      Type = "LUDO"
)

// ValidType reports whether t names a known variant.
func ValidType(t Type) bool {
	switch t {
	case TypeTicTacToe, TypeSnake, TypeGoose, TypeUltimate, TypeLudo:
		return true
	}
	return false
}

// State is the tagged union of per-variant game states. A room's State is
// always the variant matching its Type and is replaced wholesale whenever
// the game type changes or a game (re)starts.
type State interface {
	GameType() Type
}

// Module is the contract every rule module satisfies. Apply returns the
// authoritative next state (the same pointer when mutated in place) and
// whether anything changed; rejected intents return (s, false).
type Module interface {
	Type() Type
	Init(players []*models.Player) State
	Apply(s State, actor uuid.UUID, action string, payload map[string]interface{}) (State, bool)
}

// NewModules builds one module per variant with default dice. The map is
// the closed dispatch table; a Type outside it is a caller bug.
func NewModules() map[Type]Module {
	mods := []Module{
		NewTicTacToe(),
		NewSnake(),
		NewGoose(),
		NewUltimate(),
		NewLudo(),
	}
	byType := make(map[Type]Module, len(mods))
	for _, m := range mods {
		byType[m.Type()] = m
	}
	return byType
}

// winLines are the eight three-in-a-row triples on a 3x3 grid, shared by
// TicTacToe, the Ultimate sub-boards and the Ultimate macro board.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// lineWinner returns the mark holding any full line, or "".
func lineWinner(cells []string) string {
	for _, ln := range winLines {
		if cells[ln[0]] != "" && cells[ln[0]] == cells[ln[1]] && cells[ln[0]] == cells[ln[2]] {
			return cells[ln[0]]
		}
	}
	return ""
}

func boardFull(cells []string) bool {
	for _, c := range cells {
		if c == "" {
			return false
		}
	}
	return true
}

// intField pulls an integer out of a decoded JSON payload. Numbers arrive
// as float64 from encoding/json; anything else fails the lookup instead of
// panicking.
func intField(payload map[string]interface{}, key string) (int, bool) {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// floatField is intField's float companion; a missing key yields 0, which
// suits delta payloads where an absent axis means "no movement".
func floatField(payload map[string]interface{}, key string) float64 {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
