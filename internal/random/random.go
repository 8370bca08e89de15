// Package random holds the shared randomness helpers: room codes, player
// colors and dice. Every consumer that needs deterministic behavior in tests
// takes one of these as an injectable func instead of calling it directly.
package random

import "math/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of a room code.
const CodeLength = 6

// colors players can be assigned in the lobby.
var colors = []string{
	"#ef4444", "#3b82f6", "#22c55e", "#eab308",
	"#a855f7", "#ec4899", "#f97316", "#06b6d4",
}

// RoomCode returns a short human-enterable code. Uniqueness against live
// rooms is the registry's job, not ours.
func RoomCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// Color picks a player color from the fixed palette.
func Color() string {
	return colors[rand.Intn(len(colors))]
}

// RollDie returns a uniform roll in 1..6.
func RollDie() int {
	return rand.Intn(6) + 1
}

// Intn exposes rand.Intn for role assignment.
func Intn(n int) int {
	return rand.Intn(n)
}

// Float64 exposes rand.Float64 so spawn placement can be stubbed in tests.
func Float64() float64 {
	return rand.Float64()
}
