package domain

import (
	"github.com/google/uuid"

	"match-lab/errors"
)

// MaxPlayers is the hard cap of the 3x3 grid rule set.
const MaxPlayers = 2

// Game is one instance of the 3x3 grid rule set: up to two players and an
// append-only move log. Games are never deleted.
type Game struct {
	ID      uuid.UUID
	Players map[uuid.UUID]struct{}
	Moves   []GameMove
}

func NewGame() Game {
	return Game{ID: uuid.New(), Players: map[uuid.UUID]struct{}{}}
}

// AddPlayer inserts the user into the player set. It reports (false, nil)
// when the user already is a player, so callers can distinguish the
// idempotent no-op from a fresh insert without treating it as a failure.
func (g *Game) AddPlayer(userID uuid.UUID) (bool, error) {
	if _, ok := g.Players[userID]; ok {
		return false, nil
	}
	if len(g.Players) == MaxPlayers {
		return false, errors.ErrPlayerCountExceeded
	}
	g.Players[userID] = struct{}{}
	return true, nil
}

// RemovePlayer is idempotent; removing an absent player is a no-op.
func (g *Game) RemovePlayer(userID uuid.UUID) {
	delete(g.Players, userID)
}

func (g *Game) IsPlayer(userID uuid.UUID) bool {
	_, ok := g.Players[userID]
	return ok
}

// AppendMove records a validated move. Validation belongs to GamePlay; the
// aggregate only guarantees the log stays append-only.
func (g *Game) AppendMove(move GameMove) {
	g.Moves = append(g.Moves, move)
}

// GameMove is a single board placement submitted by a player.
type GameMove struct {
	UserID   uuid.UUID
	Position Position
}

// Position addresses a cell on the 3x3 board. Values above 2 are rejected
// by the rule engine, not by construction.
type Position struct {
	X uint8
	Y uint8
}
