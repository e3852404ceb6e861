package domain

import "match-lab/errors"

const boardMax = 2

// GamePlay validates moves against the current game state. It is pure
// logic: no I/O, no mutation. The caller appends the move after a nil
// return.
type GamePlay struct{}

func NewGamePlay() GamePlay {
	return GamePlay{}
}

// ApplyMove checks bounds first, then occupancy. Turn order is not
// enforced; both players may move back to back.
func (GamePlay) ApplyMove(game Game, move GameMove) error {
	if move.Position.X > boardMax || move.Position.Y > boardMax {
		return errors.ErrPositionOutOfBounds
	}
	for _, played := range game.Moves {
		if played.Position == move.Position {
			return errors.ErrPositionOccupied
		}
	}
	return nil
}
