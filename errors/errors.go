// Package errors defines the error taxonomy shared by the repositories,
// the managers and the transport layer. The Error() strings are part of the
// client-facing contract and must stay stable.
package errors

import (
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrAlreadyAssigned     = fmt.Errorf("Users cannot be assigned to multiple rooms")
	ErrPositionOccupied    = fmt.Errorf("Position is already occupied")
	ErrPositionOutOfBounds = fmt.Errorf("Position is out of bounds")
	ErrPlayerCountExceeded = fmt.Errorf("Exceeded player count limit")
	ErrClientNotAvailable  = fmt.Errorf("Could not find client for specified user")
	ErrInvalidGameMove     = fmt.Errorf("Game move request object is invalid")
)

// UserNotFoundError reports a lookup miss in the user repository.
type UserNotFoundError struct {
	UserID uuid.UUID
}

func (e UserNotFoundError) Error() string {
	return fmt.Sprintf("Could not find user with id: %s", e.UserID)
}

// RoomNotFoundError reports a lookup miss in the room repository.
type RoomNotFoundError struct {
	RoomID uuid.UUID
}

func (e RoomNotFoundError) Error() string {
	return fmt.Sprintf("Could not find room with id: %s", e.RoomID)
}

// GameNotFoundError reports a lookup miss in the game repository.
type GameNotFoundError struct {
	GameID uuid.UUID
}

func (e GameNotFoundError) Error() string {
	return fmt.Sprintf("Could not find game with id: %s", e.GameID)
}

// AlreadyExistsError reports a store of a duplicate aggregate id. Ids are
// generated, so hitting this means a caller bug rather than user input.
type AlreadyExistsError struct {
	Entity string
	ID     uuid.UUID
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with id %s already exists", e.Entity, e.ID)
}

// UserNotInRoomError rejects an operation issued by a non-member.
type UserNotInRoomError struct {
	UserID uuid.UUID
	RoomID uuid.UUID
}

func (e UserNotInRoomError) Error() string {
	return fmt.Sprintf("User(%s) is not a member of Room(%s)", e.UserID, e.RoomID)
}

// NoActiveGameInRoomError rejects a game operation on a room that has not
// started a game yet.
type NoActiveGameInRoomError struct {
	RoomID uuid.UUID
}

func (e NoActiveGameInRoomError) Error() string {
	return fmt.Sprintf("There is no currently active game for room with id: %s", e.RoomID)
}

// UserNotAPlayerInGameError rejects a move from a room member that never
// became a player of the active game.
type UserNotAPlayerInGameError struct {
	UserID uuid.UUID
}

func (e UserNotAPlayerInGameError) Error() string {
	return fmt.Sprintf("User(%s) is not a player in the game", e.UserID)
}
