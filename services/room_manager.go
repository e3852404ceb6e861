package services

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/google/uuid"

	"match-lab/domain"
	"match-lab/errors"
	"match-lab/repositories"
)

type IRoomManager interface {
	JoinRoom(ctx context.Context, userID, roomID uuid.UUID) error
	LeaveRoom(ctx context.Context, userID uuid.UUID) error
	StartNewGame(ctx context.Context, roomID, userID uuid.UUID) error
	AddPlayer(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	MakeGameMove(ctx context.Context, roomID uuid.UUID, move domain.GameMove) error
}

// RoomManager sequences the cross-aggregate transitions. The check order is
// fixed and observable: user existence before room existence, room
// membership before game state. Read-modify-write sequences carry no
// concurrency token; two racing calls on the same aggregate may interleave.
type RoomManager struct {
	users repositories.IUserRepository
	rooms repositories.IRoomRepository
	games IGameManager
	log   *slog.Logger
}

func NewRoomManager(
	users repositories.IUserRepository,
	rooms repositories.IRoomRepository,
	games IGameManager,
	log *slog.Logger,
) *RoomManager {
	return &RoomManager{users: users, rooms: rooms, games: games, log: log}
}

// JoinRoom adds the user to the room unless the user already belongs to any
// room system-wide.
func (m *RoomManager) JoinRoom(ctx context.Context, userID, roomID uuid.UUID) error {
	user, err := m.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	room, err := m.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	assigned, err := m.rooms.HaveMember(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(assigned) > 0 {
		return errors.ErrAlreadyAssigned
	}
	room.AddMember(user.ID)
	return m.rooms.Update(ctx, room)
}

// LeaveRoom removes the user from every room the lookup returns (at most
// one under the invariant) and from the room's active game, if any.
// Leaving while in no room is a no-op success. Later failures do not roll
// back earlier rooms; each room is handled to completion independently.
func (m *RoomManager) LeaveRoom(ctx context.Context, userID uuid.UUID) error {
	user, err := m.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	rooms, err := m.rooms.HaveMember(ctx, user.ID)
	if err != nil {
		return err
	}
	var errs []error
	for _, room := range rooms {
		room.RemoveMember(user.ID)
		if room.ActiveGameID != nil {
			if err := m.games.RemovePlayer(ctx, user.ID, *room.ActiveGameID); err != nil {
				m.log.Warn("Leaving user could not be removed from active game",
					"user_id", user.ID, "game_id", *room.ActiveGameID, "error", err)
				errs = append(errs, err)
				continue
			}
		}
		if err := m.rooms.Update(ctx, room); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// StartNewGame creates a fresh game and points the room at it. Only a room
// member may start a game. An already active game is not checked for; the
// pointer is simply replaced.
func (m *RoomManager) StartNewGame(ctx context.Context, roomID, userID uuid.UUID) error {
	user, err := m.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	room, err := m.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsMember(user.ID) {
		return errors.UserNotInRoomError{UserID: user.ID, RoomID: room.ID}
	}
	game, err := m.games.StartNewGame(ctx)
	if err != nil {
		return err
	}
	room.SetActiveGameID(game.ID)
	return m.rooms.Update(ctx, room)
}

// AddPlayer promotes a room member to player of the active game. Reports
// (false, nil) when the member already is a player.
func (m *RoomManager) AddPlayer(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	user, err := m.users.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	room, err := m.rooms.Get(ctx, roomID)
	if err != nil {
		return false, err
	}
	if !room.IsMember(user.ID) {
		return false, errors.UserNotInRoomError{UserID: user.ID, RoomID: room.ID}
	}
	if room.ActiveGameID == nil {
		return false, errors.NoActiveGameInRoomError{RoomID: room.ID}
	}
	return m.games.AddPlayer(ctx, *room.ActiveGameID, user.ID)
}

// MakeGameMove resolves the acting user from the move itself and delegates
// validation and persistence to the GameManager.
func (m *RoomManager) MakeGameMove(ctx context.Context, roomID uuid.UUID, move domain.GameMove) error {
	user, err := m.users.Get(ctx, move.UserID)
	if err != nil {
		return err
	}
	room, err := m.rooms.Get(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsMember(user.ID) {
		return errors.UserNotInRoomError{UserID: user.ID, RoomID: room.ID}
	}
	if room.ActiveGameID == nil {
		return errors.NoActiveGameInRoomError{RoomID: room.ID}
	}
	return m.games.MakeGameMove(ctx, user.ID, *room.ActiveGameID, move)
}
