package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"match-lab/domain"
	"match-lab/repositories"
)

// ApplicationService is the single entry point the transport layer talks
// to. It owns user and room creation and forwards everything stateful to
// the RoomManager.
type ApplicationService struct {
	users repositories.IUserRepository
	rooms repositories.IRoomRepository
	mgr   IRoomManager
	log   *slog.Logger
}

func NewApplicationService(
	users repositories.IUserRepository,
	rooms repositories.IRoomRepository,
	mgr IRoomManager,
	log *slog.Logger,
) *ApplicationService {
	return &ApplicationService{users: users, rooms: rooms, mgr: mgr, log: log}
}

// RegisterUser stores a new user under a fresh identifier and returns it.
func (s *ApplicationService) RegisterUser(ctx context.Context, name string) (uuid.UUID, error) {
	user := domain.NewUser(name)
	if err := s.users.Store(ctx, user); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("User registered", "user_id", user.ID, "name", user.Name)
	return user.ID, nil
}

// GetUserName resolves a user id to its display name.
func (s *ApplicationService) GetUserName(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Name, nil
}

// CreateRoom stores an empty room and returns its identifier.
func (s *ApplicationService) CreateRoom(ctx context.Context) (uuid.UUID, error) {
	room := domain.NewRoom()
	if err := s.rooms.Store(ctx, room); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("Room created", "room_id", room.ID)
	return room.ID, nil
}

func (s *ApplicationService) JoinRoom(ctx context.Context, userID, roomID uuid.UUID) error {
	return s.mgr.JoinRoom(ctx, userID, roomID)
}

func (s *ApplicationService) LeaveRoom(ctx context.Context, userID uuid.UUID) error {
	return s.mgr.LeaveRoom(ctx, userID)
}

func (s *ApplicationService) StartNewGame(ctx context.Context, roomID, userID uuid.UUID) error {
	return s.mgr.StartNewGame(ctx, roomID, userID)
}

// BecomePlayer reports true when the user was added as a player and false
// when it already held a player slot.
func (s *ApplicationService) BecomePlayer(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	return s.mgr.AddPlayer(ctx, roomID, userID)
}

func (s *ApplicationService) MakeGameMove(ctx context.Context, roomID uuid.UUID, move domain.GameMove) error {
	return s.mgr.MakeGameMove(ctx, roomID, move)
}
