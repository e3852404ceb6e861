package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"match-lab/domain"
	"match-lab/errors"
)

type IRoomRepository interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Room, error)
	Store(ctx context.Context, room domain.Room) error
	Update(ctx context.Context, room domain.Room) error
	// HaveMember returns every room the user currently belongs to. The
	// RoomManager uses it to enforce the one-room-per-user rule; the
	// repository itself knows nothing about that invariant.
	HaveMember(ctx context.Context, userID uuid.UUID) ([]domain.Room, error)
}

type MemoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]storedRoom
}

type storedRoom struct {
	activeGameID *uuid.UUID
	members      map[uuid.UUID]struct{}
}

func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{rooms: map[uuid.UUID]storedRoom{}}
}

func toStoredRoom(room domain.Room) storedRoom {
	stored := storedRoom{members: map[uuid.UUID]struct{}{}}
	for member := range room.Members {
		stored.members[member] = struct{}{}
	}
	if room.ActiveGameID != nil {
		stored.activeGameID = lo.ToPtr(*room.ActiveGameID)
	}
	return stored
}

func (s storedRoom) toRoom(id uuid.UUID) domain.Room {
	room := domain.Room{ID: id, Members: map[uuid.UUID]struct{}{}}
	for member := range s.members {
		room.Members[member] = struct{}{}
	}
	if s.activeGameID != nil {
		room.ActiveGameID = lo.ToPtr(*s.activeGameID)
	}
	return room
}

func (r *MemoryRoomRepository) Get(_ context.Context, id uuid.UUID) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, errors.RoomNotFoundError{RoomID: id}
	}
	return stored.toRoom(id), nil
}

func (r *MemoryRoomRepository) Store(_ context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; ok {
		return errors.AlreadyExistsError{Entity: "Room", ID: room.ID}
	}
	r.rooms[room.ID] = toStoredRoom(room)
	return nil
}

func (r *MemoryRoomRepository) Update(_ context.Context, room domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; !ok {
		return errors.RoomNotFoundError{RoomID: room.ID}
	}
	r.rooms[room.ID] = toStoredRoom(room)
	return nil
}

func (r *MemoryRoomRepository) HaveMember(_ context.Context, userID uuid.UUID) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rooms []domain.Room
	for id, stored := range r.rooms {
		if _, ok := stored.members[userID]; ok {
			rooms = append(rooms, stored.toRoom(id))
		}
	}
	return rooms, nil
}
